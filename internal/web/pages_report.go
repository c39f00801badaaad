/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import (
	"net/http"

	"github.com/friendsincode/aircheck/internal/models"
	"github.com/friendsincode/aircheck/internal/report"
)

const reportFilterCookie = "aircheck_report_filter"

type reportFilter struct {
	Date     string `json:"date"`
	DJID     string `json:"dj_id"`
	TimeSlot string `json:"time_slot"`
}

type reportPageData struct {
	DJs          []models.DJ
	Form         reportFilter
	Report       *report.Report
	DJName       string
	ShowPlaylist bool
}

// ReportPage renders the comparison report page, restoring the last filter
// selection from the cookie.
func (h *Handler) ReportPage(w http.ResponseWriter, r *http.Request) {
	djs, err := h.schedule.DJs(r.Context())
	if err != nil {
		http.Error(w, "error loading report page", http.StatusInternalServerError)
		return
	}

	var form reportFilter
	readFormCookie(r, reportFilterCookie, &form)

	h.render(w, r, "report", "Playlist Report", reportPageData{
		DJs:          djs,
		Form:         form,
		ShowPlaylist: form.Date != "" && form.DJID != "",
	})
}

// ReportFilterSubmit runs the comparison for the submitted filters and
// re-renders the page with the result table.
func (h *Handler) ReportFilterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := reportFilter{
		Date:     r.PostFormValue("reportDate"),
		DJID:     r.PostFormValue("reportDJ"),
		TimeSlot: r.PostFormValue("reportTimeSlot"),
	}
	if form.TimeSlot == "" {
		form.TimeSlot = report.SlotAll
	}
	setFormCookie(w, reportFilterCookie, form)

	djs, err := h.schedule.DJs(r.Context())
	if err != nil {
		http.Error(w, "error loading report page", http.StatusInternalServerError)
		return
	}

	data := reportPageData{
		DJs:          djs,
		Form:         form,
		ShowPlaylist: form.Date != "" && form.DJID != "",
	}

	rep, err := h.reports.GetReport(r.Context(), form.Date, form.DJID, form.TimeSlot)
	if err != nil {
		// Persistence failure: keep the submitted filters on screen and
		// show the empty state rather than a failure page.
		h.logger.Error().Err(err).Msg("report fetch failed")
		h.render(w, r, "report", "Playlist Report", data)
		return
	}

	data.Report = rep
	data.DJName = djDisplayName(rep, form.DJID, djs)

	h.render(w, r, "report", "Playlist Report", data)
}

// djDisplayName resolves the DJ shown in the report heading. Aggregate
// reports leave Report.DJ nil, so the name comes from the submitted id.
func djDisplayName(rep *report.Report, djID string, djs []models.DJ) string {
	if rep != nil && rep.DJ != nil {
		return rep.DJ.Name
	}
	for _, dj := range djs {
		if dj.ID == djID {
			return dj.Name
		}
	}
	return ""
}
