/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/friendsincode/aircheck/internal/models"
	"github.com/friendsincode/aircheck/internal/schedule"
)

const scheduleFormCookie = "aircheck_schedule_form"

type scheduleForm struct {
	Date      string `json:"date"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

type schedulePageData struct {
	DJs          []models.DJ
	Saved        []models.Assignment
	Form         scheduleForm
	Errors       []string
	Success      string
	Today        string
	SelectedDate string
}

// SchedulePage renders the assignment form with the saved assignments for
// the selected (or current) date.
func (h *Handler) SchedulePage(w http.ResponseWriter, r *http.Request) {
	djs, err := h.schedule.DJs(r.Context())
	if err != nil {
		http.Error(w, "error loading schedule page", http.StatusInternalServerError)
		return
	}

	var form scheduleForm
	readFormCookie(r, scheduleFormCookie, &form)

	selectedDate := r.URL.Query().Get("date")
	if selectedDate == "" {
		selectedDate = form.Date
	}
	if selectedDate == "" {
		selectedDate = time.Now().Format("2006-01-02")
	}

	saved, err := h.schedule.AssignmentsForDate(r.Context(), selectedDate)
	if err != nil {
		h.logger.Error().Err(err).Str("date", selectedDate).Msg("saved assignments fetch failed")
	}

	h.render(w, r, "schedule", "DJ Schedule", schedulePageData{
		DJs:          djs,
		Saved:        saved,
		Form:         form,
		Today:        time.Now().Format("2006-01-02"),
		SelectedDate: selectedDate,
	})
}

// ScheduleSubmit validates and saves a day's three slot assignments.
func (h *Handler) ScheduleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := scheduleForm{
		Date:      r.PostFormValue("day"),
		Morning:   r.PostFormValue("morning"),
		Afternoon: r.PostFormValue("afternoon"),
		Evening:   r.PostFormValue("evening"),
	}

	djs, err := h.schedule.DJs(r.Context())
	if err != nil {
		http.Error(w, "error loading schedule page", http.StatusInternalServerError)
		return
	}

	data := schedulePageData{
		DJs:          djs,
		Form:         form,
		Today:        time.Now().Format("2006-01-02"),
		SelectedDate: form.Date,
	}

	err = h.schedule.ReplaceDay(r.Context(), form.Date, schedule.DayAssignments{
		Morning:   form.Morning,
		Afternoon: form.Afternoon,
		Evening:   form.Evening,
	})
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			data.Errors = verr.Violations
		} else {
			data.Errors = []string{"An error occurred while saving assignments"}
		}
		// Re-render with the submitted values so nothing must be retyped.
		setFormCookie(w, scheduleFormCookie, form)
		data.Saved, _ = h.schedule.AssignmentsForDate(r.Context(), form.Date)
		h.render(w, r, "schedule", "DJ Schedule", data)
		return
	}

	clearFormCookie(w, scheduleFormCookie)
	data.Form = scheduleForm{}
	data.Success = "Assignments saved successfully!"
	data.Saved, _ = h.schedule.AssignmentsForDate(r.Context(), form.Date)

	h.render(w, r, "schedule", "DJ Schedule", data)
}

// ScheduleExport serves a day's assignments as an iCal download.
func (h *Handler) ScheduleExport(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	result, err := h.schedule.ExportToICal(r.Context(), date)
	if err != nil {
		http.Error(w, "error exporting schedule", http.StatusInternalServerError)
		return
	}
	if result == nil {
		http.Error(w, "no assignments for the given date", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Write(result.Data)
}
