/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/friendsincode/aircheck/internal/models"
	"github.com/friendsincode/aircheck/internal/report"
	"github.com/friendsincode/aircheck/internal/schedule"
)

// API exposes the JSON data endpoints. It returns the same payload shapes
// the web pages render, so clients and templates never recompute
// match/mismatch status themselves.
type API struct {
	reports  *report.Service
	schedule *schedule.Service
	logger   zerolog.Logger
}

// New creates the API handler set.
func New(reports *report.Service, scheduleSvc *schedule.Service, logger zerolog.Logger) *API {
	return &API{
		reports:  reports,
		schedule: scheduleSvc,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// Routes registers the data API under the given router.
func (a *API) Routes(r chi.Router) {
	r.Get("/reports", a.handleGetReport)
	r.Get("/assignments/{date}", a.handleGetAssignments)
	r.Post("/assignments", a.handleSaveAssignments)
	r.Get("/djs", a.handleListDJs)
}

// handleGetReport serves a playlist comparison report. time_slot may be a
// slot name, "all", or omitted.
func (a *API) handleGetReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	djID := q.Get("dj_id")
	slot := q.Get("time_slot")

	rep, err := a.reports.GetReport(r.Context(), date, djID, slot)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error fetching report data")
		return
	}
	if rep == nil {
		writeError(w, http.StatusNotFound, "no report for the given filters")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

type assignmentResponse struct {
	TimeSlot models.TimeSlot `json:"time_slot"`
	DJID     string          `json:"dj_id"`
	DJName   string          `json:"dj_name,omitempty"`
}

// handleGetAssignments returns a day's slot assignments sorted by slot name.
func (a *API) handleGetAssignments(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	assignments, err := a.schedule.AssignmentsForDate(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error fetching assignments")
		return
	}

	out := make([]assignmentResponse, 0, len(assignments))
	for _, asn := range assignments {
		resp := assignmentResponse{TimeSlot: asn.TimeSlot, DJID: asn.DJID}
		if asn.DJ != nil {
			resp.DJName = asn.DJ.Name
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

type saveAssignmentsRequest struct {
	Date      string `json:"date"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// handleSaveAssignments replaces a day's three slot assignments.
func (a *API) handleSaveAssignments(w http.ResponseWriter, r *http.Request) {
	var req saveAssignmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := a.schedule.ReplaceDay(r.Context(), req.Date, schedule.DayAssignments{
		Morning:   req.Morning,
		Afternoon: req.Afternoon,
		Evening:   req.Evening,
	})
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verr.Violations})
			return
		}
		writeError(w, http.StatusInternalServerError, "error saving assignments")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListDJs returns all DJs ordered by name.
func (a *API) handleListDJs(w http.ResponseWriter, r *http.Request) {
	djs, err := a.schedule.DJs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error fetching djs")
		return
	}
	writeJSON(w, http.StatusOK, djs)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
