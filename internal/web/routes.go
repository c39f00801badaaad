/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers all web UI routes on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Handle("/static/*", h.StaticHandler())

	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><circle cx="16" cy="16" r="14" fill="#0ea5e9"/><path d="M10 22V12l12-3v10" stroke="white" stroke-width="2" fill="none"/><circle cx="10" cy="22" r="2.5" fill="white"/><circle cx="22" cy="19" r="2.5" fill="white"/></svg>`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/reports", http.StatusFound)
	})

	r.Get("/reports", h.ReportPage)
	r.Post("/reports", h.ReportFilterSubmit)

	r.Get("/schedule", h.SchedulePage)
	r.Post("/schedule", h.ScheduleSubmit)
	r.Get("/schedule/export.ics", h.ScheduleExport)
}
