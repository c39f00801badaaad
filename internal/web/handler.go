/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/aircheck/internal/report"
	"github.com/friendsincode/aircheck/internal/schedule"
	"github.com/friendsincode/aircheck/internal/version"
)

// Handler provides web UI endpoints with server-rendered templates.
type Handler struct {
	reports   *report.Service
	schedule  *schedule.Service
	logger    zerolog.Logger
	templates map[string]*template.Template // Each page gets its own template set
}

// PageData holds common data passed to all templates.
type PageData struct {
	Title       string
	CurrentPath string
	Version     string
	Data        any
}

// NewHandler creates a new web handler.
func NewHandler(reports *report.Service, scheduleSvc *schedule.Service, logger zerolog.Logger) (*Handler, error) {
	h := &Handler{
		reports:  reports,
		schedule: scheduleSvc,
		logger:   logger.With().Str("component", "web").Logger(),
	}

	if err := h.loadTemplates(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return h, nil
}

func (h *Handler) loadTemplates() error {
	funcMap := template.FuncMap{
		"formatDate": formatDate,
	}

	pages := []string{"report", "schedule"}
	h.templates = make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(
			TemplateFS,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return fmt.Errorf("parse %s templates: %w", page, err)
		}
		h.templates[page] = tmpl
	}
	return nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	tmpl, ok := h.templates[page]
	if !ok {
		h.logger.Error().Str("page", page).Msg("unknown template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pd := PageData{
		Title:       title,
		CurrentPath: r.URL.Path,
		Version:     version.Version,
		Data:        data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", pd); err != nil {
		h.logger.Error().Err(err).Str("page", page).Msg("template render failed")
	}
}

// StaticHandler serves embedded static assets.
func (h *Handler) StaticHandler() http.Handler {
	sub, err := fs.Sub(StaticFS, "static")
	if err != nil {
		h.logger.Error().Err(err).Msg("static fs unavailable")
		return http.NotFoundHandler()
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// Form-restoration cookies replace the original session store: filters
// survive navigation without any server-side session state.

func setFormCookie(w http.ResponseWriter, name string, values any) {
	raw, err := json.Marshal(values)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.URLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func readFormCookie(r *http.Request, name string, values any) bool {
	cookie, err := r.Cookie(name)
	if err != nil {
		return false
	}
	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, values) == nil
}

func clearFormCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func formatDate(t time.Time) string {
	return t.Format("Mon, Jan 2 2006")
}
