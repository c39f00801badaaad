/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/aircheck/internal/api"
	"github.com/friendsincode/aircheck/internal/config"
	"github.com/friendsincode/aircheck/internal/db"
	"github.com/friendsincode/aircheck/internal/report"
	"github.com/friendsincode/aircheck/internal/schedule"
	"github.com/friendsincode/aircheck/internal/telemetry"
	"github.com/friendsincode/aircheck/internal/web"
)

// Server bundles the HTTP surface and its supporting services.
type Server struct {
	cfg    *config.Config
	logger zerolog.Logger
	router chi.Router

	db         *gorm.DB
	reports    *report.Service
	schedule   *schedule.Service
	api        *api.API
	webHandler *web.Handler

	httpServer    *http.Server
	metricsServer *http.Server
}

// New connects the database, runs migrations, and wires all handlers.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	database, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.Migrate(database); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	reports := report.NewService(database, logger)
	scheduleSvc := schedule.NewService(database, logger)

	apiHandler := api.New(reports, scheduleSvc, logger)

	webHandler, err := web.NewHandler(reports, scheduleSvc, logger)
	if err != nil {
		return nil, fmt.Errorf("create web handler: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		db:         database,
		reports:    reports,
		schedule:   scheduleSvc,
		api:        apiHandler,
		webHandler: webHandler,
	}

	s.buildRouter()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	s.metricsServer = &http.Server{
		Addr:              cfg.MetricsBind,
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) buildRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.MetricsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		s.api.Routes(r)
	})

	s.webHandler.Routes(r)

	s.router = r
}

// HTTPServer returns the main HTTP server.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// MetricsServer returns the prometheus metrics listener.
func (s *Server) MetricsServer() *http.Server {
	return s.metricsServer
}

// Router returns the configured router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Close releases server resources.
func (s *Server) Close() error {
	return db.Close(s.db)
}
