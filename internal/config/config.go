/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int
	DBBackend   DatabaseBackend
	DBDSN       string
	MetricsBind string

	// CORSOrigins restricts the JSON data API. "*" is the development
	// default; set explicit origins in production.
	CORSOrigins []string
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("AIRCHECK_ENV", "development"),
		HTTPBind:    getEnv("AIRCHECK_HTTP_BIND", "0.0.0.0"),
		HTTPPort:    getEnvInt("AIRCHECK_HTTP_PORT", 8080),
		DBBackend:   DatabaseBackend(getEnv("AIRCHECK_DB_BACKEND", string(DatabaseSQLite))),
		DBDSN:       getEnv("AIRCHECK_DB_DSN", "aircheck.db"),
		MetricsBind: getEnv("AIRCHECK_METRICS_BIND", "127.0.0.1:9000"),
		CORSOrigins: []string{getEnv("AIRCHECK_CORS_ORIGIN", "*")},
	}

	if cfg.DBBackend != DatabasePostgres && cfg.DBBackend != DatabaseMySQL && cfg.DBBackend != DatabaseSQLite {
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("AIRCHECK_DB_DSN must be provided")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}
