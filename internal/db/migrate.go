/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/friendsincode/aircheck/internal/models"
)

// Migrate applies database schema migrations using GORM auto-migrate.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&models.DJ{},
		&models.Song{},
		&models.Assignment{},
		&models.Playlist{},
		&models.PlaylistItem{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Reset drops all application tables and re-creates them empty.
func Reset(database *gorm.DB) error {
	tables := []any{
		&models.PlaylistItem{},
		&models.Playlist{},
		&models.Assignment{},
		&models.Song{},
		&models.DJ{},
	}
	for _, table := range tables {
		if err := database.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return Migrate(database)
}
