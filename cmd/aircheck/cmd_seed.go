/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/friendsincode/aircheck/internal/db"
	"github.com/friendsincode/aircheck/internal/models"
)

//go:embed seed.yaml
var defaultSeed []byte

var (
	seedFile  string
	seedReset bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with station data",
	Long: `Load DJs, songs, playlists, and assignments from a YAML fixture.

Without --file the built-in development fixture is loaded. Playlists are
the planned/played record the report pages compare; this command is how
station setup populates them.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML fixture to load (default: built-in sample data)")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Drop and re-create all tables first")
	rootCmd.AddCommand(seedCmd)
}

type seedFixture struct {
	DJs []struct {
		Name            string `yaml:"name"`
		ExperienceYears int    `yaml:"experience_years"`
	} `yaml:"djs"`
	Songs []struct {
		Title      string `yaml:"title"`
		Artist     string `yaml:"artist"`
		PreviewURL string `yaml:"preview_url"`
	} `yaml:"songs"`
	Playlists []struct {
		Date     string `yaml:"date"`
		TimeSlot string `yaml:"time_slot"`
		DJ       string `yaml:"dj"`
		Items    []struct {
			Song    string `yaml:"song"`
			Planned *bool  `yaml:"planned"`
			Played  bool   `yaml:"played"`
		} `yaml:"items"`
	} `yaml:"playlists"`
	Assignments []struct {
		Date     string `yaml:"date"`
		TimeSlot string `yaml:"time_slot"`
		DJ       string `yaml:"dj"`
	} `yaml:"assignments"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	raw := defaultSeed
	if seedFile != "" {
		var err error
		raw, err = os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("read fixture: %w", err)
		}
	}

	var fixture seedFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	database, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close(database)

	if seedReset {
		if err := db.Reset(database); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
	} else if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		djIDs := make(map[string]string, len(fixture.DJs))
		for _, d := range fixture.DJs {
			dj := models.DJ{ID: uuid.NewString(), Name: d.Name, ExperienceYears: d.ExperienceYears}
			if err := tx.Create(&dj).Error; err != nil {
				return fmt.Errorf("create dj %q: %w", d.Name, err)
			}
			djIDs[d.Name] = dj.ID
		}

		songIDs := make(map[string]string, len(fixture.Songs))
		for _, s := range fixture.Songs {
			song := models.Song{ID: uuid.NewString(), Title: s.Title, Artist: s.Artist, PreviewURL: s.PreviewURL}
			if err := tx.Create(&song).Error; err != nil {
				return fmt.Errorf("create song %q: %w", s.Title, err)
			}
			songIDs[s.Title] = song.ID
		}

		for _, p := range fixture.Playlists {
			date, err := seedDate(p.Date)
			if err != nil {
				return fmt.Errorf("playlist date %q: %w", p.Date, err)
			}
			djID, ok := djIDs[p.DJ]
			if !ok {
				return fmt.Errorf("playlist references unknown dj %q", p.DJ)
			}

			playlist := models.Playlist{
				ID:       uuid.NewString(),
				Date:     date,
				TimeSlot: models.TimeSlot(p.TimeSlot),
				DJID:     djID,
			}
			for i, item := range p.Items {
				songID, ok := songIDs[item.Song]
				if !ok {
					return fmt.Errorf("playlist references unknown song %q", item.Song)
				}
				planned := true
				if item.Planned != nil {
					planned = *item.Planned
				}
				playlist.Items = append(playlist.Items, models.PlaylistItem{
					ID:        uuid.NewString(),
					SongID:    songID,
					Position:  i + 1,
					IsPlanned: planned,
					IsPlayed:  item.Played,
				})
			}
			if err := tx.Create(&playlist).Error; err != nil {
				return fmt.Errorf("create playlist for %q: %w", p.DJ, err)
			}
		}

		for _, a := range fixture.Assignments {
			date, err := seedDate(a.Date)
			if err != nil {
				return fmt.Errorf("assignment date %q: %w", a.Date, err)
			}
			djID, ok := djIDs[a.DJ]
			if !ok {
				return fmt.Errorf("assignment references unknown dj %q", a.DJ)
			}
			assignment := models.Assignment{
				ID:       uuid.NewString(),
				Date:     date,
				TimeSlot: models.TimeSlot(a.TimeSlot),
				DJID:     djID,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return fmt.Errorf("create assignment for %q: %w", a.DJ, err)
			}
		}

		logger.Info().
			Int("djs", len(fixture.DJs)).
			Int("songs", len(fixture.Songs)).
			Int("playlists", len(fixture.Playlists)).
			Int("assignments", len(fixture.Assignments)).
			Msg("seed complete")
		return nil
	})
}

// seedDate stores fixture dates at local noon, the same canonical
// time-of-day the assignment writer uses.
func seedDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.Local), nil
}
