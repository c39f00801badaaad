/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package report reconciles a playlist's planned sequence against what
// actually aired and produces per-position match verdicts.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/aircheck/internal/datewindow"
	"github.com/friendsincode/aircheck/internal/models"
	"github.com/friendsincode/aircheck/internal/telemetry"
)

// SlotAll requests every slot in one aggregated report.
const SlotAll = "all"

// NotPlayed is the played-column placeholder for a song that never aired.
const NotPlayed = "Not played"

// unknownTitle stands in for a song reference that no longer resolves.
const unknownTitle = "Unknown"

// Row is one comparison record. Match holds exactly when the item was
// planned, was played, and its song reference still resolves; a mismatch
// is a planned song that did not air, not a swap to a different song.
type Row struct {
	Position   int    `json:"position"`
	Planned    string `json:"planned"`
	Played     string `json:"played"`
	Match      bool   `json:"match"`
	SongID     string `json:"song_id"`
	Artist     string `json:"artist"`
	PreviewURL string `json:"preview_url"`
}

// Summary aggregates the verdicts of a report.
type Summary struct {
	Matches    int `json:"matches"`
	Mismatches int `json:"mismatches"`
	Total      int `json:"total"`
}

// Report is a reconciled playlist. DJ is nil on aggregate ("all") reports;
// callers that need the display name resolve it from the dj id they
// supplied.
type Report struct {
	Items    []Row      `json:"items"`
	Summary  Summary    `json:"summary"`
	Date     time.Time  `json:"date"`
	TimeSlot string     `json:"time_slot"`
	DJ       *models.DJ `json:"dj,omitempty"`
}

// Service produces comparison reports. It is read-only.
type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewService creates a report service.
func NewService(db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "report").Logger(),
	}
}

// GetReport resolves a report for the given filters. slot may be a slot
// name, "all", or empty (treated as "all"). A nil report with a nil error
// means no data matched; that is a normal renderable state, not a failure.
func (s *Service) GetReport(ctx context.Context, date, djID, slot string) (*Report, error) {
	if slot == "" || slot == SlotAll {
		return s.AggregateAll(ctx, date, djID)
	}
	return s.Reconcile(ctx, date, djID, models.TimeSlot(slot))
}

// Reconcile fetches the unique playlist for (date window, dj, slot) and
// compares planned against played per item.
func (s *Service) Reconcile(ctx context.Context, date, djID string, slot models.TimeSlot) (*Report, error) {
	if date == "" || djID == "" {
		s.logger.Debug().Str("date", date).Str("dj_id", djID).Msg("report filters incomplete")
		return nil, nil
	}
	// A dj id that is not a valid store key cannot match anything; treat
	// it the same as no data rather than raising.
	if err := uuid.Validate(djID); err != nil {
		s.logger.Debug().Str("dj_id", djID).Msg("malformed dj id, returning no data")
		return nil, nil
	}

	window := datewindow.Resolve(date)

	var playlist models.Playlist
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ? AND dj_id = ? AND time_slot = ?", window.Start, window.End, djID, slot).
		Preload("DJ").
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Preload("Items.Song").
		First(&playlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug().Str("date", date).Str("dj_id", djID).Str("time_slot", string(slot)).Msg("no playlist found")
			return nil, nil
		}
		s.logger.Error().Err(err).Str("date", date).Str("dj_id", djID).Str("time_slot", string(slot)).Msg("playlist query failed")
		return nil, fmt.Errorf("fetch playlist: %w", err)
	}

	if len(playlist.Items) == 0 {
		s.logger.Debug().Str("playlist_id", playlist.ID).Msg("playlist has no items")
		return nil, nil
	}

	items := playlist.Items
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	rep := &Report{
		Items:    make([]Row, 0, len(items)),
		Date:     playlist.Date,
		TimeSlot: string(playlist.TimeSlot),
		DJ:       playlist.DJ,
	}
	for _, item := range items {
		row := buildRow(item)
		rep.Items = append(rep.Items, row)
		rep.Summary.Total++
		if row.Match {
			rep.Summary.Matches++
		} else if item.IsPlanned && !item.IsPlayed {
			rep.Summary.Mismatches++
		}
	}

	telemetry.ReportsGenerated.WithLabelValues(string(slot)).Inc()
	return rep, nil
}

// AggregateAll reconciles every slot in broadcast order and concatenates
// the results. It returns no data only when every slot returned no data;
// partial coverage is a valid report.
func (s *Service) AggregateAll(ctx context.Context, date, djID string) (*Report, error) {
	var rows []Row
	var sum Summary
	var reportDate time.Time

	for _, slot := range models.TimeSlots {
		sub, err := s.Reconcile(ctx, date, djID, slot)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			continue
		}
		rows = append(rows, sub.Items...)
		sum.Matches += sub.Summary.Matches
		sum.Mismatches += sub.Summary.Mismatches
		sum.Total += sub.Summary.Total
		if reportDate.IsZero() {
			reportDate = sub.Date
		}
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &Report{
		Items:    rows,
		Summary:  sum,
		Date:     reportDate,
		TimeSlot: SlotAll,
		// DJ is intentionally left unresolved on aggregates.
	}, nil
}

func buildRow(item models.PlaylistItem) Row {
	song := item.Song

	row := Row{
		Position: item.Position,
		Planned:  unknownTitle,
		Artist:   unknownTitle,
		SongID:   item.SongID,
		Match:    item.IsPlanned && item.IsPlayed && song != nil,
	}
	if song != nil {
		row.Planned = song.Title
		row.Artist = song.Artist
		row.PreviewURL = song.PreviewURL
	}
	if item.IsPlayed {
		row.Played = row.Planned
	} else {
		row.Played = NotPlayed
	}
	return row
}
