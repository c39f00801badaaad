/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package schedule manages the day's DJ slot assignments. A day is always
// written wholesale: one submission supplies all three slots and replaces
// whatever was stored for that date.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/aircheck/internal/models"
	"github.com/friendsincode/aircheck/internal/telemetry"
)

// ErrPersistence marks backing-store failures so callers can show a
// generic retry message instead of field-level hints.
var ErrPersistence = errors.New("persistence failure")

// ValidationError lists every violated rule of a day submission. It never
// carries a partial list: validation runs all checks before returning.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("assignment validation failed: %d violation(s)", len(e.Violations))
}

// DayAssignments names the DJ for each of the three slots of one day.
type DayAssignments struct {
	Morning   string
	Afternoon string
	Evening   string
}

// Service reads and replaces day assignments.
type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewService creates a schedule service.
func NewService(db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "schedule").Logger(),
	}
}

// ReplaceDay validates a day submission and, if it passes, atomically
// replaces that day's assignments with the three submitted ones. Returns a
// *ValidationError for caller-fixable input, or an error wrapping
// ErrPersistence when the store fails mid-write.
func (s *Service) ReplaceDay(ctx context.Context, date string, day DayAssignments) error {
	violations := s.validate(ctx, date, day)
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	parsed, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	dayStart := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)

	// Stored at local noon so later skew-tolerant date-window reads find
	// the records no matter which UTC offset they resolve through.
	noon := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.Local)

	assignments := []models.Assignment{
		{ID: uuid.NewString(), Date: noon, TimeSlot: models.TimeSlotMorning, DJID: day.Morning},
		{ID: uuid.NewString(), Date: noon, TimeSlot: models.TimeSlotAfternoon, DJID: day.Afternoon},
		{ID: uuid.NewString(), Date: noon, TimeSlot: models.TimeSlotEvening, DJID: day.Evening},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date >= ? AND date <= ?", dayStart, dayEnd).Delete(&models.Assignment{}).Error; err != nil {
			return fmt.Errorf("delete existing assignments: %w", err)
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return fmt.Errorf("insert assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("date", date).Msg("assignment replace failed")
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	telemetry.AssignmentWrites.Inc()
	s.logger.Info().Str("date", date).Msg("day assignments replaced")
	return nil
}

// validate runs every rule and collects all violations; it never stops at
// the first failure.
func (s *Service) validate(ctx context.Context, date string, day DayAssignments) []string {
	var violations []string

	if date == "" {
		violations = append(violations, "Date is required")
	} else if parsed, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
		violations = append(violations, "Date is not a valid calendar date")
	} else {
		// Compared as dates: time-of-day on the input is ignored.
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if parsed.Before(today) {
			violations = append(violations, "Date cannot be in the past")
		}
	}

	if day.Morning == "" {
		violations = append(violations, "Morning slot must have a DJ assigned")
	}
	if day.Afternoon == "" {
		violations = append(violations, "Afternoon slot must have a DJ assigned")
	}
	if day.Evening == "" {
		violations = append(violations, "Evening slot must have a DJ assigned")
	}

	if day.Morning != "" && day.Afternoon != "" && day.Morning == day.Afternoon {
		violations = append(violations, "A DJ cannot be assigned to both Morning and Afternoon slots")
	}
	if day.Morning != "" && day.Evening != "" && day.Morning == day.Evening {
		violations = append(violations, "A DJ cannot be assigned to both Morning and Evening slots")
	}
	if day.Afternoon != "" && day.Evening != "" && day.Afternoon == day.Evening {
		violations = append(violations, "A DJ cannot be assigned to both Afternoon and Evening slots")
	}

	distinct := distinctIDs(day.Morning, day.Afternoon, day.Evening)
	if len(distinct) > 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.DJ{}).Where("id IN ?", distinct).Count(&count).Error; err != nil {
			s.logger.Error().Err(err).Str("date", date).Msg("dj existence check failed")
			violations = append(violations, "One or more selected DJs do not exist")
		} else if count < int64(len(distinct)) {
			violations = append(violations, "One or more selected DJs do not exist")
		}
	}

	return violations
}

// AssignmentsForDate returns the day's assignments with DJs populated,
// ordered by time slot name. Reads use exact local-day boundaries: the
// writer originates these records at local noon, so no skew window is
// needed.
func (s *Service) AssignmentsForDate(ctx context.Context, date string) ([]models.Assignment, error) {
	parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		// Not a store key problem worth raising; an unparseable date
		// simply has no assignments.
		s.logger.Debug().Str("date", date).Msg("unparseable assignment date")
		return nil, nil
	}

	dayStart := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)

	var assignments []models.Assignment
	if err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", dayStart, dayEnd).
		Preload("DJ").
		Order("time_slot ASC").
		Find(&assignments).Error; err != nil {
		s.logger.Error().Err(err).Str("date", date).Msg("assignment query failed")
		return nil, fmt.Errorf("fetch assignments: %w", err)
	}
	return assignments, nil
}

// DJs lists every DJ ordered by name, for filter and slot dropdowns.
func (s *Service) DJs(ctx context.Context) ([]models.DJ, error) {
	var djs []models.DJ
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&djs).Error; err != nil {
		s.logger.Error().Err(err).Msg("dj list query failed")
		return nil, fmt.Errorf("fetch djs: %w", err)
	}
	return djs, nil
}

func distinctIDs(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
