/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/friendsincode/aircheck/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.DJ{}, &models.Song{}, &models.Assignment{}, &models.Playlist{}, &models.PlaylistItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createDJ(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()
	dj := models.DJ{ID: uuid.NewString(), Name: name, ExperienceYears: 4}
	if err := db.Create(&dj).Error; err != nil {
		t.Fatalf("create dj: %v", err)
	}
	return dj.ID
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func countAssignments(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Assignment{}).Count(&n).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}
	return n
}

func hasViolation(err error, msg string) bool {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	for _, v := range verr.Violations {
		if v == msg {
			return true
		}
	}
	return false
}

func TestReplaceDayWritesThreeSlots(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	morning := createDJ(t, db, "DJ Alex")
	afternoon := createDJ(t, db, "DJ Maya")
	evening := createDJ(t, db, "DJ Rico")

	date := futureDate(7)
	day := DayAssignments{Morning: morning, Afternoon: afternoon, Evening: evening}
	if err := svc.ReplaceDay(ctx, date, day); err != nil {
		t.Fatalf("replace day: %v", err)
	}
	if n := countAssignments(t, db); n != 3 {
		t.Fatalf("expected 3 assignments, got %d", n)
	}

	got, err := svc.AssignmentsForDate(ctx, date)
	if err != nil {
		t.Fatalf("fetch assignments: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 assignments for the day, got %d", len(got))
	}
	// Ordered by slot name: Afternoon, Evening, Morning.
	wantSlots := []models.TimeSlot{models.TimeSlotAfternoon, models.TimeSlotEvening, models.TimeSlotMorning}
	wantDJs := []string{afternoon, evening, morning}
	for i, a := range got {
		if a.TimeSlot != wantSlots[i] {
			t.Errorf("assignment %d slot = %s, want %s", i, a.TimeSlot, wantSlots[i])
		}
		if a.DJID != wantDJs[i] {
			t.Errorf("assignment %d dj = %s, want %s", i, a.DJID, wantDJs[i])
		}
		if a.DJ == nil || a.DJ.Name == "" {
			t.Errorf("assignment %d missing preloaded DJ", i)
		}
	}
}

func TestReplaceDayIsIdempotentPerDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	a := createDJ(t, db, "DJ Alex")
	b := createDJ(t, db, "DJ Maya")
	c := createDJ(t, db, "DJ Rico")

	date := futureDate(7)
	first := DayAssignments{Morning: a, Afternoon: b, Evening: c}
	if err := svc.ReplaceDay(ctx, date, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	// Resubmitting the same day replaces, never accumulates.
	second := DayAssignments{Morning: c, Afternoon: a, Evening: b}
	if err := svc.ReplaceDay(ctx, date, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	if n := countAssignments(t, db); n != 3 {
		t.Fatalf("expected exactly 3 rows after resubmission, got %d", n)
	}

	got, err := svc.AssignmentsForDate(ctx, date)
	if err != nil {
		t.Fatalf("fetch assignments: %v", err)
	}
	for _, assignment := range got {
		if assignment.TimeSlot == models.TimeSlotMorning && assignment.DJID != c {
			t.Errorf("morning slot kept the old DJ: %s", assignment.DJID)
		}
	}
}

func TestReplaceDayLeavesOtherDaysAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	a := createDJ(t, db, "DJ Alex")
	b := createDJ(t, db, "DJ Maya")
	c := createDJ(t, db, "DJ Rico")

	day := DayAssignments{Morning: a, Afternoon: b, Evening: c}
	if err := svc.ReplaceDay(ctx, futureDate(7), day); err != nil {
		t.Fatalf("replace day one: %v", err)
	}
	if err := svc.ReplaceDay(ctx, futureDate(8), day); err != nil {
		t.Fatalf("replace day two: %v", err)
	}
	if n := countAssignments(t, db); n != 6 {
		t.Fatalf("expected 6 rows across two days, got %d", n)
	}
}

func TestReplaceDayDuplicateDJFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	a := createDJ(t, db, "DJ Alex")
	b := createDJ(t, db, "DJ Maya")

	err := svc.ReplaceDay(ctx, futureDate(7), DayAssignments{Morning: a, Afternoon: a, Evening: b})
	if !hasViolation(err, "A DJ cannot be assigned to both Morning and Afternoon slots") {
		t.Fatalf("expected duplicate-slot violation, got %v", err)
	}
	if n := countAssignments(t, db); n != 0 {
		t.Fatalf("failed validation must not write, found %d rows", n)
	}

	// The duplicate rule holds even when the repeated ID is not a real DJ.
	ghost := uuid.NewString()
	err = svc.ReplaceDay(ctx, futureDate(7), DayAssignments{Morning: ghost, Afternoon: ghost, Evening: b})
	if !hasViolation(err, "A DJ cannot be assigned to both Morning and Afternoon slots") {
		t.Fatalf("expected duplicate-slot violation for unknown id, got %v", err)
	}
}

func TestReplaceDayPastDateFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	a := createDJ(t, db, "DJ Alex")
	b := createDJ(t, db, "DJ Maya")
	c := createDJ(t, db, "DJ Rico")

	err := svc.ReplaceDay(ctx, "2020-01-15", DayAssignments{Morning: a, Afternoon: b, Evening: c})
	if !hasViolation(err, "Date cannot be in the past") {
		t.Fatalf("expected past-date violation, got %v", err)
	}
	if n := countAssignments(t, db); n != 0 {
		t.Fatalf("past-date submission must not mutate, found %d rows", n)
	}
}

func TestReplaceDayTodayIsAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	a := createDJ(t, db, "DJ Alex")
	b := createDJ(t, db, "DJ Maya")
	c := createDJ(t, db, "DJ Rico")

	today := time.Now().Format("2006-01-02")
	if err := svc.ReplaceDay(ctx, today, DayAssignments{Morning: a, Afternoon: b, Evening: c}); err != nil {
		t.Fatalf("today must be assignable: %v", err)
	}
}

func TestReplaceDayUnknownDJReportsSingleViolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	a := createDJ(t, db, "DJ Alex")
	c := createDJ(t, db, "DJ Rico")

	// Pre-existing assignments that a failed save must not disturb.
	date := futureDate(7)
	if err := svc.ReplaceDay(ctx, date, DayAssignments{Morning: a, Afternoon: c, Evening: createDJ(t, db, "DJ Maya")}); err != nil {
		t.Fatalf("initial replace: %v", err)
	}

	err := svc.ReplaceDay(ctx, date, DayAssignments{Morning: a, Afternoon: uuid.NewString(), Evening: c})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0] != "One or more selected DJs do not exist" {
		t.Fatalf("expected exactly the existence violation, got %v", verr.Violations)
	}

	got, fetchErr := svc.AssignmentsForDate(ctx, date)
	if fetchErr != nil {
		t.Fatalf("fetch assignments: %v", fetchErr)
	}
	if len(got) != 3 {
		t.Fatalf("failed save must leave prior assignments intact, got %d", len(got))
	}
}

func TestReplaceDayCollectsAllViolations(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())

	err := svc.ReplaceDay(context.Background(), "", DayAssignments{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{
		"Date is required",
		"Morning slot must have a DJ assigned",
		"Afternoon slot must have a DJ assigned",
		"Evening slot must have a DJ assigned",
	}
	if len(verr.Violations) != len(want) {
		t.Fatalf("expected %d violations, got %v", len(want), verr.Violations)
	}
	for i, msg := range want {
		if verr.Violations[i] != msg {
			t.Errorf("violation %d = %q, want %q", i, verr.Violations[i], msg)
		}
	}
}

func TestReplaceDayMalformedDateFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())

	a := createDJ(t, db, "DJ Alex")
	b := createDJ(t, db, "DJ Maya")
	c := createDJ(t, db, "DJ Rico")

	err := svc.ReplaceDay(context.Background(), "not-a-date", DayAssignments{Morning: a, Afternoon: b, Evening: c})
	if !hasViolation(err, "Date is not a valid calendar date") {
		t.Fatalf("expected calendar-date violation, got %v", err)
	}
}

func TestAssignmentsForDateAbsence(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	got, err := svc.AssignmentsForDate(ctx, "2099-06-01")
	if err != nil {
		t.Fatalf("empty day: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no assignments, got %d", len(got))
	}

	// Garbage dates are absence, not errors.
	got, err = svc.AssignmentsForDate(ctx, "yesterday")
	if err != nil || got != nil {
		t.Fatalf("unparseable date should read as empty, got %v / %v", got, err)
	}
}

func TestDJsOrderedByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())

	createDJ(t, db, "DJ Rico")
	createDJ(t, db, "DJ Alex")
	createDJ(t, db, "DJ Maya")

	djs, err := svc.DJs(context.Background())
	if err != nil {
		t.Fatalf("list djs: %v", err)
	}
	if len(djs) != 3 {
		t.Fatalf("expected 3 djs, got %d", len(djs))
	}
	want := []string{"DJ Alex", "DJ Maya", "DJ Rico"}
	for i, dj := range djs {
		if dj.Name != want[i] {
			t.Errorf("dj %d = %q, want %q", i, dj.Name, want[i])
		}
	}
}

func TestExportToICal(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zerolog.Nop())
	ctx := context.Background()

	a := createDJ(t, db, "DJ Alex")
	b := createDJ(t, db, "DJ Maya")
	c := createDJ(t, db, "DJ Rico")

	date := futureDate(7)
	if err := svc.ReplaceDay(ctx, date, DayAssignments{Morning: a, Afternoon: b, Evening: c}); err != nil {
		t.Fatalf("replace day: %v", err)
	}

	result, err := svc.ExportToICal(ctx, date)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if result == nil {
		t.Fatal("expected calendar data")
	}
	cal := string(result.Data)
	if !strings.Contains(cal, "BEGIN:VCALENDAR") || !strings.Contains(cal, "END:VCALENDAR") {
		t.Error("missing calendar envelope")
	}
	if got := strings.Count(cal, "BEGIN:VEVENT"); got != 3 {
		t.Errorf("expected 3 events, got %d", got)
	}
	if !strings.Contains(cal, "Morning Show - DJ Alex") {
		t.Error("missing morning event summary")
	}
	if result.Filename != "dj-schedule-"+date+".ics" {
		t.Errorf("unexpected filename: %q", result.Filename)
	}

	// A day with no assignments exports nothing.
	result, err = svc.ExportToICal(ctx, futureDate(30))
	if err != nil || result != nil {
		t.Fatalf("empty day should export nil, got %v / %v", result, err)
	}
}
