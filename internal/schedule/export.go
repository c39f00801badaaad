/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/friendsincode/aircheck/internal/models"
)

// Broadcast-day slot boundaries, local time.
var slotHours = map[models.TimeSlot][2]int{
	models.TimeSlotMorning:   {6, 12},
	models.TimeSlotAfternoon: {12, 18},
	models.TimeSlotEvening:   {18, 24},
}

// ExportICalResult contains the iCal export data.
type ExportICalResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ExportToICal exports a day's slot assignments as a calendar so DJs can
// subscribe to their shifts from a phone or desktop calendar.
func (s *Service) ExportToICal(ctx context.Context, date string) (*ExportICalResult, error) {
	assignments, err := s.AssignmentsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.WriteString("BEGIN:VCALENDAR\r\n")
	buf.WriteString("VERSION:2.0\r\n")
	buf.WriteString("PRODID:-//Aircheck//Slot Assignments//EN\r\n")
	buf.WriteString(fmt.Sprintf("X-WR-CALNAME:DJ Schedule %s\r\n", date))
	buf.WriteString("CALSCALE:GREGORIAN\r\n")
	buf.WriteString("METHOD:PUBLISH\r\n")

	for _, asn := range assignments {
		hours, ok := slotHours[asn.TimeSlot]
		if !ok {
			continue
		}
		starts := time.Date(day.Year(), day.Month(), day.Day(), hours[0], 0, 0, 0, time.Local)
		ends := time.Date(day.Year(), day.Month(), day.Day(), hours[1], 0, 0, 0, time.Local)

		djName := "Unassigned"
		if asn.DJ != nil {
			djName = asn.DJ.Name
		}

		buf.WriteString("BEGIN:VEVENT\r\n")
		buf.WriteString(fmt.Sprintf("UID:%s@aircheck\r\n", asn.ID))
		buf.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICalTime(time.Now())))
		buf.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICalTime(starts)))
		buf.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICalTime(ends)))
		buf.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICalText(fmt.Sprintf("%s Show - %s", asn.TimeSlot, djName))))
		buf.WriteString("END:VEVENT\r\n")
	}

	buf.WriteString("END:VCALENDAR\r\n")

	return &ExportICalResult{
		Data:        buf.Bytes(),
		Filename:    fmt.Sprintf("dj-schedule-%s.ics", date),
		ContentType: "text/calendar; charset=utf-8",
	}, nil
}

func formatICalTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func escapeICalText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
