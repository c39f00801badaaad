/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package datewindow computes the UTC range used to query records for a
// calendar day. Upstream writers have stored the "same" day at varying UTC
// offsets (noon local can land as early-morning or late-evening UTC), so
// the window pads one day to each side. It is deliberately over-inclusive;
// callers that need exact-day precision must also filter on slot and DJ.
package datewindow

import (
	"strconv"
	"strings"
	"time"
)

// Window is an inclusive UTC timestamp range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolve computes the padded window for a calendar date string. A
// YYYY-MM-DD string is decomposed from its literal digits, never through a
// local-timezone parser, to avoid off-by-one-day drift. Anything else
// falls back to generic date parsing followed by UTC-field decomposition.
func Resolve(date string) Window {
	if y, m, d, ok := splitISODate(date); ok {
		return fromYMD(y, m, d)
	}
	return FromTime(parseLoose(date))
}

// FromTime computes the padded window for a date value, decomposing via
// UTC fields rather than local fields.
func FromTime(t time.Time) Window {
	u := t.UTC()
	return fromYMD(u.Year(), int(u.Month()), u.Day())
}

func fromYMD(year, month, day int) Window {
	// time.Date normalizes day-1/day+1 across month and year boundaries.
	return Window{
		Start: time.Date(year, time.Month(month), day-1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.Month(month), day+1, 23, 59, 59, int(999*time.Millisecond), time.UTC),
	}
}

// splitISODate extracts (year, month, day) from a YYYY-MM-DD string. It
// accepts exactly three dash-separated numeric components.
func splitISODate(date string) (year, month, day int, ok bool) {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], true
}

// parseLoose interprets non-ISO date strings. An unparseable string yields
// the zero time, which resolves to a window no stored record falls in.
func parseLoose(date string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Time{}
}
