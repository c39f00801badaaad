/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// TimeSlot enumerates the three daily broadcast periods.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "Morning"
	TimeSlotAfternoon TimeSlot = "Afternoon"
	TimeSlotEvening   TimeSlot = "Evening"
)

// TimeSlots lists all slots in broadcast order. Aggregate reports iterate
// this order, not alphabetical order.
var TimeSlots = []TimeSlot{TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening}

// Valid reports whether s names a known slot.
func (s TimeSlot) Valid() bool {
	switch s {
	case TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening:
		return true
	}
	return false
}

// DJ is an on-air host that can be assigned to slots.
type DJ struct {
	ID              string `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string `gorm:"type:varchar(255);not null;index" json:"name"`
	ExperienceYears int    `gorm:"not null;default:0" json:"experience_years"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (DJ) TableName() string {
	return "djs"
}

// Song is an immutable catalog entry. PreviewURL is empty when no preview
// audio is available.
type Song struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string `gorm:"type:varchar(255);not null;index" json:"title"`
	Artist     string `gorm:"type:varchar(255);not null;index" json:"artist"`
	PreviewURL string `gorm:"type:varchar(512)" json:"preview_url"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (Song) TableName() string {
	return "songs"
}

// Assignment binds one DJ to one slot on one calendar day. The writer
// replaces a whole day at once, so together with the unique index there is
// never more than one DJ per (date, slot).
type Assignment struct {
	ID       string    `gorm:"type:uuid;primaryKey" json:"id"`
	Date     time.Time `gorm:"not null;index:idx_assignments_date;uniqueIndex:idx_assignments_date_slot_dj" json:"date"`
	TimeSlot TimeSlot  `gorm:"type:varchar(16);not null;uniqueIndex:idx_assignments_date_slot_dj" json:"time_slot"`
	DJID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_date_slot_dj" json:"dj_id"`

	DJ *DJ `gorm:"foreignKey:DJID" json:"dj,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (Assignment) TableName() string {
	return "assignments"
}

// Playlist is the planned/played record for one (date, slot, DJ) triple.
// Playlists are written by station setup (the seed command); the report
// side only reads them.
type Playlist struct {
	ID       string    `gorm:"type:uuid;primaryKey" json:"id"`
	Date     time.Time `gorm:"not null;index:idx_playlists_date;index:idx_playlists_date_slot_dj" json:"date"`
	TimeSlot TimeSlot  `gorm:"type:varchar(16);not null;index:idx_playlists_date_slot_dj" json:"time_slot"`
	DJID     string    `gorm:"type:uuid;not null;index:idx_playlists_date_slot_dj" json:"dj_id"`

	DJ    *DJ            `gorm:"foreignKey:DJID" json:"dj,omitempty"`
	Items []PlaylistItem `gorm:"foreignKey:PlaylistID" json:"items"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistItem references one song at a 1-based position. IsPlanned and
// IsPlayed are independent flags: a song can be planned and never air, and
// the match verdict requires both to be true.
type PlaylistItem struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	PlaylistID string `gorm:"type:uuid;not null;index:idx_playlist_items_playlist" json:"playlist_id"`
	SongID     string `gorm:"type:uuid;not null" json:"song_id"`
	Position   int    `gorm:"not null" json:"position"`
	IsPlanned  bool   `gorm:"not null;default:true" json:"is_planned"`
	IsPlayed   bool   `gorm:"not null;default:false" json:"is_played"`

	Song *Song `gorm:"foreignKey:SongID" json:"song,omitempty"`
}

// TableName returns the table name for GORM.
func (PlaylistItem) TableName() string {
	return "playlist_items"
}
