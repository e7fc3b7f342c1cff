package models

import (
	"time"

	"gorm.io/gorm"
)

type ExhibitionStatus string

const (
	ExhibitionUpcoming ExhibitionStatus = "UPCOMING"
	ExhibitionOngoing  ExhibitionStatus = "ONGOING"
	ExhibitionPast     ExhibitionStatus = "PAST"
)

type Exhibition struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Location     string     `json:"location"`
	Address      string     `json:"address"`
	StartDate    *time.Time `gorm:"type:date" json:"start_date"`
	EndDate      *time.Time `gorm:"type:date" json:"end_date"`
	ImageURL     string     `json:"image_url"`
	VideoURLs    []string   `gorm:"serializer:json;type:jsonb" json:"video_urls,omitempty"`
	URL          string     `json:"url"`
	DisplayOrder int        `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Derived on every read, never persisted. Recomputing keeps the status
	// correct after downtime and avoids stale rows when a date boundary passes.
	Status ExhibitionStatus `gorm:"-" json:"status"`
}

// StatusOn derives the lifecycle status for a given day.
// A nil end date means the exhibition never expires into PAST.
func (e *Exhibition) StatusOn(today time.Time) ExhibitionStatus {
	day := today.Truncate(24 * time.Hour)
	if e.StartDate == nil {
		return ExhibitionUpcoming
	}
	if day.Before(e.StartDate.Truncate(24 * time.Hour)) {
		return ExhibitionUpcoming
	}
	if e.EndDate != nil && day.After(e.EndDate.Truncate(24*time.Hour)) {
		return ExhibitionPast
	}
	return ExhibitionOngoing
}

func (e *Exhibition) AfterFind(tx *gorm.DB) error {
	e.Status = e.StatusOn(time.Now())
	return nil
}
