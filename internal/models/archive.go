package models

import (
	"time"
)

type ArchiveFileType string

const (
	ArchiveFileImage ArchiveFileType = "IMAGE"
	ArchiveFileVideo ArchiveFileType = "VIDEO"
	ArchiveFileAudio ArchiveFileType = "AUDIO"
	ArchiveFilePDF   ArchiveFileType = "PDF"
)

type Archive struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Year         int       `gorm:"not null" json:"year"`
	Description  string    `gorm:"type:text" json:"description"`
	ThumbnailURL string    `gorm:"type:text" json:"thumbnail_url"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Files are deleted with their archive
	Files []ArchiveFile `gorm:"foreignKey:ArchiveID;constraint:OnDelete:CASCADE" json:"files"`
}

type ArchiveFile struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ArchiveID    uint            `gorm:"not null;index" json:"archive_id"`
	FileType     ArchiveFileType `gorm:"size:16;not null" json:"file_type"`
	FileURL      string          `gorm:"type:text;not null" json:"file_url"`
	FileName     string          `json:"file_name"`
	DisplayOrder int             `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ValidFileType reports whether t is one of the supported archive file types.
func ValidFileType(t ArchiveFileType) bool {
	switch t {
	case ArchiveFileImage, ArchiveFileVideo, ArchiveFileAudio, ArchiveFilePDF:
		return true
	}
	return false
}
