package models

import (
	"time"
)

type MessageStatus string

const (
	MessageNew      MessageStatus = "NEW"
	MessageRead     MessageStatus = "READ"
	MessageReplied  MessageStatus = "REPLIED"
	MessageArchived MessageStatus = "ARCHIVED"
)

type ContactMessage struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"not null" json:"name"`
	Email     string        `gorm:"not null" json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Message   string        `gorm:"type:text;not null" json:"message"`
	IsRead    bool          `gorm:"default:false" json:"is_read"`
	Status    MessageStatus `gorm:"size:16;default:'NEW'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// MarkRead flips the read flag. Only a NEW message is downgraded to READ;
// REPLIED and ARCHIVED keep their status.
func (m *ContactMessage) MarkRead() {
	m.IsRead = true
	if m.Status == MessageNew {
		m.Status = MessageRead
	}
}

// ValidMessageStatus reports whether s is one of the known statuses.
func ValidMessageStatus(s MessageStatus) bool {
	switch s {
	case MessageNew, MessageRead, MessageReplied, MessageArchived:
		return true
	}
	return false
}
