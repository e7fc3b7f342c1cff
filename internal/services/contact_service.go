package services

import (
	"errors"
	"fmt"

	"github.com/pgf/backend/internal/models"
	"github.com/pgf/backend/pkg/validation"
	"gorm.io/gorm"
)

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// GetAll returns all messages, newest first
func (s *ContactService) GetAll() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := s.db.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

// GetByID returns one message
func (s *ContactService) GetByID(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := s.db.First(&message, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetUnread returns unread messages, newest first
func (s *ContactService) GetUnread() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := s.db.Where("is_read = ?", false).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

// CountUnread returns the number of unread messages
func (s *ContactService) CountUnread() (int64, error) {
	var count int64
	err := s.db.Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

// GetByStatus returns messages with the given status, newest first
func (s *ContactService) GetByStatus(status models.MessageStatus) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := s.db.Where("status = ?", status).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

// Create stores a new incoming message. Every message starts unread with
// status NEW regardless of what the caller sent.
func (s *ContactService) Create(message *models.ContactMessage) (*models.ContactMessage, error) {
	if message.Name == "" || message.Message == "" {
		return nil, fmt.Errorf("name and message are required")
	}
	if !validation.ValidateEmail(message.Email) {
		return nil, fmt.Errorf("invalid email address")
	}

	message.Name = validation.SanitizeString(message.Name)
	message.Subject = validation.SanitizeString(message.Subject)
	message.Message = validation.SanitizeString(message.Message)
	message.IsRead = false
	message.Status = models.MessageNew

	if err := s.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// MarkAsRead flips the read flag; REPLIED and ARCHIVED statuses survive
func (s *ContactService) MarkAsRead(id uint) (*models.ContactMessage, error) {
	message, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	message.MarkRead()
	if err := s.db.Save(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// UpdateStatus sets an explicit status on a message
func (s *ContactService) UpdateStatus(id uint, status models.MessageStatus) (*models.ContactMessage, error) {
	if !models.ValidMessageStatus(status) {
		return nil, fmt.Errorf("unknown message status: %s", status)
	}
	message, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	message.Status = status
	if err := s.db.Save(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// Delete removes a message
func (s *ContactService) Delete(id uint) error {
	result := s.db.Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
