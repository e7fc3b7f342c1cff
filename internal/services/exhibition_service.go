package services

import (
	"errors"
	"time"

	"github.com/pgf/backend/internal/models"
	"gorm.io/gorm"
)

type ExhibitionService struct {
	db *gorm.DB
}

func NewExhibitionService(db *gorm.DB) *ExhibitionService {
	return &ExhibitionService{db: db}
}

// GetAll returns all exhibitions sorted for display. Status is derived on
// read via the model's AfterFind hook.
func (s *ExhibitionService) GetAll() ([]models.Exhibition, error) {
	var exhibitions []models.Exhibition
	err := s.db.Order("display_order ASC, start_date DESC").Find(&exhibitions).Error
	return exhibitions, err
}

// GetByID returns one exhibition
func (s *ExhibitionService) GetByID(id uint) (*models.Exhibition, error) {
	var exhibition models.Exhibition
	err := s.db.First(&exhibition, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exhibition, nil
}

// GetUpcoming returns exhibitions that have not started yet, soonest first.
// Undated exhibitions count as upcoming.
func (s *ExhibitionService) GetUpcoming() ([]models.Exhibition, error) {
	var exhibitions []models.Exhibition
	err := s.db.Where("start_date IS NULL OR start_date > ?", today()).
		Order("start_date ASC").
		Find(&exhibitions).Error
	return exhibitions, err
}

// GetOngoing returns exhibitions running today. Open-ended runs (no end
// date) stay ongoing once started.
func (s *ExhibitionService) GetOngoing() ([]models.Exhibition, error) {
	var exhibitions []models.Exhibition
	err := s.db.Where("start_date IS NOT NULL AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)", today(), today()).
		Order("start_date ASC").
		Find(&exhibitions).Error
	return exhibitions, err
}

// GetPast returns ended exhibitions, most recent first
func (s *ExhibitionService) GetPast() ([]models.Exhibition, error) {
	var exhibitions []models.Exhibition
	err := s.db.Where("end_date IS NOT NULL AND end_date < ?", today()).
		Order("start_date DESC").
		Find(&exhibitions).Error
	return exhibitions, err
}

// Create stores a new exhibition at the end of the display order when no
// explicit order is given.
func (s *ExhibitionService) Create(exhibition *models.Exhibition) (*models.Exhibition, error) {
	if exhibition.DisplayOrder == 0 {
		exhibition.DisplayOrder = s.maxDisplayOrder() + 1
	}
	if err := s.db.Create(exhibition).Error; err != nil {
		return nil, err
	}
	exhibition.Status = exhibition.StatusOn(time.Now())
	return exhibition, nil
}

// Update overwrites an exhibition's fields
func (s *ExhibitionService) Update(id uint, updated *models.Exhibition) (*models.Exhibition, error) {
	var exhibition models.Exhibition
	if err := s.db.First(&exhibition, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exhibition.Title = updated.Title
	exhibition.Description = updated.Description
	exhibition.Location = updated.Location
	exhibition.Address = updated.Address
	exhibition.StartDate = updated.StartDate
	exhibition.EndDate = updated.EndDate
	exhibition.ImageURL = updated.ImageURL
	exhibition.VideoURLs = updated.VideoURLs
	exhibition.URL = updated.URL
	exhibition.DisplayOrder = updated.DisplayOrder

	if err := s.db.Save(&exhibition).Error; err != nil {
		return nil, err
	}
	exhibition.Status = exhibition.StatusOn(time.Now())
	return &exhibition, nil
}

// Delete removes an exhibition
func (s *ExhibitionService) Delete(id uint) error {
	result := s.db.Delete(&models.Exhibition{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ExhibitionService) maxDisplayOrder() int {
	var max int
	s.db.Model(&models.Exhibition{}).Select("COALESCE(MAX(display_order), 0)").Scan(&max)
	return max
}

func today() time.Time {
	return time.Now().Truncate(24 * time.Hour)
}
