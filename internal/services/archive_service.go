package services

import (
	"errors"
	"fmt"

	"github.com/pgf/backend/internal/models"
	"gorm.io/gorm"
)

type ArchiveService struct {
	db *gorm.DB
}

func NewArchiveService(db *gorm.DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// GetAll returns all archives with their files, newest year first
func (s *ArchiveService) GetAll() ([]models.Archive, error) {
	var archives []models.Archive
	err := s.db.Preload("Files", func(db *gorm.DB) *gorm.DB {
		return db.Order("archive_files.display_order ASC")
	}).
		Order("year DESC, display_order ASC").
		Find(&archives).Error
	return archives, err
}

// GetByID returns one archive with its ordered files
func (s *ArchiveService) GetByID(id uint) (*models.Archive, error) {
	var archive models.Archive
	err := s.db.Preload("Files", func(db *gorm.DB) *gorm.DB {
		return db.Order("archive_files.display_order ASC")
	}).First(&archive, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

// Create stores a new archive together with its files
func (s *ArchiveService) Create(archive *models.Archive) (*models.Archive, error) {
	for _, f := range archive.Files {
		if !models.ValidFileType(f.FileType) {
			return nil, fmt.Errorf("unknown file type: %s", f.FileType)
		}
	}
	if err := s.db.Create(archive).Error; err != nil {
		return nil, err
	}
	return archive, nil
}

// Update overwrites an archive's fields and replaces its file list
func (s *ArchiveService) Update(id uint, updated *models.Archive) (*models.Archive, error) {
	var archive models.Archive
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&archive, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		for _, f := range updated.Files {
			if !models.ValidFileType(f.FileType) {
				return fmt.Errorf("unknown file type: %s", f.FileType)
			}
		}

		archive.Title = updated.Title
		archive.Year = updated.Year
		archive.Description = updated.Description
		archive.ThumbnailURL = updated.ThumbnailURL
		archive.DisplayOrder = updated.DisplayOrder

		if err := tx.Save(&archive).Error; err != nil {
			return err
		}

		// Replace the owned file set wholesale
		if err := tx.Where("archive_id = ?", archive.ID).Delete(&models.ArchiveFile{}).Error; err != nil {
			return err
		}
		for i := range updated.Files {
			updated.Files[i].ID = 0
			updated.Files[i].ArchiveID = archive.ID
		}
		if len(updated.Files) > 0 {
			if err := tx.Create(&updated.Files).Error; err != nil {
				return err
			}
		}
		archive.Files = updated.Files
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

// Delete removes an archive; its files go with it (cascade)
func (s *ArchiveService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var archive models.Archive
		if err := tx.First(&archive, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("archive_id = ?", archive.ID).Delete(&models.ArchiveFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&archive).Error
	})
}
