package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/pgf/backend/internal/models"
	"gorm.io/gorm"
)

type ArtworkService struct {
	db *gorm.DB
}

func NewArtworkService(db *gorm.DB) *ArtworkService {
	return &ArtworkService{db: db}
}

// GetAll returns all artworks with their categories, sorted for display
func (s *ArtworkService) GetAll() ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := s.db.Preload("Categories").
		Order("display_order ASC, created_at DESC").
		Find(&artworks).Error
	return artworks, err
}

// GetAvailable returns artworks currently for sale
func (s *ArtworkService) GetAvailable() ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := s.db.Preload("Categories").
		Where("is_available = ?", true).
		Order("display_order ASC").
		Find(&artworks).Error
	return artworks, err
}

// GetByID returns one artwork with its categories
func (s *ArtworkService) GetByID(id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	err := s.db.Preload("Categories").First(&artwork, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}

// GetByCategorySlug returns artworks attached to the category with this slug
func (s *ArtworkService) GetByCategorySlug(slug string) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := s.db.Preload("Categories").
		Joins("JOIN artwork_categories_mapping acm ON acm.artwork_id = artworks.id").
		Joins("JOIN categories ON categories.id = acm.category_id").
		Where("categories.slug = ?", slug).
		Order("artworks.display_order ASC").
		Find(&artworks).Error
	return artworks, err
}

// GetByCategoryID returns artworks attached to a category
func (s *ArtworkService) GetByCategoryID(categoryID uint) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := s.db.Preload("Categories").
		Joins("JOIN artwork_categories_mapping acm ON acm.artwork_id = artworks.id").
		Where("acm.category_id = ?", categoryID).
		Order("artworks.display_order ASC").
		Find(&artworks).Error
	return artworks, err
}

// Create stores a new artwork. At least one existing category must be given.
func (s *ArtworkService) Create(artwork *models.Artwork, categoryIDs []uint) (*models.Artwork, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		categories, err := loadCategories(tx, categoryIDs)
		if err != nil {
			return err
		}
		artwork.Categories = categories
		return tx.Create(artwork).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Created artwork %q with %d categories", artwork.Title, len(artwork.Categories))
	return artwork, nil
}

// Update overwrites an artwork's fields and, when categoryIDs is non-nil,
// replaces its category set.
func (s *ArtworkService) Update(id uint, updated *models.Artwork, categoryIDs []uint) (*models.Artwork, error) {
	var artwork models.Artwork
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&artwork, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		artwork.Title = updated.Title
		artwork.Description = updated.Description
		artwork.Dimensions = updated.Dimensions
		artwork.Materials = updated.Materials
		artwork.CreationDate = updated.CreationDate
		artwork.Price = updated.Price
		artwork.IsAvailable = updated.IsAvailable
		artwork.ImageURLs = updated.ImageURLs
		artwork.MainImageURL = updated.MainImageURL
		artwork.DisplayOrder = updated.DisplayOrder

		if err := tx.Save(&artwork).Error; err != nil {
			return err
		}

		if categoryIDs != nil {
			categories, err := loadCategories(tx, categoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&artwork).Association("Categories").Replace(categories); err != nil {
				return err
			}
			artwork.Categories = categories
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}

// SetCategories replaces the full category association set in one
// transaction: clear then re-add, never a partial diff.
func (s *ArtworkService) SetCategories(artworkID uint, categoryIDs []uint) (*models.Artwork, error) {
	var artwork models.Artwork
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&artwork, artworkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var categories []models.Category
		if len(categoryIDs) > 0 {
			if err := tx.Find(&categories, categoryIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&artwork).Association("Categories").Replace(categories); err != nil {
			return fmt.Errorf("failed to replace categories: %w", err)
		}
		artwork.Categories = categories
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}

// Delete removes an artwork and its join-table rows
func (s *ArtworkService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var artwork models.Artwork
		if err := tx.First(&artwork, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&artwork).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&artwork).Error
	})
}

func loadCategories(tx *gorm.DB, categoryIDs []uint) ([]models.Category, error) {
	if len(categoryIDs) == 0 {
		return nil, ErrNoCategories
	}
	var categories []models.Category
	if err := tx.Find(&categories, categoryIDs).Error; err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	return categories, nil
}
