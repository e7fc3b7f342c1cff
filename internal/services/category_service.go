package services

import (
	"errors"
	"log"

	"github.com/pgf/backend/internal/models"
	"github.com/pgf/backend/pkg/validation"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// GetAll returns all categories ordered for display, with artwork counts
func (s *CategoryService) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("display_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].ArtworkCount = s.artworkCount(categories[i].ID)
	}
	return categories, nil
}

// GetByID returns one category with its artwork count
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	category.ArtworkCount = s.artworkCount(category.ID)
	return &category, nil
}

// GetBySlug returns the category with the given slug
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	category.ArtworkCount = s.artworkCount(category.ID)
	return &category, nil
}

// Create stores a new category. Name and slug must be unique; an empty slug
// is derived from the name.
func (s *CategoryService) Create(category *models.Category) (*models.Category, error) {
	if category.Slug == "" {
		category.Slug = validation.Slugify(category.Name)
	}

	var count int64
	s.db.Model(&models.Category{}).Where("slug = ?", category.Slug).Count(&count)
	if count > 0 {
		return nil, ErrDuplicateSlug
	}
	s.db.Model(&models.Category{}).Where("name = ?", category.Name).Count(&count)
	if count > 0 {
		return nil, ErrDuplicateName
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}
	log.Printf("Created category %q", category.Name)
	return category, nil
}

// Update overwrites a category's fields
func (s *CategoryService) Update(id uint, updated *models.Category) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if updated.Slug == "" {
		updated.Slug = validation.Slugify(updated.Name)
	}

	var count int64
	s.db.Model(&models.Category{}).Where("slug = ? AND id <> ?", updated.Slug, id).Count(&count)
	if count > 0 {
		return nil, ErrDuplicateSlug
	}
	s.db.Model(&models.Category{}).Where("name = ? AND id <> ?", updated.Name, id).Count(&count)
	if count > 0 {
		return nil, ErrDuplicateName
	}

	category.Name = updated.Name
	category.Slug = updated.Slug
	category.Description = updated.Description
	category.DisplayOrder = updated.DisplayOrder

	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category. Deletion is refused while artworks still
// reference it; the category and its artworks stay untouched.
func (s *CategoryService) Delete(id uint) error {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if s.artworkCount(id) > 0 {
		return ErrCategoryInUse
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return err
	}
	log.Printf("Deleted category %q", category.Name)
	return nil
}

func (s *CategoryService) artworkCount(categoryID uint) int64 {
	var count int64
	s.db.Table("artwork_categories_mapping").Where("category_id = ?", categoryID).Count(&count)
	return count
}
