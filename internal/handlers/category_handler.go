package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgf/backend/internal/models"
	"github.com/pgf/backend/internal/services"
	"github.com/pgf/backend/pkg/validation"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

// GetCategories returns all categories with artwork counts
// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetAll()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory returns one category
// GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	category, err := h.categoryService.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetCategoryBySlug returns the category for a slug
// GET /categories/slug/:slug
func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	category, err := h.categoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a category
// POST /admin/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Slug != "" && !validation.ValidateSlug(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slug"})
		return
	}
	created, err := h.categoryService.Create(&models.Category{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCategory updates a category
// PUT /admin/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Slug != "" && !validation.ValidateSlug(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slug"})
		return
	}
	updated, err := h.categoryService.Update(id, &models.Category{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCategory deletes a category unless artworks still reference it
// DELETE /admin/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.categoryService.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
