package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgf/backend/internal/models"
	"github.com/pgf/backend/internal/services"
	"github.com/pgf/backend/pkg/validation"
)

type ArtworkHandler struct {
	artworkService *services.ArtworkService
	uploadService  *services.UploadService
}

func NewArtworkHandler(artworkService *services.ArtworkService, uploadService *services.UploadService) *ArtworkHandler {
	return &ArtworkHandler{
		artworkService: artworkService,
		uploadService:  uploadService,
	}
}

type artworkRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Dimensions   string   `json:"dimensions"`
	Materials    string   `json:"materials"`
	CreationDate string   `json:"creation_date"`
	Price        *float64 `json:"price"`
	IsAvailable  *bool    `json:"is_available"`
	ImageURLs    []string `json:"image_urls"`
	MainImageURL string   `json:"main_image_url"`
	DisplayOrder int      `json:"display_order"`
	CategoryIDs  []uint   `json:"category_ids"`
}

func (r *artworkRequest) toModel(c *gin.Context) (*models.Artwork, bool) {
	creationDate, err := parseDate(r.CreationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creation_date, expected yyyy-mm-dd"})
		return nil, false
	}
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return &models.Artwork{
		Title:        r.Title,
		Description:  r.Description,
		Dimensions:   r.Dimensions,
		Materials:    r.Materials,
		CreationDate: creationDate,
		Price:        r.Price,
		IsAvailable:  available,
		ImageURLs:    r.ImageURLs,
		MainImageURL: r.MainImageURL,
		DisplayOrder: r.DisplayOrder,
	}, true
}

// GetArtworks returns all artworks
// GET /artworks
func (h *ArtworkHandler) GetArtworks(c *gin.Context) {
	artworks, err := h.artworkService.GetAll()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artworks)
}

// GetAvailableArtworks returns artworks currently for sale
// GET /artworks/available
func (h *ArtworkHandler) GetAvailableArtworks(c *gin.Context) {
	artworks, err := h.artworkService.GetAvailable()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artworks)
}

// GetArtwork returns one artwork
// GET /artworks/:id
func (h *ArtworkHandler) GetArtwork(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	artwork, err := h.artworkService.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artwork)
}

// GetArtworksByCategory returns the artworks of a category slug
// GET /categories/:slug/artworks
func (h *ArtworkHandler) GetArtworksByCategory(c *gin.Context) {
	artworks, err := h.artworkService.GetByCategorySlug(c.Param("slug"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artworks)
}

// GetArtworksByCategoryID returns the artworks of a category id
// GET /categories/:id/artworks
func (h *ArtworkHandler) GetArtworksByCategoryID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	artworks, err := h.artworkService.GetByCategoryID(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artworks)
}

// CreateArtwork creates an artwork
// POST /admin/artworks
func (h *ArtworkHandler) CreateArtwork(c *gin.Context) {
	var req artworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	artwork, ok := req.toModel(c)
	if !ok {
		return
	}
	created, err := h.artworkService.Create(artwork, req.CategoryIDs)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CreateArtworkWithImages creates an artwork and uploads its images in one
// multipart request: an "artwork" JSON part plus any number of "images"
// file parts. The first uploaded image becomes the main image.
// POST /admin/artworks/with-images
func (h *ArtworkHandler) CreateArtworkWithImages(c *gin.Context) {
	var req artworkRequest
	if err := json.Unmarshal([]byte(c.PostForm("artwork")), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artwork part"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	artwork, ok := req.toModel(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	folderToken := validation.Slugify(req.Title)
	var imageURLs []string
	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image part"})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image part"})
			return
		}

		result, err := h.uploadService.UploadImage(c.Request.Context(), data, header.Filename, header.Header.Get("Content-Type"), folderToken, true)
		if err != nil {
			uploadError(c, err)
			return
		}
		imageURLs = append(imageURLs, result.ImageURL)
	}

	if len(imageURLs) > 0 {
		artwork.ImageURLs = imageURLs
		artwork.MainImageURL = imageURLs[0]
	}

	created, err := h.artworkService.Create(artwork, req.CategoryIDs)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateArtwork updates an artwork
// PUT /admin/artworks/:id
func (h *ArtworkHandler) UpdateArtwork(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req artworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	artwork, ok := req.toModel(c)
	if !ok {
		return
	}
	updated, err := h.artworkService.Update(id, artwork, req.CategoryIDs)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetArtworkCategories replaces the artwork's category set
// PUT /admin/artworks/:id/categories
func (h *ArtworkHandler) SetArtworkCategories(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		CategoryIDs []uint `json:"category_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	artwork, err := h.artworkService.SetCategories(id, req.CategoryIDs)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artwork)
}

// DeleteArtwork deletes an artwork
// DELETE /admin/artworks/:id
func (h *ArtworkHandler) DeleteArtwork(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.artworkService.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
