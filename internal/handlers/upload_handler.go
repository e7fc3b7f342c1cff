package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pgf/backend/internal/services"
	"github.com/pgf/backend/pkg/validation"
)

type UploadHandler struct {
	uploadService     *services.UploadService
	exhibitionService *services.ExhibitionService
}

func NewUploadHandler(uploadService *services.UploadService, exhibitionService *services.ExhibitionService) *UploadHandler {
	return &UploadHandler{
		uploadService:     uploadService,
		exhibitionService: exhibitionService,
	}
}

// exhibitionSlug derives a stable storage folder token for an exhibition.
// The numeric id keeps folders unique across retitled exhibitions.
func exhibitionSlug(id uint, title string) string {
	slug := validation.Slugify(title)
	if slug == "" {
		return fmt.Sprintf("exposition-%d", id)
	}
	return fmt.Sprintf("%s-%d", slug, id)
}

// readFormFile pulls the "file" part out of the multipart form
func readFormFile(c *gin.Context) (data []byte, filename, contentType string, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return nil, "", "", false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return nil, "", "", false
	}
	return data, header.Filename, header.Header.Get("Content-Type"), true
}

// UploadImage uploads an optimized image without a thumbnail
// POST /admin/upload/image
// Multipart form: file (required), category (optional, defaults to general)
func (h *UploadHandler) UploadImage(c *gin.Context) {
	data, filename, contentType, ok := readFormFile(c)
	if !ok {
		return
	}
	category := c.DefaultPostForm("category", "general")

	result, err := h.uploadService.UploadImage(c.Request.Context(), data, filename, contentType, category, false)
	if err != nil {
		uploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"imageUrl": result.ImageURL,
		"fileName": filename,
	})
}

// UploadImageWithThumbnail uploads an optimized image plus a square thumbnail
// POST /admin/upload/image-with-thumbnail
func (h *UploadHandler) UploadImageWithThumbnail(c *gin.Context) {
	data, filename, contentType, ok := readFormFile(c)
	if !ok {
		return
	}
	category := c.DefaultPostForm("category", "general")

	result, err := h.uploadService.UploadImage(c.Request.Context(), data, filename, contentType, category, true)
	if err != nil {
		uploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"imageUrl":     result.ImageURL,
		"thumbnailUrl": result.ThumbnailURL,
		"fileName":     filename,
		"fileSize":     len(data),
	})
}

// DeleteImage removes a stored object by its public URL. Best effort: a
// URL outside the configured storage is accepted and ignored.
// DELETE /admin/images?imageUrl=...
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	imageURL := c.Query("imageUrl")
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imageUrl is required"})
		return
	}
	h.uploadService.DeleteImage(c.Request.Context(), imageURL)
	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL})
}

// UploadExhibitionImage stores an optimized image under the exhibition's folder
// POST /admin/exhibitions/:id/images
// Multipart form: file (required), index (optional, defaults to 0)
func (h *UploadHandler) UploadExhibitionImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	exhibition, err := h.exhibitionService.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}

	data, filename, contentType, ok := readFormFile(c)
	if !ok {
		return
	}
	index, _ := strconv.Atoi(c.DefaultPostForm("index", "0"))

	imageURL, err := h.uploadService.UploadExhibitionImage(c.Request.Context(), data, filename, contentType, exhibitionSlug(exhibition.ID, exhibition.Title), index)
	if err != nil {
		uploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL})
}

// UploadExhibitionVideo stores an MP4 under the exhibition's folder
// POST /admin/exhibitions/:id/videos
func (h *UploadHandler) UploadExhibitionVideo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	exhibition, err := h.exhibitionService.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}

	data, _, contentType, ok := readFormFile(c)
	if !ok {
		return
	}
	index, _ := strconv.Atoi(c.DefaultPostForm("index", "0"))

	videoURL, err := h.uploadService.UploadExhibitionVideo(c.Request.Context(), data, contentType, exhibitionSlug(exhibition.ID, exhibition.Title), index)
	if err != nil {
		uploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videoUrl": videoURL})
}
