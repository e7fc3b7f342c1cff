package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgf/backend/internal/models"
	"github.com/pgf/backend/internal/services"
)

type ArchiveHandler struct {
	archiveService *services.ArchiveService
}

func NewArchiveHandler(archiveService *services.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archiveService: archiveService}
}

type archiveFileRequest struct {
	FileType     string `json:"file_type" binding:"required"`
	FileURL      string `json:"file_url" binding:"required"`
	FileName     string `json:"file_name"`
	DisplayOrder int    `json:"display_order"`
}

type archiveRequest struct {
	Title        string               `json:"title" binding:"required"`
	Year         int                  `json:"year" binding:"required"`
	Description  string               `json:"description"`
	ThumbnailURL string               `json:"thumbnail_url"`
	DisplayOrder int                  `json:"display_order"`
	Files        []archiveFileRequest `json:"files"`
}

func (r *archiveRequest) toModel() *models.Archive {
	archive := &models.Archive{
		Title:        r.Title,
		Year:         r.Year,
		Description:  r.Description,
		ThumbnailURL: r.ThumbnailURL,
		DisplayOrder: r.DisplayOrder,
	}
	for _, f := range r.Files {
		archive.Files = append(archive.Files, models.ArchiveFile{
			FileType:     models.ArchiveFileType(f.FileType),
			FileURL:      f.FileURL,
			FileName:     f.FileName,
			DisplayOrder: f.DisplayOrder,
		})
	}
	return archive
}

// GetArchives returns all archives with their files
// GET /archives
func (h *ArchiveHandler) GetArchives(c *gin.Context) {
	archives, err := h.archiveService.GetAll()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, archives)
}

// GetArchive returns one archive
// GET /archives/:id
func (h *ArchiveHandler) GetArchive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	archive, err := h.archiveService.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, archive)
}

// CreateArchive creates an archive with its files
// POST /admin/archives
func (h *ArchiveHandler) CreateArchive(c *gin.Context) {
	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.archiveService.Create(req.toModel())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateArchive updates an archive and replaces its file list
// PUT /admin/archives/:id
func (h *ArchiveHandler) UpdateArchive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.archiveService.Update(id, req.toModel())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteArchive deletes an archive and its files
// DELETE /admin/archives/:id
func (h *ArchiveHandler) DeleteArchive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.archiveService.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
