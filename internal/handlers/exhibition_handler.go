package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgf/backend/internal/models"
	"github.com/pgf/backend/internal/services"
)

type ExhibitionHandler struct {
	exhibitionService *services.ExhibitionService
}

func NewExhibitionHandler(exhibitionService *services.ExhibitionService) *ExhibitionHandler {
	return &ExhibitionHandler{exhibitionService: exhibitionService}
}

type exhibitionRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	Address      string   `json:"address"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	ImageURL     string   `json:"image_url"`
	VideoURLs    []string `json:"video_urls"`
	URL          string   `json:"url"`
	DisplayOrder int      `json:"display_order"`
}

func (r *exhibitionRequest) toModel(c *gin.Context) (*models.Exhibition, bool) {
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected yyyy-mm-dd"})
		return nil, false
	}
	endDate, err := parseDate(r.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected yyyy-mm-dd"})
		return nil, false
	}
	return &models.Exhibition{
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		Address:      r.Address,
		StartDate:    startDate,
		EndDate:      endDate,
		ImageURL:     r.ImageURL,
		VideoURLs:    r.VideoURLs,
		URL:          r.URL,
		DisplayOrder: r.DisplayOrder,
	}, true
}

// GetExhibitions returns all exhibitions with derived status
// GET /exhibitions
func (h *ExhibitionHandler) GetExhibitions(c *gin.Context) {
	exhibitions, err := h.exhibitionService.GetAll()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exhibitions)
}

// GetExhibition returns one exhibition
// GET /exhibitions/:id
func (h *ExhibitionHandler) GetExhibition(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	exhibition, err := h.exhibitionService.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exhibition)
}

// GetUpcomingExhibitions returns exhibitions that have not started
// GET /exhibitions/upcoming
func (h *ExhibitionHandler) GetUpcomingExhibitions(c *gin.Context) {
	exhibitions, err := h.exhibitionService.GetUpcoming()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exhibitions)
}

// GetOngoingExhibitions returns exhibitions running today
// GET /exhibitions/ongoing
func (h *ExhibitionHandler) GetOngoingExhibitions(c *gin.Context) {
	exhibitions, err := h.exhibitionService.GetOngoing()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exhibitions)
}

// GetPastExhibitions returns ended exhibitions
// GET /exhibitions/past
func (h *ExhibitionHandler) GetPastExhibitions(c *gin.Context) {
	exhibitions, err := h.exhibitionService.GetPast()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exhibitions)
}

// CreateExhibition creates an exhibition
// POST /admin/exhibitions
func (h *ExhibitionHandler) CreateExhibition(c *gin.Context) {
	var req exhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exhibition, ok := req.toModel(c)
	if !ok {
		return
	}
	created, err := h.exhibitionService.Create(exhibition)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateExhibition updates an exhibition
// PUT /admin/exhibitions/:id
func (h *ExhibitionHandler) UpdateExhibition(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req exhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exhibition, ok := req.toModel(c)
	if !ok {
		return
	}
	updated, err := h.exhibitionService.Update(id, exhibition)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteExhibition deletes an exhibition
// DELETE /admin/exhibitions/:id
func (h *ExhibitionHandler) DeleteExhibition(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.exhibitionService.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
