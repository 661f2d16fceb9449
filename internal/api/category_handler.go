package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/service"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(services *service.Services, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		services: services,
		log:      log.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	categories, err := h.services.Category.List(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var data models.InsertCategory
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	category, err := h.services.Category.Create(ctx, &data)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update handles PATCH /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var data models.UpdateCategory
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	category, err := h.services.Category.Update(ctx, id, &data)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	if err := h.services.Category.Delete(ctx, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
