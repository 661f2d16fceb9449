package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/magala-news-api/internal/service"
	"github.com/rs/zerolog"
)

// NewsletterHandler handles newsletter endpoints
type NewsletterHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(services *service.Services, log zerolog.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		services: services,
		log:      log.With().Str("handler", "newsletter").Logger(),
	}
}

// Subscribe handles POST /api/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	sub, err := h.services.Newsletter.Subscribe(ctx, req.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}
