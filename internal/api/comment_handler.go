package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListByArticle handles GET /api/articles/:id/comments
func (h *CommentHandler) ListByArticle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	comments, err := h.services.Comment.ListByArticle(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Top handles GET /api/comments/top
func (h *CommentHandler) Top(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	comments, err := h.services.Comment.Top(ctx, intQuery(c, "limit", 0))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Create handles POST /api/comments. The author is always the caller.
func (h *CommentHandler) Create(c *gin.Context) {
	var data models.InsertComment
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	claims := ClaimsFrom(c)
	if claims != nil {
		data.AuthorID = &claims.ID
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	comment, err := h.services.Comment.Create(ctx, &data)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Like handles POST /api/comments/:id/like
func (h *CommentHandler) Like(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	if err := h.services.Comment.Like(ctx, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "liked"})
}

// Dislike handles POST /api/comments/:id/dislike
func (h *CommentHandler) Dislike(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	if err := h.services.Comment.Dislike(ctx, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "disliked"})
}
