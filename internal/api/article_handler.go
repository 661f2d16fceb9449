package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/service"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// List handles GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	limit := intQuery(c, "limit", 0)
	offset := intQuery(c, "offset", 0)

	var categoryID *int
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid categoryId"})
			return
		}
		categoryID = &id
	}

	articles, err := h.services.Article.List(ctx, limit, offset, categoryID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/articles/:id. Fetching an article counts as a view.
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	article, err := h.services.Article.Get(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.services.Article.RecordView(ctx, id); err != nil {
		h.log.Warn().Err(err).Int("id", id).Msg("Failed to record view")
	}

	c.JSON(http.StatusOK, article)
}

// Featured handles GET /api/articles/featured
func (h *ArticleHandler) Featured(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	articles, err := h.services.Article.Featured(ctx, intQuery(c, "limit", 0))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Breaking handles GET /api/articles/breaking
func (h *ArticleHandler) Breaking(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	articles, err := h.services.Article.Breaking(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Latest handles GET /api/articles/latest
func (h *ArticleHandler) Latest(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	articles, err := h.services.Article.Latest(ctx, intQuery(c, "limit", 0))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Trending handles GET /api/articles/trending
func (h *ArticleHandler) Trending(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	articles, err := h.services.Article.Trending(ctx, intQuery(c, "limit", 0))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Search handles GET /api/articles/search
func (h *ArticleHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "search query is required"})
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	articles, err := h.services.Article.Search(ctx, query, intQuery(c, "limit", 0))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var data models.InsertArticle
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	// The author is the admin making the request unless set explicitly
	if data.AuthorID == nil {
		if claims := ClaimsFrom(c); claims != nil {
			data.AuthorID = &claims.ID
		}
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	article, err := h.services.Article.Create(ctx, &data)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Update handles PATCH /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var data models.UpdateArticle
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	article, err := h.services.Article.Update(ctx, id, &data)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	if err := h.services.Article.Delete(ctx, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Like handles POST /api/articles/:id/like
func (h *ArticleHandler) Like(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	if err := h.services.Article.Like(ctx, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "liked"})
}
