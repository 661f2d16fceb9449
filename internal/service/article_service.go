package service

import (
	"context"

	"github.com/magala-news-api/internal/apperror"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/repository"
	"github.com/magala-news-api/internal/validation"
	"github.com/rs/zerolog"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// articleService implements ArticleService
type articleService struct {
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newArticleService(articles repository.ArticleRepository, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		log:      log.With().Str("component", "article_service").Logger(),
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// List returns articles newest first, optionally filtered by category
func (s *articleService) List(ctx context.Context, limit, offset int, categoryID *int) ([]*models.ArticleWithDetails, error) {
	if offset < 0 {
		offset = 0
	}
	articles, err := s.articles.List(ctx, clampLimit(limit), offset, categoryID)
	if err != nil {
		return nil, apperror.Database("failed to list articles", err)
	}
	return articles, nil
}

// Get returns a single article by ID
func (s *articleService) Get(ctx context.Context, id int) (*models.ArticleWithDetails, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Database("failed to get article", err)
	}
	if article == nil {
		return nil, apperror.NotFound("article not found")
	}
	return article, nil
}

// GetBySlug returns a single article by slug
func (s *articleService) GetBySlug(ctx context.Context, slug string) (*models.ArticleWithDetails, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, apperror.Database("failed to get article", err)
	}
	if article == nil {
		return nil, apperror.NotFound("article not found")
	}
	return article, nil
}

// Featured returns featured articles newest first
func (s *articleService) Featured(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error) {
	articles, err := s.articles.ListFeatured(ctx, clampLimit(limit))
	if err != nil {
		return nil, apperror.Database("failed to list featured articles", err)
	}
	return articles, nil
}

// Breaking returns up to five breaking articles newest first
func (s *articleService) Breaking(ctx context.Context) ([]*models.ArticleWithDetails, error) {
	articles, err := s.articles.ListBreaking(ctx)
	if err != nil {
		return nil, apperror.Database("failed to list breaking articles", err)
	}
	return articles, nil
}

// Latest returns the most recently published articles
func (s *articleService) Latest(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error) {
	articles, err := s.articles.ListLatest(ctx, clampLimit(limit))
	if err != nil {
		return nil, apperror.Database("failed to list latest articles", err)
	}
	return articles, nil
}

// Trending returns articles ordered by view count
func (s *articleService) Trending(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error) {
	articles, err := s.articles.ListTrending(ctx, clampLimit(limit))
	if err != nil {
		return nil, apperror.Database("failed to list trending articles", err)
	}
	return articles, nil
}

// Search returns articles whose title contains the query, case-insensitive
func (s *articleService) Search(ctx context.Context, query string, limit int) ([]*models.ArticleWithDetails, error) {
	articles, err := s.articles.Search(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, apperror.Database("failed to search articles", err)
	}
	return articles, nil
}

// Create stores a new article with a slug derived from the title
func (s *articleService) Create(ctx context.Context, data *models.InsertArticle) (*models.Article, error) {
	if fields := validation.ValidateInsertArticle(data); len(fields) > 0 {
		return nil, apperror.Validation("invalid article", fields)
	}

	article, err := s.articles.Create(ctx, data, Slugify(data.Title))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("an article with this title already exists")
		}
		if isForeignKeyViolation(err) {
			return nil, apperror.NotFound("referenced category or author not found")
		}
		return nil, apperror.Database("failed to create article", err)
	}

	s.log.Info().Int("id", article.ID).Str("slug", article.Slug).Msg("Article created")
	return article, nil
}

// Update applies a partial update; the slug follows the title when it changes
func (s *articleService) Update(ctx context.Context, id int, data *models.UpdateArticle) (*models.Article, error) {
	if fields := validation.ValidateUpdateArticle(data); len(fields) > 0 {
		return nil, apperror.Validation("invalid article", fields)
	}

	var slug *string
	if data.Title != nil {
		v := Slugify(*data.Title)
		slug = &v
	}

	article, err := s.articles.Update(ctx, id, data, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("an article with this title already exists")
		}
		if isForeignKeyViolation(err) {
			return nil, apperror.NotFound("referenced category not found")
		}
		return nil, apperror.Database("failed to update article", err)
	}
	if article == nil {
		return nil, apperror.NotFound("article not found")
	}
	return article, nil
}

// Delete removes an article and, through the schema, its comments
func (s *articleService) Delete(ctx context.Context, id int) error {
	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return apperror.Database("failed to delete article", err)
	}
	if !deleted {
		return apperror.NotFound("article not found")
	}
	s.log.Info().Int("id", id).Msg("Article deleted")
	return nil
}

// RecordView increments the article's view counter
func (s *articleService) RecordView(ctx context.Context, id int) error {
	ok, err := s.articles.IncrementViews(ctx, id)
	if err != nil {
		return apperror.Database("failed to record view", err)
	}
	if !ok {
		return apperror.NotFound("article not found")
	}
	return nil
}

// Like increments the article's like counter
func (s *articleService) Like(ctx context.Context, id int) error {
	ok, err := s.articles.IncrementLikes(ctx, id)
	if err != nil {
		return apperror.Database("failed to record like", err)
	}
	if !ok {
		return apperror.NotFound("article not found")
	}
	return nil
}
