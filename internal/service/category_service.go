package service

import (
	"context"

	"github.com/magala-news-api/internal/apperror"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/repository"
	"github.com/magala-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// categoryService implements CategoryService
type categoryService struct {
	categories repository.CategoryRepository
	log        zerolog.Logger
}

func newCategoryService(categories repository.CategoryRepository, log zerolog.Logger) *categoryService {
	return &categoryService{
		categories: categories,
		log:        log.With().Str("component", "category_service").Logger(),
	}
}

// List returns all categories ordered by name
func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperror.Database("failed to list categories", err)
	}
	return categories, nil
}

// GetBySlug returns a single category by slug
func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, apperror.Database("failed to get category", err)
	}
	if category == nil {
		return nil, apperror.NotFound("category not found")
	}
	return category, nil
}

// Create stores a new category with a slug derived from its name
func (s *categoryService) Create(ctx context.Context, data *models.InsertCategory) (*models.Category, error) {
	if fields := validation.ValidateInsertCategory(data); len(fields) > 0 {
		return nil, apperror.Validation("invalid category", fields)
	}

	color := data.Color
	if color == "" {
		color = "gray"
	}

	category, err := s.categories.Create(ctx, data.Name, Slugify(data.Name), color)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("a category with this name already exists")
		}
		return nil, apperror.Database("failed to create category", err)
	}

	s.log.Info().Int("id", category.ID).Str("slug", category.Slug).Msg("Category created")
	return category, nil
}

// Update applies a partial update; the slug follows the name when it changes
func (s *categoryService) Update(ctx context.Context, id int, data *models.UpdateCategory) (*models.Category, error) {
	if fields := validation.ValidateUpdateCategory(data); len(fields) > 0 {
		return nil, apperror.Validation("invalid category", fields)
	}

	var slug *string
	if data.Name != nil {
		v := Slugify(*data.Name)
		slug = &v
	}

	category, err := s.categories.Update(ctx, id, data.Name, slug, data.Color)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("a category with this name already exists")
		}
		return nil, apperror.Database("failed to update category", err)
	}
	if category == nil {
		return nil, apperror.NotFound("category not found")
	}
	return category, nil
}

// Delete removes a category; its articles keep a null category
func (s *categoryService) Delete(ctx context.Context, id int) error {
	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		return apperror.Database("failed to delete category", err)
	}
	if !deleted {
		return apperror.NotFound("category not found")
	}
	s.log.Info().Int("id", id).Msg("Category deleted")
	return nil
}
