package service_test

import (
	"context"
	"testing"

	"github.com/magala-news-api/internal/apperror"
	"github.com/magala-news-api/internal/models"
)

func TestCategoryService_CreateDefaults(t *testing.T) {
	env := newTestEnv(nil)

	category, err := env.services.Category.Create(context.Background(), &models.InsertCategory{Name: "Local News"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if category.Slug != "local-news" {
		t.Errorf("Expected slug local-news, got %q", category.Slug)
	}
	if category.Color != "gray" {
		t.Errorf("Expected default color gray, got %q", category.Color)
	}
}

func TestCategoryService_CreateValidation(t *testing.T) {
	env := newTestEnv(nil)

	_, err := env.services.Category.Create(context.Background(), &models.InsertCategory{Name: "  "})
	if !apperror.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestCategoryService_DuplicateNameConflict(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	if _, err := env.services.Category.Create(ctx, &models.InsertCategory{Name: "Sports"}); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	_, err := env.services.Category.Create(ctx, &models.InsertCategory{Name: "Sports"})
	if !apperror.IsConflict(err) {
		t.Fatalf("Expected conflict, got %v", err)
	}
}

func TestCategoryService_ListOrder(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	for _, name := range []string{"Sports", "Business", "Politics"} {
		if _, err := env.services.Category.Create(ctx, &models.InsertCategory{Name: name}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	categories, err := env.services.Category.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"Business", "Politics", "Sports"}
	if len(categories) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(categories))
	}
	for i, name := range want {
		if categories[i].Name != name {
			t.Errorf("List[%d] = %q, want %q", i, categories[i].Name, name)
		}
	}
}

func TestCategoryService_GetBySlug(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	created, err := env.services.Category.Create(ctx, &models.InsertCategory{Name: "Local News"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := env.services.Category.GetBySlug(ctx, "local-news")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetBySlug returned the wrong category")
	}

	if _, err := env.services.Category.GetBySlug(ctx, "missing"); !apperror.IsNotFound(err) {
		t.Errorf("Unknown slug: expected not found, got %v", err)
	}
}

func TestCategoryService_UpdateRecomputesSlug(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	category, err := env.services.Category.Create(ctx, &models.InsertCategory{Name: "Tech"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := env.services.Category.Update(ctx, category.ID, &models.UpdateCategory{Name: strPtr("Science & Tech")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Slug != "science-tech" {
		t.Errorf("Expected slug science-tech after rename, got %q", updated.Slug)
	}

	// A color-only update leaves the slug alone
	updated, err = env.services.Category.Update(ctx, category.ID, &models.UpdateCategory{Color: strPtr("blue")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Slug != "science-tech" || updated.Color != "blue" {
		t.Errorf("Color update changed the wrong fields: %+v", updated)
	}
}

func TestCategoryService_NotFound(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	if _, err := env.services.Category.Update(ctx, 999, &models.UpdateCategory{Name: strPtr("x")}); !apperror.IsNotFound(err) {
		t.Errorf("Update: expected not found, got %v", err)
	}
	if err := env.services.Category.Delete(ctx, 999); !apperror.IsNotFound(err) {
		t.Errorf("Delete: expected not found, got %v", err)
	}
}
