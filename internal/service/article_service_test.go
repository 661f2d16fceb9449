package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/magala-news-api/internal/apperror"
	"github.com/magala-news-api/internal/models"
)

func TestArticleService_CreateDefaults(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	article, err := env.services.Article.Create(ctx, &models.InsertArticle{
		Title:   "New Budget Passed",
		Content: strPtr("Parliament approved the national budget today."),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if article.Slug != "new-budget-passed" {
		t.Errorf("Expected slug new-budget-passed, got %q", article.Slug)
	}
	if article.ViewCount != 0 {
		t.Errorf("Expected viewCount 0, got %d", article.ViewCount)
	}
	if article.LikeCount != 0 {
		t.Errorf("Expected likeCount 0, got %d", article.LikeCount)
	}
	if article.PublishedAt.IsZero() {
		t.Error("PublishedAt should be set on create")
	}
}

func TestArticleService_CreateValidation(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	_, err := env.services.Article.Create(ctx, &models.InsertArticle{Title: "   "})
	if !apperror.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}

	var appErr *apperror.Error
	if !asAppError(err, &appErr) || len(appErr.Fields) != 2 {
		t.Errorf("Expected field errors for title and content, got %+v", appErr)
	}
}

func TestArticleService_DuplicateTitleConflict(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	data := &models.InsertArticle{Title: "Same Title", Content: strPtr("body")}
	if _, err := env.services.Article.Create(ctx, data); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	_, err := env.services.Article.Create(ctx, data)
	if !apperror.IsConflict(err) {
		t.Fatalf("Expected conflict error, got %v", err)
	}
}

func TestArticleService_Pagination(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := env.services.Article.Create(ctx, &models.InsertArticle{
			Title:   fmt.Sprintf("Story %d", i),
			Content: strPtr("body"),
		})
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	seen := map[int]bool{}
	var all []*models.ArticleWithDetails
	for offset := 0; offset < 10; offset += 4 {
		page, err := env.services.Article.List(ctx, 4, offset, nil)
		if err != nil {
			t.Fatalf("List at offset %d failed: %v", offset, err)
		}
		for _, a := range page {
			if seen[a.ID] {
				t.Errorf("Article %d appeared on more than one page", a.ID)
			}
			seen[a.ID] = true
			all = append(all, a)
		}
	}

	if len(all) != 10 {
		t.Fatalf("Expected 10 articles across pages, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].PublishedAt.After(all[i-1].PublishedAt) {
			t.Errorf("Articles not in newest-first order at index %d", i)
		}
	}
}

func TestArticleService_TrendingOrder(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	ids := make([]int, 3)
	for i := 0; i < 3; i++ {
		a, err := env.services.Article.Create(ctx, &models.InsertArticle{
			Title:   fmt.Sprintf("Trend %d", i),
			Content: strPtr("body"),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids[i] = a.ID
	}

	views := map[int]int{ids[0]: 5, ids[1]: 2, ids[2]: 8}
	for id, n := range views {
		for i := 0; i < n; i++ {
			if err := env.services.Article.RecordView(ctx, id); err != nil {
				t.Fatalf("RecordView failed: %v", err)
			}
		}
	}

	trending, err := env.services.Article.Trending(ctx, 10)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(trending) != 3 {
		t.Fatalf("Expected 3 trending articles, got %d", len(trending))
	}
	wantOrder := []int{ids[2], ids[0], ids[1]}
	for i, want := range wantOrder {
		if trending[i].ID != want {
			t.Errorf("Trending[%d] = article %d, want %d", i, trending[i].ID, want)
		}
	}
	for i := 1; i < len(trending); i++ {
		if trending[i].ViewCount > trending[i-1].ViewCount {
			t.Errorf("Trending not in descending view order at index %d", i)
		}
	}
}

func TestArticleService_TrendingTieBreak(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	first, _ := env.services.Article.Create(ctx, &models.InsertArticle{Title: "Tie A", Content: strPtr("body")})
	second, _ := env.services.Article.Create(ctx, &models.InsertArticle{Title: "Tie B", Content: strPtr("body")})

	trending, err := env.services.Article.Trending(ctx, 10)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if trending[0].ID != first.ID || trending[1].ID != second.ID {
		t.Errorf("Tied articles should order by id ascending, got %d then %d", trending[0].ID, trending[1].ID)
	}
}

func TestArticleService_Search(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	titles := []string{"Kampala Floods Worsen", "Entebbe Weather Update", "KAMPALA Traffic Eases"}
	for _, title := range titles {
		if _, err := env.services.Article.Create(ctx, &models.InsertArticle{Title: title, Content: strPtr("body")}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	results, err := env.services.Article.Search(ctx, "kampala", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 matches for kampala, got %d", len(results))
	}
	for _, a := range results {
		if a.Title == "Entebbe Weather Update" {
			t.Error("Search matched a title without the query substring")
		}
	}
}

func TestArticleService_ConcurrentViewIncrements(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	article, err := env.services.Article.Create(ctx, &models.InsertArticle{
		Title:   "Concurrent Views",
		Content: strPtr("body"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := env.services.Article.RecordView(ctx, article.ID); err != nil {
				t.Errorf("RecordView failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := env.services.Article.Get(ctx, article.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ViewCount != n {
		t.Errorf("Expected %d views after concurrent increments, got %d", n, got.ViewCount)
	}
}

func TestArticleService_UpdateRecomputesSlug(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	article, err := env.services.Article.Create(ctx, &models.InsertArticle{
		Title:   "Original Title",
		Content: strPtr("body"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := env.services.Article.Update(ctx, article.ID, &models.UpdateArticle{
		Title: strPtr("Revised Headline"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Slug != "revised-headline" {
		t.Errorf("Expected slug revised-headline after title change, got %q", updated.Slug)
	}

	// An update without a title change leaves the slug alone
	updated, err = env.services.Article.Update(ctx, article.ID, &models.UpdateArticle{
		Excerpt: strPtr("short version"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Slug != "revised-headline" {
		t.Errorf("Slug changed without a title change: %q", updated.Slug)
	}
}

func TestArticleService_GetBySlug(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	created, err := env.services.Article.Create(ctx, &models.InsertArticle{
		Title:   "Slug Lookup",
		Content: strPtr("body"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := env.services.Article.GetBySlug(ctx, "slug-lookup")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetBySlug returned the wrong article")
	}

	if _, err := env.services.Article.GetBySlug(ctx, "missing"); !apperror.IsNotFound(err) {
		t.Errorf("Unknown slug: expected not found, got %v", err)
	}
}

func TestArticleService_NotFound(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	if _, err := env.services.Article.Get(ctx, 999); !apperror.IsNotFound(err) {
		t.Errorf("Get: expected not found, got %v", err)
	}
	if _, err := env.services.Article.Update(ctx, 999, &models.UpdateArticle{Title: strPtr("x")}); !apperror.IsNotFound(err) {
		t.Errorf("Update: expected not found, got %v", err)
	}
	if err := env.services.Article.Delete(ctx, 999); !apperror.IsNotFound(err) {
		t.Errorf("Delete: expected not found, got %v", err)
	}
	if err := env.services.Article.RecordView(ctx, 999); !apperror.IsNotFound(err) {
		t.Errorf("RecordView: expected not found, got %v", err)
	}
	if err := env.services.Article.Like(ctx, 999); !apperror.IsNotFound(err) {
		t.Errorf("Like: expected not found, got %v", err)
	}
}

func TestArticleService_BreakingCap(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := env.services.Article.Create(ctx, &models.InsertArticle{
			Title:      fmt.Sprintf("Breaking %d", i),
			Content:    strPtr("body"),
			IsBreaking: true,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	breaking, err := env.services.Article.Breaking(ctx)
	if err != nil {
		t.Fatalf("Breaking failed: %v", err)
	}
	if len(breaking) != 5 {
		t.Errorf("Expected breaking list capped at 5, got %d", len(breaking))
	}
	for i := 1; i < len(breaking); i++ {
		if breaking[i].PublishedAt.After(breaking[i-1].PublishedAt) {
			t.Errorf("Breaking list not newest first at index %d", i)
		}
	}
}

// End-to-end content scenario: category, article, views, trending
func TestContentScenario(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	category, err := env.services.Category.Create(ctx, &models.InsertCategory{Name: "Politics"})
	if err != nil {
		t.Fatalf("Category create failed: %v", err)
	}
	if category.Slug != "politics" {
		t.Fatalf("Expected category slug politics, got %q", category.Slug)
	}

	article, err := env.services.Article.Create(ctx, &models.InsertArticle{
		Title:      "New Budget Passed",
		Content:    strPtr("Parliament approved the national budget."),
		CategoryID: intPtr(category.ID),
	})
	if err != nil {
		t.Fatalf("Article create failed: %v", err)
	}
	if article.Slug != "new-budget-passed" {
		t.Fatalf("Expected slug new-budget-passed, got %q", article.Slug)
	}

	for i := 0; i < 3; i++ {
		if err := env.services.Article.RecordView(ctx, article.ID); err != nil {
			t.Fatalf("RecordView failed: %v", err)
		}
	}

	got, err := env.services.Article.Get(ctx, article.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ViewCount != 3 {
		t.Errorf("Expected viewCount 3, got %d", got.ViewCount)
	}

	trending, err := env.services.Article.Trending(ctx, 1)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(trending) != 1 || trending[0].ID != article.ID {
		t.Errorf("Expected the viewed article at the top of trending")
	}
}
