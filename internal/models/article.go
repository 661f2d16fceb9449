package models

import (
	"time"
)

// Article represents a published news article
type Article struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Excerpt     *string   `json:"excerpt" db:"excerpt"`
	Content     *string   `json:"content" db:"content"`
	ImageURL    *string   `json:"imageUrl" db:"image_url"`
	VideoURL    *string   `json:"videoUrl" db:"video_url"`
	CategoryID  *int      `json:"categoryId" db:"category_id"`
	AuthorID    *int      `json:"authorId" db:"author_id"`
	IsBreaking  bool      `json:"isBreaking" db:"is_breaking"`
	IsFeatured  bool      `json:"isFeatured" db:"is_featured"`
	ViewCount   int       `json:"viewCount" db:"view_count"`
	LikeCount   int       `json:"likeCount" db:"like_count"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ArticleSummary is the short article projection embedded in top comments
type ArticleSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// ArticleWithDetails is an article joined with its optional category and
// author summaries plus the derived comment count. Missing category or
// author yields nil, not an error.
type ArticleWithDetails struct {
	Article
	Category     *CategorySummary `json:"category"`
	Author       *AuthorSummary   `json:"author"`
	CommentCount int              `json:"commentCount"`
}

// InsertArticle carries the fields accepted when creating an article.
// Slug, counters and publishedAt are assigned by the store.
type InsertArticle struct {
	Title      string  `json:"title"`
	Excerpt    *string `json:"excerpt"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"imageUrl"`
	VideoURL   *string `json:"videoUrl"`
	CategoryID *int    `json:"categoryId"`
	AuthorID   *int    `json:"authorId"`
	IsBreaking bool    `json:"isBreaking"`
	IsFeatured bool    `json:"isFeatured"`
}

// UpdateArticle carries a partial article update; nil fields are untouched
type UpdateArticle struct {
	Title      *string `json:"title"`
	Excerpt    *string `json:"excerpt"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"imageUrl"`
	VideoURL   *string `json:"videoUrl"`
	CategoryID *int    `json:"categoryId"`
	IsBreaking *bool   `json:"isBreaking"`
	IsFeatured *bool   `json:"isFeatured"`
}
