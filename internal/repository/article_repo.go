package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magala-news-api/internal/database"
	"github.com/magala-news-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// articleSelect is the joined projection shared by every article read.
// Comment counts are derived, never stored.
const articleSelect = `
	SELECT a.id, a.title, a.slug, a.excerpt, a.content, a.image_url, a.video_url,
	       a.category_id, a.author_id, a.is_breaking, a.is_featured,
	       a.view_count, a.like_count, a.published_at, a.created_at, a.updated_at,
	       c.id, c.name, c.slug, c.color,
	       u.id, u.email, u.username, u.first_name, u.last_name, u.profile_image_url,
	       (SELECT COUNT(*) FROM comments cm WHERE cm.article_id = a.id)
	FROM articles a
	LEFT JOIN categories c ON c.id = a.category_id
	LEFT JOIN users u ON u.id = a.author_id
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticleDetails(row rowScanner) (*models.ArticleWithDetails, error) {
	var a models.ArticleWithDetails
	var (
		catID                         sql.NullInt64
		catName, catSlug, catColor    sql.NullString
		authorID                      sql.NullInt64
		authorEmail                   sql.NullString
		username, firstName, lastName sql.NullString
		profileImageURL               sql.NullString
	)

	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.ImageURL, &a.VideoURL,
		&a.CategoryID, &a.AuthorID, &a.IsBreaking, &a.IsFeatured,
		&a.ViewCount, &a.LikeCount, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
		&catID, &catName, &catSlug, &catColor,
		&authorID, &authorEmail, &username, &firstName, &lastName, &profileImageURL,
		&a.CommentCount,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		a.Category = &models.CategorySummary{
			ID:    int(catID.Int64),
			Name:  catName.String,
			Slug:  catSlug.String,
			Color: catColor.String,
		}
	}
	if authorID.Valid {
		a.Author = &models.AuthorSummary{
			ID:              int(authorID.Int64),
			Email:           authorEmail.String,
			Username:        nullableString(username),
			FirstName:       nullableString(firstName),
			LastName:        nullableString(lastName),
			ProfileImageURL: nullableString(profileImageURL),
		}
	}
	return &a, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func (r *articleRepo) queryMany(ctx context.Context, query string, args ...interface{}) ([]*models.ArticleWithDetails, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*models.ArticleWithDetails{}
	for rows.Next() {
		a, err := scanArticleDetails(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// List retrieves articles newest first, optionally filtered by category
func (r *articleRepo) List(ctx context.Context, limit, offset int, categoryID *int) ([]*models.ArticleWithDetails, error) {
	if categoryID != nil {
		query := articleSelect + ` WHERE a.category_id = $1 ORDER BY a.published_at DESC LIMIT $2 OFFSET $3`
		return r.queryMany(ctx, query, *categoryID, limit, offset)
	}
	query := articleSelect + ` ORDER BY a.published_at DESC LIMIT $1 OFFSET $2`
	return r.queryMany(ctx, query, limit, offset)
}

// GetByID retrieves a single article by ID
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.ArticleWithDetails, error) {
	row := r.db.QueryRowContext(ctx, articleSelect+` WHERE a.id = $1`, id)
	a, err := scanArticleDetails(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// GetBySlug retrieves a single article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.ArticleWithDetails, error) {
	row := r.db.QueryRowContext(ctx, articleSelect+` WHERE a.slug = $1`, slug)
	a, err := scanArticleDetails(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// ListFeatured retrieves featured articles newest first
func (r *articleRepo) ListFeatured(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error) {
	query := articleSelect + ` WHERE a.is_featured = true ORDER BY a.published_at DESC LIMIT $1`
	return r.queryMany(ctx, query, limit)
}

// ListBreaking retrieves up to five breaking articles newest first
func (r *articleRepo) ListBreaking(ctx context.Context) ([]*models.ArticleWithDetails, error) {
	query := articleSelect + ` WHERE a.is_breaking = true ORDER BY a.published_at DESC LIMIT 5`
	return r.queryMany(ctx, query)
}

// ListLatest retrieves the most recently published articles
func (r *articleRepo) ListLatest(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error) {
	query := articleSelect + ` ORDER BY a.published_at DESC LIMIT $1`
	return r.queryMany(ctx, query, limit)
}

// ListTrending retrieves articles by view count, id ascending on ties
func (r *articleRepo) ListTrending(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error) {
	query := articleSelect + ` ORDER BY a.view_count DESC, a.id ASC LIMIT $1`
	return r.queryMany(ctx, query, limit)
}

// Search retrieves articles whose title contains the query, case-insensitive
func (r *articleRepo) Search(ctx context.Context, query string, limit int) ([]*models.ArticleWithDetails, error) {
	q := articleSelect + ` WHERE a.title ILIKE $1 ORDER BY a.published_at DESC LIMIT $2`
	return r.queryMany(ctx, q, "%"+query+"%", limit)
}

// Create inserts a new article with zeroed counters
func (r *articleRepo) Create(ctx context.Context, data *models.InsertArticle, slug string) (*models.Article, error) {
	query := `
		INSERT INTO articles (title, slug, excerpt, content, image_url, video_url,
		                      category_id, author_id, is_breaking, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, title, slug, excerpt, content, image_url, video_url,
		          category_id, author_id, is_breaking, is_featured,
		          view_count, like_count, published_at, created_at, updated_at
	`
	var a models.Article
	err := r.db.QueryRowContext(ctx, query,
		data.Title, slug, data.Excerpt, data.Content, data.ImageURL, data.VideoURL,
		data.CategoryID, data.AuthorID, data.IsBreaking, data.IsFeatured,
	).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.ImageURL, &a.VideoURL,
		&a.CategoryID, &a.AuthorID, &a.IsBreaking, &a.IsFeatured,
		&a.ViewCount, &a.LikeCount, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update applies the non-nil fields of a partial update
func (r *articleRepo) Update(ctx context.Context, id int, data *models.UpdateArticle, slug *string) (*models.Article, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if data.Title != nil {
		add("title", *data.Title)
	}
	if slug != nil {
		add("slug", *slug)
	}
	if data.Excerpt != nil {
		add("excerpt", *data.Excerpt)
	}
	if data.Content != nil {
		add("content", *data.Content)
	}
	if data.ImageURL != nil {
		add("image_url", *data.ImageURL)
	}
	if data.VideoURL != nil {
		add("video_url", *data.VideoURL)
	}
	if data.CategoryID != nil {
		add("category_id", *data.CategoryID)
	}
	if data.IsBreaking != nil {
		add("is_breaking", *data.IsBreaking)
	}
	if data.IsFeatured != nil {
		add("is_featured", *data.IsFeatured)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE articles SET %s WHERE id = $%d
		RETURNING id, title, slug, excerpt, content, image_url, video_url,
		          category_id, author_id, is_breaking, is_featured,
		          view_count, like_count, published_at, created_at, updated_at
	`, strings.Join(sets, ", "), len(args))

	var a models.Article
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.ImageURL, &a.VideoURL,
		&a.CategoryID, &a.AuthorID, &a.IsBreaking, &a.IsFeatured,
		&a.ViewCount, &a.LikeCount, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an article; its comments cascade at the schema level
func (r *articleRepo) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// IncrementViews bumps the view counter atomically in the database
func (r *articleRepo) IncrementViews(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE articles SET view_count = view_count + 1 WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// IncrementLikes bumps the like counter atomically in the database
func (r *articleRepo) IncrementLikes(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE articles SET like_count = like_count + 1 WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
