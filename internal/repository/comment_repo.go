package repository

import (
	"context"
	"database/sql"

	"github.com/magala-news-api/internal/database"
	"github.com/magala-news-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

const commentColumns = `id, content, article_id, author_id, parent_id, like_count, dislike_count, created_at`

func scanComment(row rowScanner) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.Content, &c.ArticleID, &c.AuthorID, &c.ParentID,
		&c.LikeCount, &c.DislikeCount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByArticle retrieves an article's comments newest first with their authors
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int) ([]*models.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.content, c.article_id, c.author_id, c.parent_id,
		       c.like_count, c.dislike_count, c.created_at,
		       u.id, u.email, u.username, u.first_name, u.last_name, u.profile_image_url
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.article_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*models.CommentWithAuthor{}
	for rows.Next() {
		var c models.CommentWithAuthor
		var (
			authorID                      sql.NullInt64
			authorEmail                   sql.NullString
			username, firstName, lastName sql.NullString
			profileImageURL               sql.NullString
		)
		err := rows.Scan(&c.ID, &c.Content, &c.ArticleID, &c.AuthorID, &c.ParentID,
			&c.LikeCount, &c.DislikeCount, &c.CreatedAt,
			&authorID, &authorEmail, &username, &firstName, &lastName, &profileImageURL)
		if err != nil {
			return nil, err
		}
		if authorID.Valid {
			c.Author = &models.AuthorSummary{
				ID:              int(authorID.Int64),
				Email:           authorEmail.String,
				Username:        nullableString(username),
				FirstName:       nullableString(firstName),
				LastName:        nullableString(lastName),
				ProfileImageURL: nullableString(profileImageURL),
			}
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// ListTop retrieves the most liked comments with their authors and articles
func (r *commentRepo) ListTop(ctx context.Context, limit int) ([]*models.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.content, c.article_id, c.author_id, c.parent_id,
		       c.like_count, c.dislike_count, c.created_at,
		       u.id, u.email, u.username, u.first_name, u.last_name, u.profile_image_url,
		       a.id, a.title, a.slug
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		LEFT JOIN articles a ON a.id = c.article_id
		ORDER BY c.like_count DESC, c.id ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*models.CommentWithAuthor{}
	for rows.Next() {
		var c models.CommentWithAuthor
		var (
			authorID                      sql.NullInt64
			authorEmail                   sql.NullString
			username, firstName, lastName sql.NullString
			profileImageURL               sql.NullString
			articleID                     sql.NullInt64
			articleTitle, articleSlug     sql.NullString
		)
		err := rows.Scan(&c.ID, &c.Content, &c.ArticleID, &c.AuthorID, &c.ParentID,
			&c.LikeCount, &c.DislikeCount, &c.CreatedAt,
			&authorID, &authorEmail, &username, &firstName, &lastName, &profileImageURL,
			&articleID, &articleTitle, &articleSlug)
		if err != nil {
			return nil, err
		}
		if authorID.Valid {
			c.Author = &models.AuthorSummary{
				ID:              int(authorID.Int64),
				Email:           authorEmail.String,
				Username:        nullableString(username),
				FirstName:       nullableString(firstName),
				LastName:        nullableString(lastName),
				ProfileImageURL: nullableString(profileImageURL),
			}
		}
		if articleID.Valid {
			c.Article = &models.ArticleSummary{
				ID:    int(articleID.Int64),
				Title: articleTitle.String,
				Slug:  articleSlug.String,
			}
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// Create inserts a new comment with zeroed counters
func (r *commentRepo) Create(ctx context.Context, data *models.InsertComment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (content, article_id, author_id, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns
	return scanComment(r.db.QueryRowContext(ctx, query, data.Content, data.ArticleID, data.AuthorID, data.ParentID))
}

// IncrementLikes bumps the like counter atomically in the database
func (r *commentRepo) IncrementLikes(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE comments SET like_count = like_count + 1 WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// IncrementDislikes bumps the dislike counter atomically in the database
func (r *commentRepo) IncrementDislikes(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE comments SET dislike_count = dislike_count + 1 WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
