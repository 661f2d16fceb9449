package repository

import (
	"context"
	"time"

	"github.com/magala-news-api/internal/database"
	"github.com/magala-news-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, data *models.InsertUser) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetVerificationToken(ctx context.Context, id int, token string) error
	VerifyEmailByToken(ctx context.Context, token string) (*models.User, error)
	SetPasswordResetToken(ctx context.Context, id int, token string, expires time.Time) error
	ResetPasswordByToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error)
	TouchLastLogin(ctx context.Context, id int) error
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id int) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, name, slug, color string) (*models.Category, error)
	Update(ctx context.Context, id int, name, slug, color *string) (*models.Category, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ArticleRepository defines the interface for article data operations.
// Read methods return the joined view with category, author and comment count.
type ArticleRepository interface {
	List(ctx context.Context, limit, offset int, categoryID *int) ([]*models.ArticleWithDetails, error)
	GetByID(ctx context.Context, id int) (*models.ArticleWithDetails, error)
	GetBySlug(ctx context.Context, slug string) (*models.ArticleWithDetails, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error)
	ListBreaking(ctx context.Context) ([]*models.ArticleWithDetails, error)
	ListLatest(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error)
	ListTrending(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error)
	Search(ctx context.Context, query string, limit int) ([]*models.ArticleWithDetails, error)
	Create(ctx context.Context, data *models.InsertArticle, slug string) (*models.Article, error)
	Update(ctx context.Context, id int, data *models.UpdateArticle, slug *string) (*models.Article, error)
	Delete(ctx context.Context, id int) (bool, error)
	IncrementViews(ctx context.Context, id int) (bool, error)
	IncrementLikes(ctx context.Context, id int) (bool, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int) ([]*models.CommentWithAuthor, error)
	ListTop(ctx context.Context, limit int) ([]*models.CommentWithAuthor, error)
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	Create(ctx context.Context, data *models.InsertComment) (*models.Comment, error)
	IncrementLikes(ctx context.Context, id int) (bool, error)
	IncrementDislikes(ctx context.Context, id int) (bool, error)
}

// NewsletterRepository defines the interface for newsletter signups
type NewsletterRepository interface {
	Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Category   CategoryRepository
	Article    ArticleRepository
	Comment    CommentRepository
	Newsletter NewsletterRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepo(db),
		Category:   NewCategoryRepo(db),
		Article:    NewArticleRepo(db),
		Comment:    NewCommentRepo(db),
		Newsletter: NewNewsletterRepo(db),
	}
}
