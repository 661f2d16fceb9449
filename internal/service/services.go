package service

import (
	"context"

	"github.com/magala-news-api/internal/config"
	"github.com/magala-news-api/internal/email"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	List(ctx context.Context, limit, offset int, categoryID *int) ([]*models.ArticleWithDetails, error)
	Get(ctx context.Context, id int) (*models.ArticleWithDetails, error)
	GetBySlug(ctx context.Context, slug string) (*models.ArticleWithDetails, error)
	Featured(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error)
	Breaking(ctx context.Context) ([]*models.ArticleWithDetails, error)
	Latest(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error)
	Trending(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error)
	Search(ctx context.Context, query string, limit int) ([]*models.ArticleWithDetails, error)
	Create(ctx context.Context, data *models.InsertArticle) (*models.Article, error)
	Update(ctx context.Context, id int, data *models.UpdateArticle) (*models.Article, error)
	Delete(ctx context.Context, id int) error
	RecordView(ctx context.Context, id int) error
	Like(ctx context.Context, id int) error
}

// CategoryService defines the interface for category operations
type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, data *models.InsertCategory) (*models.Category, error)
	Update(ctx context.Context, id int, data *models.UpdateCategory) (*models.Category, error)
	Delete(ctx context.Context, id int) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListByArticle(ctx context.Context, articleID int) ([]*models.CommentNode, error)
	Top(ctx context.Context, limit int) ([]*models.CommentWithAuthor, error)
	Create(ctx context.Context, data *models.InsertComment) (*models.Comment, error)
	Like(ctx context.Context, id int) error
	Dislike(ctx context.Context, id int) error
}

// NewsletterService defines the interface for newsletter signups
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, data *RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetUser(ctx context.Context, id int) (*models.User, error)
	VerifyToken(token string) (*Claims, error)
	EnsureDefaultAdmin(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Article    ArticleService
	Category   CategoryService
	Comment    CommentService
	Newsletter NewsletterService
	Auth       AuthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, mailer email.Mailer, log zerolog.Logger) *Services {
	return &Services{
		Article:    newArticleService(repos.Article, log),
		Category:   newCategoryService(repos.Category, log),
		Comment:    newCommentService(repos.Comment, repos.Article, log),
		Newsletter: newNewsletterService(repos.Newsletter, log),
		Auth:       newAuthService(repos.User, &cfg.Auth, cfg.Server.PublicURL, mailer, log),
	}
}
