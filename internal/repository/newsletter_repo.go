package repository

import (
	"context"

	"github.com/magala-news-api/internal/database"
	"github.com/magala-news-api/internal/models"
)

// newsletterRepo is the concrete implementation of NewsletterRepository
type newsletterRepo struct {
	db *database.DB
}

// NewNewsletterRepo creates a new newsletter repository
func NewNewsletterRepo(db *database.DB) NewsletterRepository {
	return &newsletterRepo{db: db}
}

// Subscribe inserts a signup or reactivates an existing one. Subscribing the
// same address twice is not an error.
func (r *newsletterRepo) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	query := `
		INSERT INTO newsletters (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET is_active = true
		RETURNING id, email, is_active, created_at
	`
	var s models.NewsletterSubscription
	err := r.db.QueryRowContext(ctx, query, email).Scan(&s.ID, &s.Email, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
