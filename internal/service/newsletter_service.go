package service

import (
	"context"
	"strings"

	"github.com/magala-news-api/internal/apperror"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/repository"
	"github.com/magala-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// newsletterService implements NewsletterService
type newsletterService struct {
	newsletters repository.NewsletterRepository
	log         zerolog.Logger
}

func newNewsletterService(newsletters repository.NewsletterRepository, log zerolog.Logger) *newsletterService {
	return &newsletterService{
		newsletters: newsletters,
		log:         log.With().Str("component", "newsletter_service").Logger(),
	}
}

// Subscribe signs an email up for the newsletter. Subscribing an already
// subscribed address reactivates it and is not an error.
func (s *newsletterService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if fields := validation.ValidateEmail(email); len(fields) > 0 {
		return nil, apperror.Validation("invalid email", fields)
	}

	sub, err := s.newsletters.Subscribe(ctx, email)
	if err != nil {
		return nil, apperror.Database("failed to subscribe", err)
	}

	s.log.Info().Str("email", email).Msg("Newsletter subscription recorded")
	return sub, nil
}
