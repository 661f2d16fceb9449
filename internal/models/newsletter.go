package models

import (
	"time"
)

// NewsletterSubscription is an email signup for the newsletter. Subscribing
// an existing address reactivates it.
type NewsletterSubscription struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
