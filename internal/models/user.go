package models

import (
	"time"
)

// Roles a user can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the system. Password and token fields are
// never serialized to API responses.
type User struct {
	ID                       int        `json:"id" db:"id"`
	Email                    string     `json:"email" db:"email"`
	Password                 *string    `json:"-" db:"password"` // nil means no local credential
	Username                 *string    `json:"username" db:"username"`
	FirstName                *string    `json:"firstName" db:"first_name"`
	LastName                 *string    `json:"lastName" db:"last_name"`
	ProfileImageURL          *string    `json:"profileImageUrl" db:"profile_image_url"`
	Role                     string     `json:"role" db:"role"`
	IsEmailVerified          bool       `json:"isEmailVerified" db:"is_email_verified"`
	EmailVerificationToken   *string    `json:"-" db:"email_verification_token"`
	PasswordResetToken       *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpires     *time.Time `json:"-" db:"password_reset_expires"`
	LastLoginAt              *time.Time `json:"lastLoginAt" db:"last_login_at"`
	IsSubscribedToNewsletter bool       `json:"isSubscribedToNewsletter" db:"is_subscribed_to_newsletter"`
	CreatedAt                time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt                time.Time  `json:"updatedAt" db:"updated_at"`
}

// AuthorSummary is the author projection embedded in joined views
type AuthorSummary struct {
	ID              int     `json:"id"`
	Email           string  `json:"email"`
	Username        *string `json:"username"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// InsertUser carries the fields accepted when creating a user
type InsertUser struct {
	Email           string
	Password        *string
	Username        *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	Role            string
	IsEmailVerified bool
}
