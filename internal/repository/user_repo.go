package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/magala-news-api/internal/database"
	"github.com/magala-news-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, password, username, first_name, last_name, profile_image_url,
	role, is_email_verified, email_verification_token, password_reset_token,
	password_reset_expires, last_login_at, is_subscribed_to_newsletter, created_at, updated_at`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Username, &u.FirstName, &u.LastName, &u.ProfileImageURL,
		&u.Role, &u.IsEmailVerified, &u.EmailVerificationToken, &u.PasswordResetToken,
		&u.PasswordResetExpires, &u.LastLoginAt, &u.IsSubscribedToNewsletter, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, data *models.InsertUser) (*models.User, error) {
	query := `
		INSERT INTO users (email, password, username, first_name, last_name, profile_image_url, role, is_email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, query,
		data.Email, data.Password, data.Username, data.FirstName, data.LastName,
		data.ProfileImageURL, data.Role, data.IsEmailVerified,
	)
	return scanUser(row)
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// GetByEmail retrieves a user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// SetVerificationToken attaches an email verification token to a user
func (r *userRepo) SetVerificationToken(ctx context.Context, id int, token string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET email_verification_token = $1, updated_at = NOW() WHERE id = $2", token, id)
	return err
}

// VerifyEmailByToken marks the holder of the token verified and consumes the
// token in the same statement. Returns nil when no user holds the token.
func (r *userRepo) VerifyEmailByToken(ctx context.Context, token string) (*models.User, error) {
	query := `
		UPDATE users
		SET is_email_verified = true, email_verification_token = NULL, updated_at = NOW()
		WHERE email_verification_token = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// SetPasswordResetToken attaches a reset token and its expiry to a user
func (r *userRepo) SetPasswordResetToken(ctx context.Context, id int, token string, expires time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_reset_token = $1, password_reset_expires = $2, updated_at = NOW() WHERE id = $3",
		token, expires, id)
	return err
}

// ResetPasswordByToken replaces the password of the holder of a live reset
// token and consumes the token in the same statement. A token at or past its
// expiry matches nothing. Returns nil when no live token matches.
func (r *userRepo) ResetPasswordByToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error) {
	query := `
		UPDATE users
		SET password = $1, password_reset_token = NULL, password_reset_expires = NULL, updated_at = NOW()
		WHERE password_reset_token = $2 AND password_reset_expires > $3
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query, passwordHash, token, now))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// TouchLastLogin records a successful login
func (r *userRepo) TouchLastLogin(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1", id)
	return err
}
