package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/magala-news-api/internal/apperror"
	"github.com/magala-news-api/internal/config"
	"github.com/magala-news-api/internal/email"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/repository"
	"github.com/magala-news-api/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload issued at login and registration
type Claims struct {
	ID              int    `json:"id"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	jwt.RegisteredClaims
}

// RegisterInput carries the fields accepted at registration
type RegisterInput struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// authService implements AuthService
type authService struct {
	users     repository.UserRepository
	cfg       *config.AuthConfig
	publicURL string
	mailer    email.Mailer
	log       zerolog.Logger
	now       func() time.Time
}

func newAuthService(users repository.UserRepository, cfg *config.AuthConfig, publicURL string, mailer email.Mailer, log zerolog.Logger) *authService {
	return &authService{
		users:     users,
		cfg:       cfg,
		publicURL: publicURL,
		mailer:    mailer,
		log:       log.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// hashPassword hashes a plaintext password with bcrypt
func (s *authService) hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// checkPassword compares a plaintext password against a bcrypt hash
func (s *authService) checkPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// generateToken issues a signed JWT for the user
func (s *authService) generateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &Claims{
		ID:              user.ID,
		Email:           user.Email,
		Role:            user.Role,
		IsEmailVerified: user.IsEmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a JWT's signature and expiry and returns its claims.
// Malformed, forged and expired tokens are all rejected the same way.
func (s *authService) VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperror.Unauthorized("invalid or expired token")
	}
	return claims, nil
}

// generateRandomToken produces an unguessable opaque token
func generateRandomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// displayName picks a salutation for outbound mail
func displayName(user *models.User) string {
	if user.FirstName != nil && *user.FirstName != "" {
		return *user.FirstName
	}
	if user.Username != nil && *user.Username != "" {
		return *user.Username
	}
	return user.Email
}

// Register creates a new account, issues a session token and sends the
// verification email in the background
func (s *authService) Register(ctx context.Context, data *RegisterInput) (*models.User, string, error) {
	data.Email = strings.TrimSpace(strings.ToLower(data.Email))
	if fields := validation.ValidateRegistration(data.Email, data.Password); len(fields) > 0 {
		return nil, "", apperror.Validation("invalid registration", fields)
	}

	hash, err := s.hashPassword(data.Password)
	if err != nil {
		return nil, "", apperror.Internal("failed to hash password", err)
	}

	user, err := s.users.Create(ctx, &models.InsertUser{
		Email:     data.Email,
		Password:  &hash,
		Username:  data.Username,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Role:      models.RoleUser,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", apperror.Conflict("email already registered")
		}
		return nil, "", apperror.Database("failed to create user", err)
	}

	verificationToken, err := generateRandomToken()
	if err != nil {
		return nil, "", apperror.Internal("failed to generate verification token", err)
	}
	if err := s.users.SetVerificationToken(ctx, user.ID, verificationToken); err != nil {
		return nil, "", apperror.Database("failed to store verification token", err)
	}
	user.EmailVerificationToken = &verificationToken

	s.sendAsync(func() error {
		link := fmt.Sprintf("%s/verify-email?token=%s", s.publicURL, verificationToken)
		return s.mailer.SendVerification(user.Email, displayName(user), link)
	})

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", apperror.Internal("failed to issue token", err)
	}

	s.log.Info().Int("id", user.ID).Str("email", user.Email).Msg("User registered")
	return user, token, nil
}

// Login verifies credentials and issues a session token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, emailAddr, password string) (*models.User, string, error) {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, "", apperror.Database("failed to look up user", err)
	}
	if user == nil || user.Password == nil || !s.checkPassword(password, *user.Password) {
		return nil, "", apperror.Unauthorized("invalid credentials")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Int("id", user.ID).Msg("Failed to record login time")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", apperror.Internal("failed to issue token", err)
	}

	s.log.Info().Int("id", user.ID).Msg("User logged in")
	return user, token, nil
}

// VerifyEmail marks the holder of the token verified. Each token works once.
func (s *authService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperror.NotFound("invalid verification token")
	}

	user, err := s.users.VerifyEmailByToken(ctx, token)
	if err != nil {
		return nil, apperror.Database("failed to verify email", err)
	}
	if user == nil {
		return nil, apperror.NotFound("invalid verification token")
	}

	s.log.Info().Int("id", user.ID).Msg("Email verified")
	return user, nil
}

// RequestPasswordReset attaches a one-hour reset token to the account and
// emails the link. Unknown emails succeed silently so accounts cannot be
// enumerated.
func (s *authService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return apperror.Database("failed to look up user", err)
	}
	if user == nil {
		return nil
	}

	token, err := generateRandomToken()
	if err != nil {
		return apperror.Internal("failed to generate reset token", err)
	}
	expires := s.now().Add(s.cfg.ResetTokenTTL)
	if err := s.users.SetPasswordResetToken(ctx, user.ID, token, expires); err != nil {
		return apperror.Database("failed to store reset token", err)
	}

	s.sendAsync(func() error {
		link := fmt.Sprintf("%s/reset-password?token=%s", s.publicURL, token)
		return s.mailer.SendPasswordReset(user.Email, displayName(user), link)
	})

	s.log.Info().Int("id", user.ID).Msg("Password reset requested")
	return nil
}

// ResetPassword replaces the password of the holder of a live reset token.
// The token and its expiry are consumed in the same statement, so a token
// works exactly once and never at or past its expiry.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperror.NotFound("invalid or expired reset token")
	}
	if len(newPassword) < validation.MinPasswordLength {
		return apperror.Validation("invalid password", []apperror.FieldError{
			{Field: "newPassword", Message: "password must be at least 8 characters"},
		})
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return apperror.Internal("failed to hash password", err)
	}

	user, err := s.users.ResetPasswordByToken(ctx, token, hash, s.now())
	if err != nil {
		return apperror.Database("failed to reset password", err)
	}
	if user == nil {
		return apperror.NotFound("invalid or expired reset token")
	}

	s.log.Info().Int("id", user.ID).Msg("Password reset")
	return nil
}

// GetUser returns a user by ID
func (s *authService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Database("failed to get user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}

// EnsureDefaultAdmin creates the configured admin account if it does not
// exist yet. Safe to call on every startup.
func (s *authService) EnsureDefaultAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		s.log.Debug().Msg("No default admin configured, skipping bootstrap")
		return nil
	}

	existing, err := s.users.GetByEmail(ctx, s.cfg.AdminEmail)
	if err != nil {
		return apperror.Database("failed to look up admin", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := s.hashPassword(s.cfg.AdminPassword)
	if err != nil {
		return apperror.Internal("failed to hash admin password", err)
	}

	_, err = s.users.Create(ctx, &models.InsertUser{
		Email:           s.cfg.AdminEmail,
		Password:        &hash,
		Role:            models.RoleAdmin,
		IsEmailVerified: true,
	})
	if err != nil {
		// A concurrent instance may have won the race
		if isUniqueViolation(err) {
			return nil
		}
		return apperror.Database("failed to create admin", err)
	}

	s.log.Info().Str("email", s.cfg.AdminEmail).Msg("Default admin created")
	return nil
}

// sendAsync delivers mail in the background. Delivery failure never fails
// the request that triggered it.
func (s *authService) sendAsync(send func() error) {
	go func() {
		if err := send(); err != nil {
			s.log.Warn().Err(err).Msg("Background email failed")
		}
	}()
}
