package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/magala-news-api/internal/apperror"
	"github.com/magala-news-api/internal/config"
	"github.com/magala-news-api/internal/mocks"
	"github.com/magala-news-api/internal/repository"
	"github.com/magala-news-api/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// testEnv wires all services over in-memory mocks
type testEnv struct {
	services    *service.Services
	users       *mocks.MockUserRepository
	categories  *mocks.MockCategoryRepository
	articles    *mocks.MockArticleRepository
	comments    *mocks.MockCommentRepository
	newsletters *mocks.MockNewsletterRepository
	mailer      *mocks.MockMailer
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{PublicURL: "http://test.local"},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTL:      7 * 24 * time.Hour,
			BcryptCost:    bcrypt.MinCost, // keep the suite fast
			ResetTokenTTL: time.Hour,
		},
	}
}

func newTestEnv(cfg *config.Config) *testEnv {
	if cfg == nil {
		cfg = testConfig()
	}

	env := &testEnv{
		users:       mocks.NewMockUserRepository(),
		categories:  mocks.NewMockCategoryRepository(),
		articles:    mocks.NewMockArticleRepository(),
		comments:    mocks.NewMockCommentRepository(),
		newsletters: mocks.NewMockNewsletterRepository(),
		mailer:      mocks.NewMockMailer(),
	}

	repos := &repository.Repositories{
		User:       env.users,
		Category:   env.categories,
		Article:    env.articles,
		Comment:    env.comments,
		Newsletter: env.newsletters,
	}
	env.services = service.NewServices(repos, cfg, env.mailer, zerolog.Nop())
	return env
}

func asAppError(err error, target **apperror.Error) bool { return errors.As(err, target) }

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// waitFor polls until cond holds, failing the test after two seconds.
// Used for behavior that happens on background goroutines, like email sends.
func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
