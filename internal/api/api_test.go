package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/magala-news-api/internal/api"
	"github.com/magala-news-api/internal/config"
	"github.com/magala-news-api/internal/mocks"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/repository"
	"github.com/magala-news-api/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@test.local"
	adminPassword = "adminsecret1"
)

// apiEnv is a full router over in-memory mocks
type apiEnv struct {
	router   *gin.Engine
	services *service.Services
	users    *mocks.MockUserRepository
	comments *mocks.MockCommentRepository
	mailer   *mocks.MockMailer
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{PublicURL: "http://test.local"},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTL:      7 * 24 * time.Hour,
			BcryptCost:    bcrypt.MinCost,
			ResetTokenTTL: time.Hour,
			AdminEmail:    adminEmail,
			AdminPassword: adminPassword,
		},
	}

	env := &apiEnv{
		users:    mocks.NewMockUserRepository(),
		comments: mocks.NewMockCommentRepository(),
		mailer:   mocks.NewMockMailer(),
	}
	repos := &repository.Repositories{
		User:       env.users,
		Category:   mocks.NewMockCategoryRepository(),
		Article:    mocks.NewMockArticleRepository(),
		Comment:    env.comments,
		Newsletter: mocks.NewMockNewsletterRepository(),
	}
	env.services = service.NewServices(repos, cfg, env.mailer, zerolog.Nop())

	if err := env.services.Auth.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("Admin bootstrap failed: %v", err)
	}

	env.router = api.NewRouter(env.services, cfg, zerolog.Nop())
	return env
}

// do performs a request against the router and returns the recorder
func (e *apiEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func (e *apiEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("Login returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	return resp.Token
}

func (e *apiEnv) adminToken(t *testing.T) string {
	t.Helper()
	return e.login(t, adminEmail, adminPassword)
}

func (e *apiEnv) register(t *testing.T, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": "password123"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Register returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Health returned %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %q", body["status"])
	}
}

func TestPublicArticleList(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/api/articles", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("List returned %d: %s", rec.Code, rec.Body.String())
	}
	var articles []*models.ArticleWithDetails
	decode(t, rec, &articles)
	if len(articles) != 0 {
		t.Errorf("Expected empty list, got %d", len(articles))
	}
}

func TestAdminRouteAuthGates(t *testing.T) {
	env := newAPIEnv(t)
	payload := gin.H{"name": "Politics"}

	// No token
	rec := env.do(t, http.MethodPost, "/api/categories", "", payload)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("No token: expected 401, got %d", rec.Code)
	}

	// Garbage token
	rec = env.do(t, http.MethodPost, "/api/categories", "garbage", payload)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Garbage token: expected 401, got %d", rec.Code)
	}

	// Registered but unverified user
	userToken := env.register(t, "unverified@test.local")
	rec = env.do(t, http.MethodPost, "/api/categories", userToken, payload)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Unverified user: expected 403, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["code"] != "EMAIL_NOT_VERIFIED" {
		t.Errorf("Expected EMAIL_NOT_VERIFIED code, got %q", body["code"])
	}

	// Verified but not an admin
	stored, _ := env.users.GetByEmail(context.Background(), "unverified@test.local")
	rec = env.do(t, http.MethodPost, "/api/auth/verify-email", "", gin.H{"token": *stored.EmailVerificationToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("Verify email returned %d: %s", rec.Code, rec.Body.String())
	}
	verifiedToken := env.login(t, "unverified@test.local", "password123")
	rec = env.do(t, http.MethodPost, "/api/categories", verifiedToken, payload)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Non-admin: expected 403, got %d", rec.Code)
	}
	body = nil
	decode(t, rec, &body)
	if body["code"] == "EMAIL_NOT_VERIFIED" {
		t.Error("Verified non-admin should fail on role, not verification")
	}
}

func TestAdminContentFlow(t *testing.T) {
	env := newAPIEnv(t)
	token := env.adminToken(t)

	// Create a category
	rec := env.do(t, http.MethodPost, "/api/categories", token, gin.H{"name": "Politics"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Category create returned %d: %s", rec.Code, rec.Body.String())
	}
	var category models.Category
	decode(t, rec, &category)
	if category.Slug != "politics" {
		t.Errorf("Expected slug politics, got %q", category.Slug)
	}

	// Create an article in it
	rec = env.do(t, http.MethodPost, "/api/articles", token, gin.H{
		"title":      "New Budget Passed",
		"content":    "Parliament approved the national budget.",
		"categoryId": category.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Article create returned %d: %s", rec.Code, rec.Body.String())
	}
	var article models.Article
	decode(t, rec, &article)
	if article.Slug != "new-budget-passed" {
		t.Errorf("Expected slug new-budget-passed, got %q", article.Slug)
	}
	if article.AuthorID == nil {
		t.Error("Author should default to the admin making the request")
	}

	articleURL := "/api/articles/" + itoa(article.ID)

	// The first fetch reports zero views and counts one
	rec = env.do(t, http.MethodGet, articleURL, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Get returned %d: %s", rec.Code, rec.Body.String())
	}
	var fetched models.ArticleWithDetails
	decode(t, rec, &fetched)
	if fetched.ViewCount != 0 {
		t.Errorf("First fetch should report 0 views, got %d", fetched.ViewCount)
	}

	rec = env.do(t, http.MethodGet, articleURL, "", nil)
	decode(t, rec, &fetched)
	if fetched.ViewCount != 1 {
		t.Errorf("Second fetch should report 1 view, got %d", fetched.ViewCount)
	}

	// Anonymous likes are allowed
	rec = env.do(t, http.MethodPost, articleURL+"/like", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Like returned %d: %s", rec.Code, rec.Body.String())
	}

	// Rename recomputes the slug
	rec = env.do(t, http.MethodPatch, articleURL, token, gin.H{"title": "Revised Headline"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Update returned %d: %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &article)
	if article.Slug != "revised-headline" {
		t.Errorf("Expected slug revised-headline, got %q", article.Slug)
	}

	// Delete and confirm it is gone
	rec = env.do(t, http.MethodDelete, articleURL, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Delete returned %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, articleURL, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Deleted article fetch: expected 404, got %d", rec.Code)
	}
}

func TestArticleBadRequests(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/api/articles/search", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Search without q: expected 400, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/articles/0", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Zero id: expected 400, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/articles?categoryId=abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Garbage categoryId: expected 400, got %d", rec.Code)
	}

	token := env.adminToken(t)
	rec = env.do(t, http.MethodPost, "/api/articles", token, gin.H{"title": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Invalid payload: expected 400, got %d", rec.Code)
	}
	var body struct {
		Errors []map[string]interface{} `json:"errors"`
	}
	decode(t, rec, &body)
	if len(body.Errors) != 2 {
		t.Errorf("Expected field errors for title and content, got %+v", body.Errors)
	}
}

func TestCommentFlow(t *testing.T) {
	env := newAPIEnv(t)
	admin := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/articles", admin, gin.H{
		"title":   "Commented Story",
		"content": "body",
	})
	var article models.Article
	decode(t, rec, &article)

	// Commenting requires a login
	payload := gin.H{"content": "First!", "articleId": article.ID}
	rec = env.do(t, http.MethodPost, "/api/comments", "", payload)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Anonymous comment: expected 401, got %d", rec.Code)
	}

	user := env.register(t, "reader@test.local")
	rec = env.do(t, http.MethodPost, "/api/comments", user, payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Comment create returned %d: %s", rec.Code, rec.Body.String())
	}
	var comment models.Comment
	decode(t, rec, &comment)
	if comment.AuthorID == nil {
		t.Error("Comment author should be the logged in caller")
	}

	// Anonymous engagement is allowed
	commentURL := "/api/comments/" + itoa(comment.ID)
	if rec = env.do(t, http.MethodPost, commentURL+"/like", "", nil); rec.Code != http.StatusOK {
		t.Errorf("Comment like returned %d", rec.Code)
	}
	if rec = env.do(t, http.MethodPost, commentURL+"/dislike", "", nil); rec.Code != http.StatusOK {
		t.Errorf("Comment dislike returned %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/articles/"+itoa(article.ID)+"/comments", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Comment list returned %d: %s", rec.Code, rec.Body.String())
	}
	var tree []*models.CommentNode
	decode(t, rec, &tree)
	if len(tree) != 1 || tree[0].LikeCount != 1 || tree[0].DislikeCount != 1 {
		t.Errorf("Unexpected comment tree: %+v", tree)
	}

	rec = env.do(t, http.MethodGet, "/api/comments/top", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Top comments returned %d", rec.Code)
	}
}

func TestNewsletterEndpoint(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/newsletter/subscribe", "", gin.H{"email": "reader@test.local"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Subscribe returned %d: %s", rec.Code, rec.Body.String())
	}
	var sub models.NewsletterSubscription
	decode(t, rec, &sub)
	if !sub.IsActive {
		t.Error("Subscription should be active")
	}

	rec = env.do(t, http.MethodPost, "/api/newsletter/subscribe", "", gin.H{"email": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Invalid email: expected 400, got %d", rec.Code)
	}
}

func TestAuthEndpoints(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "Me@Test.Local",
		"password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Register returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	decode(t, rec, &resp)
	if resp.User["email"] != "me@test.local" {
		t.Errorf("Expected normalized email, got %v", resp.User["email"])
	}
	if _, leaked := resp.User["password"]; leaked {
		t.Error("Password must never appear in responses")
	}

	// Duplicate registration conflicts
	rec = env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "me@test.local",
		"password": "password456",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("Duplicate register: expected 409, got %d", rec.Code)
	}

	// Me round-trips the token
	rec = env.do(t, http.MethodGet, "/api/auth/me", resp.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Me returned %d: %s", rec.Code, rec.Body.String())
	}
	var me models.User
	decode(t, rec, &me)
	if me.Email != "me@test.local" {
		t.Errorf("Me returned the wrong user: %q", me.Email)
	}

	rec = env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Anonymous me: expected 401, got %d", rec.Code)
	}

	// Forgot password never reveals whether the email exists
	for _, email := range []string{"me@test.local", "ghost@test.local"} {
		rec = env.do(t, http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": email})
		if rec.Code != http.StatusOK {
			t.Errorf("Forgot password for %q returned %d", email, rec.Code)
		}
	}

	// Bad login
	rec = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "me@test.local", "password": "wrongpass1"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Bad login: expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	env := newAPIEnv(t)

	router := gin.New()
	router.GET("/whoami", api.OptionalAuth(env.services.Auth), func(c *gin.Context) {
		if claims := api.ClaimsFrom(c); claims != nil {
			c.JSON(http.StatusOK, gin.H{"email": claims.Email})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": nil})
	})

	run := func(token string) map[string]interface{} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("whoami returned %d", rec.Code)
		}
		var body map[string]interface{}
		decode(t, rec, &body)
		return body
	}

	if body := run(""); body["email"] != nil {
		t.Errorf("Anonymous request should carry no claims, got %v", body["email"])
	}
	if body := run("garbage"); body["email"] != nil {
		t.Errorf("Invalid token should be ignored, got %v", body["email"])
	}
	token := env.register(t, "opt@test.local")
	if body := run(token); body["email"] != "opt@test.local" {
		t.Errorf("Valid token should attach claims, got %v", body["email"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Responses should carry an X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	if rr.Header().Get("X-Request-ID") != "fixed-id" {
		t.Errorf("Caller supplied request id should be echoed, got %q", rr.Header().Get("X-Request-ID"))
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
