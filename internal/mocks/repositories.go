package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/magala-news-api/internal/models"
	"github.com/magala-news-api/internal/repository"
)

// Unique and FK violations are surfaced the way lib/pq reports them so the
// service layer's translation is exercised against the mocks too.
func uniqueViolation() error     { return &pq.Error{Code: "23505"} }
func foreignKeyViolation() error { return &pq.Error{Code: "23503"} }

// MockUserRepository is an in-memory implementation of UserRepository
type MockUserRepository struct {
	mu     sync.Mutex
	Users  map[int]*models.User
	nextID int
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[int]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, data *models.InsertUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if u.Email == data.Email {
			return nil, uniqueViolation()
		}
	}

	m.nextID++
	now := time.Now()
	role := data.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{
		ID:                       m.nextID,
		Email:                    data.Email,
		Password:                 data.Password,
		Username:                 data.Username,
		FirstName:                data.FirstName,
		LastName:                 data.LastName,
		ProfileImageURL:          data.ProfileImageURL,
		Role:                     role,
		IsEmailVerified:          data.IsEmailVerified,
		IsSubscribedToNewsletter: true,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	m.Users[user.ID] = user
	return copyUser(user), nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) SetVerificationToken(ctx context.Context, id int, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		u.EmailVerificationToken = &token
	}
	return nil
}

func (m *MockUserRepository) VerifyEmailByToken(ctx context.Context, token string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == token {
			u.IsEmailVerified = true
			u.EmailVerificationToken = nil
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) SetPasswordResetToken(ctx context.Context, id int, token string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		u.PasswordResetToken = &token
		u.PasswordResetExpires = &expires
	}
	return nil
}

func (m *MockUserRepository) ResetPasswordByToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(now) {
			u.Password = &passwordHash
			u.PasswordResetToken = nil
			u.PasswordResetExpires = nil
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

// MockCategoryRepository is an in-memory implementation of CategoryRepository
type MockCategoryRepository struct {
	mu         sync.Mutex
	Categories map[int]*models.Category
	nextID     int
}

var _ repository.CategoryRepository = (*MockCategoryRepository)(nil)

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[int]*models.Category)}
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Category{}
	for _, c := range m.Categories {
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Categories {
		if c.Slug == slug {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) Create(ctx context.Context, name, slug, color string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Categories {
		if c.Slug == slug {
			return nil, uniqueViolation()
		}
	}

	m.nextID++
	category := &models.Category{
		ID:        m.nextID,
		Name:      name,
		Slug:      slug,
		Color:     color,
		CreatedAt: time.Now(),
	}
	m.Categories[category.ID] = category
	copied := *category
	return &copied, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, id int, name, slug, color *string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Categories[id]
	if !ok {
		return nil, nil
	}
	if slug != nil {
		for otherID, other := range m.Categories {
			if otherID != id && other.Slug == *slug {
				return nil, uniqueViolation()
			}
		}
		c.Slug = *slug
	}
	if name != nil {
		c.Name = *name
	}
	if color != nil {
		c.Color = *color
	}
	copied := *c
	return &copied, nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Categories[id]; !ok {
		return false, nil
	}
	delete(m.Categories, id)
	return true, nil
}

// MockArticleRepository is an in-memory implementation of ArticleRepository.
// Counter updates are mutex guarded, matching the atomicity the SQL
// implementation gets from single UPDATE statements.
type MockArticleRepository struct {
	mu       sync.Mutex
	Articles map[int]*models.ArticleWithDetails
	nextID   int
	clock    time.Time
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[int]*models.ArticleWithDetails),
		clock:    time.Now(),
	}
}

// tick produces strictly increasing timestamps so ordering is deterministic
func (m *MockArticleRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func copyArticleDetails(a *models.ArticleWithDetails) *models.ArticleWithDetails {
	c := *a
	return &c
}

func (m *MockArticleRepository) sorted(less func(a, b *models.ArticleWithDetails) bool, match func(*models.ArticleWithDetails) bool) []*models.ArticleWithDetails {
	out := []*models.ArticleWithDetails{}
	for _, a := range m.Articles {
		if match == nil || match(a) {
			out = append(out, copyArticleDetails(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func newestFirst(a, b *models.ArticleWithDetails) bool {
	return a.PublishedAt.After(b.PublishedAt)
}

func (m *MockArticleRepository) List(ctx context.Context, limit, offset int, categoryID *int) ([]*models.ArticleWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.sorted(newestFirst, func(a *models.ArticleWithDetails) bool {
		return categoryID == nil || (a.CategoryID != nil && *a.CategoryID == *categoryID)
	})
	if offset >= len(out) {
		return []*models.ArticleWithDetails{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.ArticleWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Articles[id]; ok {
		return copyArticleDetails(a), nil
	}
	return nil, nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.ArticleWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Articles {
		if a.Slug == slug {
			return copyArticleDetails(a), nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) ListFeatured(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.sorted(newestFirst, func(a *models.ArticleWithDetails) bool { return a.IsFeatured })
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) ListBreaking(ctx context.Context) ([]*models.ArticleWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.sorted(newestFirst, func(a *models.ArticleWithDetails) bool { return a.IsBreaking })
	if len(out) > 5 {
		out = out[:5]
	}
	return out, nil
}

func (m *MockArticleRepository) ListLatest(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.sorted(newestFirst, nil)
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) ListTrending(ctx context.Context, limit int) ([]*models.ArticleWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.sorted(func(a, b *models.ArticleWithDetails) bool {
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		return a.ID < b.ID
	}, nil)
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) Search(ctx context.Context, query string, limit int) ([]*models.ArticleWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	needle := strings.ToLower(query)
	out := m.sorted(newestFirst, func(a *models.ArticleWithDetails) bool {
		return strings.Contains(strings.ToLower(a.Title), needle)
	})
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, data *models.InsertArticle, slug string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.Articles {
		if a.Slug == slug {
			return nil, uniqueViolation()
		}
	}

	m.nextID++
	now := m.tick()
	article := &models.ArticleWithDetails{
		Article: models.Article{
			ID:          m.nextID,
			Title:       data.Title,
			Slug:        slug,
			Excerpt:     data.Excerpt,
			Content:     data.Content,
			ImageURL:    data.ImageURL,
			VideoURL:    data.VideoURL,
			CategoryID:  data.CategoryID,
			AuthorID:    data.AuthorID,
			IsBreaking:  data.IsBreaking,
			IsFeatured:  data.IsFeatured,
			PublishedAt: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	m.Articles[article.ID] = article
	copied := article.Article
	return &copied, nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id int, data *models.UpdateArticle, slug *string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	if slug != nil {
		for otherID, other := range m.Articles {
			if otherID != id && other.Slug == *slug {
				return nil, uniqueViolation()
			}
		}
		a.Slug = *slug
	}
	if data.Title != nil {
		a.Title = *data.Title
	}
	if data.Excerpt != nil {
		a.Excerpt = data.Excerpt
	}
	if data.Content != nil {
		a.Content = data.Content
	}
	if data.ImageURL != nil {
		a.ImageURL = data.ImageURL
	}
	if data.VideoURL != nil {
		a.VideoURL = data.VideoURL
	}
	if data.CategoryID != nil {
		a.CategoryID = data.CategoryID
	}
	if data.IsBreaking != nil {
		a.IsBreaking = *data.IsBreaking
	}
	if data.IsFeatured != nil {
		a.IsFeatured = *data.IsFeatured
	}
	a.UpdatedAt = m.tick()
	copied := a.Article
	return &copied, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Articles[id]; !ok {
		return false, nil
	}
	delete(m.Articles, id)
	return true, nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return false, nil
	}
	a.ViewCount++
	return true, nil
}

func (m *MockArticleRepository) IncrementLikes(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return false, nil
	}
	a.LikeCount++
	return true, nil
}

// MockCommentRepository is an in-memory implementation of CommentRepository.
// KnownArticles, when populated, stands in for the article foreign key.
type MockCommentRepository struct {
	mu            sync.Mutex
	Comments      map[int]*models.Comment
	KnownArticles map[int]bool
	nextID        int
	clock         time.Time
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments:      make(map[int]*models.Comment),
		KnownArticles: make(map[int]bool),
		clock:         time.Now(),
	}
}

func (m *MockCommentRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int) ([]*models.CommentWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.CommentWithAuthor{}
	for _, c := range m.Comments {
		if c.ArticleID != nil && *c.ArticleID == articleID {
			copied := *c
			out = append(out, &models.CommentWithAuthor{Comment: copied})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockCommentRepository) ListTop(ctx context.Context, limit int) ([]*models.CommentWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.CommentWithAuthor{}
	for _, c := range m.Comments {
		copied := *c
		out = append(out, &models.CommentWithAuthor{Comment: copied})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LikeCount != out[j].LikeCount {
			return out[i].LikeCount > out[j].LikeCount
		}
		return out[i].ID < out[j].ID
	})
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, data *models.InsertComment) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data.ArticleID != nil && len(m.KnownArticles) > 0 && !m.KnownArticles[*data.ArticleID] {
		return nil, foreignKeyViolation()
	}

	m.nextID++
	comment := &models.Comment{
		ID:        m.nextID,
		Content:   data.Content,
		ArticleID: data.ArticleID,
		AuthorID:  data.AuthorID,
		ParentID:  data.ParentID,
		CreatedAt: m.tick(),
	}
	m.Comments[comment.ID] = comment
	copied := *comment
	return &copied, nil
}

func (m *MockCommentRepository) IncrementLikes(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Comments[id]
	if !ok {
		return false, nil
	}
	c.LikeCount++
	return true, nil
}

func (m *MockCommentRepository) IncrementDislikes(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Comments[id]
	if !ok {
		return false, nil
	}
	c.DislikeCount++
	return true, nil
}

// MockNewsletterRepository is an in-memory implementation of NewsletterRepository
type MockNewsletterRepository struct {
	mu            sync.Mutex
	Subscriptions map[string]*models.NewsletterSubscription
	nextID        int
}

var _ repository.NewsletterRepository = (*MockNewsletterRepository)(nil)

func NewMockNewsletterRepository() *MockNewsletterRepository {
	return &MockNewsletterRepository{Subscriptions: make(map[string]*models.NewsletterSubscription)}
}

func (m *MockNewsletterRepository) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.Subscriptions[email]; ok {
		existing.IsActive = true
		copied := *existing
		return &copied, nil
	}

	m.nextID++
	sub := &models.NewsletterSubscription{
		ID:        m.nextID,
		Email:     email,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	m.Subscriptions[email] = sub
	copied := *sub
	return &copied, nil
}
