package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/query"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-12345678901234567890123456789012"

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// --- repository stubs ---

type userRepoStub struct {
	GetByIDFn     func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFn  func(ctx context.Context, email string) (*models.User, error)
	CreateFn      func(ctx context.Context, user *models.User) error
	UpdateFn      func(ctx context.Context, user *models.User) error
	CountByRoleFn func(ctx context.Context, role models.UserRole) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.GetByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.CreateFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.UpdateFn(ctx, user)
}
func (s *userRepoStub) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	return s.CountByRoleFn(ctx, role)
}

type postRepoStub struct {
	CreateFn                func(ctx context.Context, post *models.Post) error
	GetByIDFn               func(ctx context.Context, id string) (*models.Post, error)
	ListFn                  func(ctx context.Context, filter query.PostFilter, limit, offset int, order string) ([]models.Post, error)
	CountFn                 func(ctx context.Context, filter query.PostFilter) (int64, error)
	UpdateFieldsFn          func(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteFn                func(ctx context.Context, id string) error
	IncrementViewsFn        func(ctx context.Context, id string) error
	CountCommentsByStatusFn func(ctx context.Context, postID string, status models.CommentStatus) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.CreateFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, filter query.PostFilter, limit, offset int, order string) ([]models.Post, error) {
	return s.ListFn(ctx, filter, limit, offset, order)
}
func (s *postRepoStub) Count(ctx context.Context, filter query.PostFilter) (int64, error) {
	return s.CountFn(ctx, filter)
}
func (s *postRepoStub) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.UpdateFieldsFn(ctx, id, fields)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.DeleteFn(ctx, id)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id string) error {
	return s.IncrementViewsFn(ctx, id)
}
func (s *postRepoStub) CountCommentsByStatus(ctx context.Context, postID string, status models.CommentStatus) (int64, error) {
	return s.CountCommentsByStatusFn(ctx, postID, status)
}

type commentRepoStub struct {
	CreateFn             func(ctx context.Context, comment *models.Comment) error
	GetByIDFn            func(ctx context.Context, id string) (*models.Comment, error)
	ListApprovedByPostFn func(ctx context.Context, postID string) ([]models.Comment, error)
	ListByAuthorFn       func(ctx context.Context, authorID string, limit, offset int) ([]models.Comment, int64, error)
	UpdateFn             func(ctx context.Context, comment *models.Comment) error
	UpdateStatusFn       func(ctx context.Context, id string, status models.CommentStatus) error
	DeleteFn             func(ctx context.Context, id string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.CreateFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *commentRepoStub) ListApprovedByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.ListApprovedByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]models.Comment, int64, error) {
	return s.ListByAuthorFn(ctx, authorID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.UpdateFn(ctx, comment)
}
func (s *commentRepoStub) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) error {
	return s.UpdateStatusFn(ctx, id, status)
}
func (s *commentRepoStub) Delete(ctx context.Context, id string) error {
	return s.DeleteFn(ctx, id)
}

type statsRepoStub struct {
	SnapshotFn func(ctx context.Context) (*models.StatsSnapshot, error)
}

func (s *statsRepoStub) Snapshot(ctx context.Context) (*models.StatsSnapshot, error) {
	return s.SnapshotFn(ctx)
}

// --- test server wiring ---

type testDeps struct {
	users    *userRepoStub
	posts    *postRepoStub
	comments *commentRepoStub
	stats    *statsRepoStub
}

// newTestServer builds a Server over stubbed repositories and returns a
// fiber app with the full route table installed.
func newTestServer(t *testing.T, deps testDeps) (*Server, *fiber.App) {
	t.Helper()

	if deps.users == nil {
		deps.users = &userRepoStub{}
	}
	if deps.posts == nil {
		deps.posts = &postRepoStub{}
	}
	if deps.comments == nil {
		deps.comments = &commentRepoStub{}
	}
	if deps.stats == nil {
		deps.stats = &statsRepoStub{}
	}

	s := &Server{
		config:      &config.Config{JWTSecret: testJWTSecret},
		userRepo:    deps.users,
		postRepo:    deps.posts,
		commentRepo: deps.comments,
		statsRepo:   deps.stats,
	}
	s.userService = service.NewUserService(s.userRepo)
	s.postService = service.NewPostService(s.postRepo, s.commentRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.postRepo, s.userService.IsAdmin)
	s.statsService = service.NewStatsService(s.statsRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// activeUser returns a user that passes the content mutation gate.
func activeUser(id string) *models.User {
	return &models.User{
		ID:            id,
		Name:          "Test Author",
		Email:         id + "@example.com",
		Role:          models.RoleUser,
		Status:        models.UserActive,
		EmailVerified: true,
	}
}

// userOracle is a GetByID stub serving the given users by ID.
func userOracle(users ...*models.User) func(ctx context.Context, id string) (*models.User, error) {
	return func(ctx context.Context, id string) (*models.User, error) {
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
		return nil, models.NewNotFoundError("User", id)
	}
}

func testToken(t *testing.T, userID string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"jti": "test-jti",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, target, token, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// --- auth middleware ---

func TestServer_AuthRequired(t *testing.T) {
	s := &Server{config: &config.Config{JWTSecret: testJWTSecret}}
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	makeToken := func(sub interface{}, issuer, audience string, exp time.Duration) string {
		claims := jwt.MapClaims{
			"sub": sub,
			"iss": issuer,
			"aud": audience,
			"exp": time.Now().Add(exp).Unix(),
			"jti": "test-jti",
		}
		str, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
		return str
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "Valid Token",
			authHeader:     "Bearer " + makeToken("11111111-1111-1111-1111-111111111111", tokenIssuer, tokenAudience, time.Hour),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + makeToken("11111111-1111-1111-1111-111111111111", tokenIssuer, tokenAudience, -time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Issuer",
			authHeader:     "Bearer " + makeToken("11111111-1111-1111-1111-111111111111", "wrong-issuer", tokenAudience, time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Audience",
			authHeader:     "Bearer " + makeToken("11111111-1111-1111-1111-111111111111", tokenIssuer, "wrong-audience", time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Non-String Subject",
			authHeader:     "Bearer " + makeToken(123, tokenIssuer, tokenAudience, time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Bearer Format",
			authHeader:     "BearerTokenOnly",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestServer_AdminRequired(t *testing.T) {
	admin := activeUser("11111111-1111-1111-1111-111111111111")
	admin.Role = models.RoleAdmin
	regular := activeUser("22222222-2222-2222-2222-222222222222")

	users := &userRepoStub{GetByIDFn: userOracle(admin, regular)}
	stats := &statsRepoStub{SnapshotFn: func(ctx context.Context) (*models.StatsSnapshot, error) {
		return &models.StatsSnapshot{TotalPosts: 3}, nil
	}}
	_, app := newTestServer(t, testDeps{users: users, stats: stats})

	resp := doJSON(t, app, http.MethodGet, "/api/stats", testToken(t, admin.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/stats", testToken(t, regular.ID), "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/stats", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_LivenessCheck(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/health/live", s.LivenessCheck)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
