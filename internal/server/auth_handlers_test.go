package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "Sup3r$ecretPass!"

func TestSignup(t *testing.T) {
	t.Run("creates user and returns token", func(t *testing.T) {
		var created *models.User
		users := &userRepoStub{
			GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
				return nil, nil
			},
			CreateFn: func(ctx context.Context, user *models.User) error {
				user.ID = authorID
				created = user
				return nil
			},
		}
		_, app := newTestServer(t, testDeps{users: users})

		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "",
			`{"name":"Ada","email":"ada@example.com","password":"`+strongPassword+`"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "ada@example.com", body.User.Email)

		require.NotNil(t, created)
		assert.Equal(t, models.RoleUser, created.Role)
		assert.False(t, created.EmailVerified)
		// Password must be stored hashed
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(strongPassword)))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		users := &userRepoStub{
			GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
				return &models.User{ID: authorID, Email: email}, nil
			},
		}
		_, app := newTestServer(t, testDeps{users: users})

		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "",
			`{"name":"Ada","email":"ada@example.com","password":"`+strongPassword+`"}`)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		_, app := newTestServer(t, testDeps{})
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "",
			`{"name":"Ada","email":"ada@example.com","password":"short"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, app := newTestServer(t, testDeps{})
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", `{"email":"a@b.co"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(strongPassword), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{
		ID:       authorID,
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: string(hashed),
		Status:   models.UserActive,
	}

	users := &userRepoStub{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, nil
		},
	}

	t.Run("valid credentials", func(t *testing.T) {
		_, app := newTestServer(t, testDeps{users: users})
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
			`{"email":"ada@example.com","password":"`+strongPassword+`"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, app := newTestServer(t, testDeps{users: users})
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
			`{"email":"ada@example.com","password":"wrong-password"}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, app := newTestServer(t, testDeps{users: users})
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
			`{"email":"nobody@example.com","password":"`+strongPassword+`"}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("blocked account", func(t *testing.T) {
		blocked := *stored
		blocked.Status = models.UserBlocked
		blockedUsers := &userRepoStub{
			GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
				return &blocked, nil
			},
		}
		_, app := newTestServer(t, testDeps{users: blockedUsers})
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
			`{"email":"ada@example.com","password":"`+strongPassword+`"}`)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestGenerateToken_Claims(t *testing.T) {
	s := &Server{config: &config.Config{JWTSecret: testJWTSecret}}

	tokenStr, err := s.generateToken(authorID, "Ada")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)

	assert.Equal(t, authorID, claims["sub"])
	assert.Equal(t, tokenIssuer, claims["iss"])
	assert.Equal(t, tokenAudience, claims["aud"])
	assert.NotEmpty(t, claims["jti"])
}

func TestGenerateToken_NoSecret(t *testing.T) {
	s := &Server{config: &config.Config{}}
	_, err := s.generateToken(authorID, "Ada")
	require.Error(t, err)
}
