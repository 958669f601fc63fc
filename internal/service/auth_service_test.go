package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/config"
	"github.com/yourorg/smart-bookmarks/internal/model"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, email, passwordHash string) (int64, error) {
	id := f.nextID
	f.nextID++
	f.users[id] = &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return id, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id int64) error {
	user, ok := f.users[id]
	if !ok {
		return nil
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	}
}

func TestAuthServiceRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	resp, err := svc.Register(context.Background(), &model.UserCreate{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	// The stored hash is never the plaintext password
	stored := repo.users[resp.User.ID]
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	_, err := svc.Register(context.Background(), &model.UserCreate{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &model.UserCreate{
		Email:    "Alice@example.com",
		Password: "another pass",
	})
	require.Error(t, err)
	assert.Equal(t, "email already in use", err.Error())
}

func TestAuthServiceLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	_, err := svc.Register(context.Background(), &model.UserCreate{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.UserLogin{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// Wrong password and unknown user produce the same error
	_, err = svc.Login(context.Background(), &model.UserLogin{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())

	_, err = svc.Login(context.Background(), &model.UserLogin{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestAuthServiceRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	registered, err := svc.Register(context.Background(), &model.UserCreate{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
}

func TestAuthServiceRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	registered, err := svc.Register(context.Background(), &model.UserCreate{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), registered.AccessToken)
	require.Error(t, err)
	assert.Equal(t, "invalid token type", err.Error())
}

func TestAuthServiceRefreshRejectsForgedToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testAuthConfig(), zap.NewNop())

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  int64(1),
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), forged)
	require.Error(t, err)
	assert.Equal(t, "invalid refresh token", err.Error())
}
