package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/domain/services"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Create(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	args := m.Called(ctx, post)
	p, _ := args.Get(0).(*entities.Post)
	return p, args.Error(1)
}

func (m *mockPostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entities.Post)
	return p, args.Error(1)
}

func (m *mockPostRepository) ListAll(ctx context.Context) ([]entities.Post, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]entities.Post)
	return p, args.Error(1)
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID string) ([]entities.Post, error) {
	args := m.Called(ctx, authorID)
	p, _ := args.Get(0).([]entities.Post)
	return p, args.Error(1)
}

func (m *mockPostRepository) Update(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	args := m.Called(ctx, post)
	p, _ := args.Get(0).(*entities.Post)
	return p, args.Error(1)
}

func (m *mockPostRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(ctx context.Context, userID string) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	expires, _ := args.Get(1).(time.Time)
	return args.String(0), expires, args.Error(2)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, token string) (services.JWTClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(services.JWTClaims)
	return claims, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	args := make([]any, 0, len(keys)+1)
	args = append(args, ctx)
	for _, k := range keys {
		args = append(args, k)
	}
	return m.Called(args...).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}
