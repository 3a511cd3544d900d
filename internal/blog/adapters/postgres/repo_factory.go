package postgres

import (
	"context"
	"fmt"

	"bloghub/internal/blog/ports/repositories"
)

// RepositoryFactory собирает репозитории поверх одного пула.
type RepositoryFactory struct {
	pool     PgxPoolInterface
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
}

// NewRepositoryFactory создает фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		pool:     pool,
		userRepo: NewUserRepository(pool),
		postRepo: NewPostRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// PostRepository возвращает репозиторий постов.
func (f *RepositoryFactory) PostRepository() repositories.PostRepository {
	return f.postRepo
}

// Ping проверяет доступность базы.
func (f *RepositoryFactory) Ping(ctx context.Context) error {
	if err := f.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Close закрывает пул.
func (f *RepositoryFactory) Close(_ context.Context) error {
	f.pool.Close()
	return nil
}

var _ repositories.Store = (*RepositoryFactory)(nil)
