package repositories

import (
	"context"

	"bloghub/internal/blog/domain/entities"
)

// PostRepository определяет операции хранения постов.
// Методы чтения заполняют Author, сортировка - по created_at по убыванию.
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) (*entities.Post, error)

	FindByID(ctx context.Context, id string) (*entities.Post, error)

	ListAll(ctx context.Context) ([]entities.Post, error)

	ListByAuthor(ctx context.Context, authorID string) ([]entities.Post, error)

	Update(ctx context.Context, post *entities.Post) (*entities.Post, error)

	Delete(ctx context.Context, id string) error
}

// Store объединяет репозитории одного хранилища.
type Store interface {
	UserRepository() UserRepository

	PostRepository() PostRepository

	Ping(ctx context.Context) error

	Close(ctx context.Context) error
}
