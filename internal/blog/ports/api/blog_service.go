package api

import (
	"context"

	"bloghub/internal/blog/domain/entities"
)

// BlogUseCase определяет операции с постами блога.
type BlogUseCase interface {
	ListAll(ctx context.Context) ([]entities.Post, error)

	GetByID(ctx context.Context, id string) (*entities.Post, error)

	Create(ctx context.Context, requesterID, title, content string) (*entities.Post, error)

	Update(ctx context.Context, requesterID, id string, patch entities.PostPatch) (*entities.Post, error)

	Delete(ctx context.Context, requesterID, id string) error
}

// ProfileUseCase определяет операции с профилем текущего пользователя.
type ProfileUseCase interface {
	GetCurrentProfile(ctx context.Context, requesterID string) (*entities.Profile, error)
}
