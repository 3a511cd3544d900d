package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/ports/api"
	"bloghub/internal/blog/ports/repositories"
	"bloghub/pkg/logger"
)

const (
	methodGetCurrentProfile = "GetCurrentProfile"

	msgProfileLoaded      = "profile loaded"
	msgErrFindingProfile  = "failed to find profile user"
	msgErrListingAuthored = "failed to list authored posts"
	errCtxFindingProfile  = "finding profile user"
	errCtxListingAuthored = "listing authored posts"
)

// ProfileUseCaseImpl реализует чтение профиля.
type ProfileUseCaseImpl struct {
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
}

// NewProfileUseCase создает сценарий профиля.
func NewProfileUseCase(userRepo repositories.UserRepository, postRepo repositories.PostRepository) api.ProfileUseCase {
	return &ProfileUseCaseImpl{userRepo: userRepo, postRepo: postRepo}
}

// GetCurrentProfile возвращает пользователя и его посты, новые первыми.
func (uc *ProfileUseCaseImpl) GetCurrentProfile(ctx context.Context, requesterID string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetCurrentProfile), zap.String("userID", requesterID))

	user, err := uc.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		log.Debug(ctx, msgErrFindingProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}

	posts, err := uc.postRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrListingAuthored, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingAuthored, err)
	}
	if posts == nil {
		posts = []entities.Post{}
	}

	log.Debug(ctx, msgProfileLoaded, zap.Int("posts", len(posts)))
	return &entities.Profile{User: user, Posts: posts}, nil
}
