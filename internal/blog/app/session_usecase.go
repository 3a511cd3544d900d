package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/domain/services"
	"bloghub/internal/blog/ports/api"
	"bloghub/internal/blog/ports/repositories"
	svc "bloghub/internal/blog/ports/services"
	"bloghub/pkg/logger"
)

const (
	methodAuthenticate = "Authenticate"

	msgNoToken          = "no session token provided"
	msgTokenRejected    = "session token rejected"
	msgSessionUserGone  = "session user no longer exists"
	msgErrLoadingUser   = "failed to load session user"
	msgSessionValidated = "session validated"

	errCtxValidatingSession = "validating session"
	errCtxLoadingUser       = "loading session user"
)

// SessionUseCaseImpl проверяет сессионные токены.
type SessionUseCaseImpl struct {
	userRepo     repositories.UserRepository
	tokenService svc.TokenService
}

// NewSessionUseCase создает сценарий проверки сессии.
func NewSessionUseCase(userRepo repositories.UserRepository, tokenService svc.TokenService) api.SessionUseCase {
	return &SessionUseCaseImpl{userRepo: userRepo, tokenService: tokenService}
}

// Authenticate возвращает пользователя, которому принадлежит токен.
func (uc *SessionUseCaseImpl) Authenticate(ctx context.Context, token string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	if token == "" {
		log.Debug(ctx, msgNoToken)
		return nil, entities.ErrNotAuthenticated
	}

	claims, err := uc.tokenService.ValidateToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingSession, entities.ErrInvalidSession)
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgSessionUserGone, zap.String("userID", claims.UserID))
			return nil, fmt.Errorf("%s: %w", errCtxValidatingSession, entities.ErrInvalidSession)
		}
		log.Error(ctx, msgErrLoadingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingUser, err)
	}

	log.Debug(ctx, msgSessionValidated, zap.String("userID", user.ID))
	return &services.Session{User: user, Claims: claims}, nil
}
