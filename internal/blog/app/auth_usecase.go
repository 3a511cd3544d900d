// Package app содержит сценарии использования сервиса блогов.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/domain/services"
	"bloghub/internal/blog/ports/api"
	"bloghub/internal/blog/ports/repositories"
	svc "bloghub/internal/blog/ports/services"
	"bloghub/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"
	methodLogout   = "Logout"

	msgStartRegistration  = "starting user registration"
	msgMissingFields      = "required fields missing"
	msgInvalidEmailFormat = "invalid email format"
	msgEmailExists        = "user with this email already exists"
	msgUserRegistered     = "user registered successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginUnknownEmail  = "login attempt with unknown email"
	msgLoginBadPassword   = "login attempt with wrong password"
	msgUserLoggedIn       = "user logged in successfully"
	msgUserLoggedOut      = "logout requested"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrGenerateToken     = "failed to generate session token"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidating        = "validating input"
	errCtxCheckingUser      = "checking existing user"
	errCtxEmailRegistered   = "email already registered"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxGeneratingToken   = "generating token"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxInvalidCreds      = "invalid credentials"

	msgPasswordTooLong = "Password must be at most 72 bytes."
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthUseCaseImpl реализует регистрацию и вход.
type AuthUseCaseImpl struct {
	userRepo        repositories.UserRepository
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

// NewAuthUseCase создает сценарий аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordService svc.PasswordService,
	tokenService svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// NormalizeEmail приводит email к каноническому виду.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создает пользователя и выпускает для него токен.
func (uc *AuthUseCaseImpl) Register(ctx context.Context, name, email, password string) (*services.AuthResult, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Info(ctx, msgStartRegistration)

	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		log.Debug(ctx, msgMissingFields)
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrRegisterFields)
	}
	if !emailRegex.MatchString(email) {
		log.Debug(ctx, msgInvalidEmailFormat)
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidEmail)
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		log.Info(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailAlreadyExists)
	case err != nil && !errors.Is(err, entities.ErrUserNotFound):
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}

	hash, err := uc.passwordService.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.NewValidationError(msgPasswordTooLong))
		}
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user, err := uc.userRepo.Create(ctx, &entities.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, entities.ErrEmailAlreadyExists) {
			log.Info(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	result, err := uc.issue(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", user.ID))
	return result, nil
}

// Login проверяет учетные данные и выпускает новый токен.
func (uc *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	email = NormalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Info(ctx, msgLoginAttempt)

	if email == "" || password == "" {
		log.Debug(ctx, msgMissingFields)
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrLoginFields)
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgLoginUnknownEmail)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := uc.passwordService.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Info(ctx, msgLoginBadPassword)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, entities.ErrInvalidCredentials)
	}

	result, err := uc.issue(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return result, nil
}

// Logout ничего не отзывает: токены без состояния действуют до истечения срока.
func (uc *AuthUseCaseImpl) Logout(ctx context.Context) error {
	logger.Log(ctx).With(zap.String("method", methodLogout)).Info(ctx, msgUserLoggedOut)
	return nil
}

func (uc *AuthUseCaseImpl) issue(ctx context.Context, user *entities.User) (*services.AuthResult, error) {
	token, expiresAt, err := uc.tokenService.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}
	return &services.AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
