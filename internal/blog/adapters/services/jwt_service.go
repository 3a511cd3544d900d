package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"bloghub/internal/blog/domain/services"
	svc "bloghub/internal/blog/ports/services"
	"bloghub/pkg/logger"
)

const (
	methodGenerateToken = "GenerateToken"
	methodValidateToken = "ValidateToken"

	msgGeneratingToken = "generating session token"
	msgTokenGenerated  = "session token generated"
	msgValidatingToken = "validating session token"
	msgTokenValidated  = "session token validated"
	msgTokenExpired    = "session token has expired"
	msgInvalidToken    = "session token rejected"

	errCtxGeneratingToken = "generating token"
	errCtxValidatingToken = "validating token"
)

// ErrEmptySecret возвращается при попытке подписать токен пустым ключом.
var ErrEmptySecret = errors.New("empty secret key")

// Claims - представление утверждений для библиотеки JWT.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует TokenService с подписью HS256.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

// NewJWT создает сервис токенов.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{SecretKey: []byte(secretKey), TokenTTL: tokenTTL},
		now:    time.Now,
	}
}

func domainToJWTClaims(c services.JWTClaims) Claims {
	return Claims{
		UserID: c.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
	}
}

func jwtToDomainClaims(c *Claims) services.JWTClaims {
	out := services.JWTClaims{UserID: c.UserID}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}

// SignToken подписывает утверждения ключом key.
func SignToken(claims services.JWTClaims, key []byte) (string, error) {
	if len(key) == 0 {
		return "", fmt.Errorf("%w: %w", services.ErrGeneratingJWTToken, ErrEmptySecret)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(claims))
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", services.ErrGeneratingJWTToken, err)
	}
	return signed, nil
}

// VerifyToken проверяет подпись и срок действия токена на момент now.
// Не имеет побочных эффектов.
func VerifyToken(tokenString string, key []byte, now time.Time) (services.JWTClaims, error) {
	if tokenString == "" || len(key) == 0 {
		return services.JWTClaims{}, services.ErrInvalidJWTToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return services.JWTClaims{}, services.ErrExpiredJWTToken
		}
		return services.JWTClaims{}, fmt.Errorf("%w: %w", services.ErrInvalidJWTToken, err)
	}

	if claims.UserID == "" {
		return services.JWTClaims{}, fmt.Errorf("%w: empty user_id", services.ErrInvalidJWTToken)
	}
	return jwtToDomainClaims(claims), nil
}

// GenerateToken выпускает токен для userID.
func (s *ServiceJWT) GenerateToken(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGenerateToken), zap.String("userID", userID))
	log.Debug(ctx, msgGeneratingToken)

	now := s.now().Truncate(time.Second)
	claims := services.JWTClaims{
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TokenTTL),
	}

	token, err := SignToken(claims, s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errCtxGeneratingToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", claims.ExpiresAt))
	return token, claims.ExpiresAt, nil
}

// ValidateToken проверяет токен на текущий момент.
func (s *ServiceJWT) ValidateToken(ctx context.Context, token string) (services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	claims, err := VerifyToken(token, s.config.SecretKey, s.now())
	if err != nil {
		if errors.Is(err, services.ErrExpiredJWTToken) {
			log.Debug(ctx, msgTokenExpired)
		} else {
			log.Debug(ctx, msgInvalidToken, zap.Error(err))
		}
		return services.JWTClaims{}, fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.UserID))
	return claims, nil
}
