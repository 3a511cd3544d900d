package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adapters "bloghub/internal/blog/adapters/services"
	"bloghub/internal/blog/domain/services"
)

//nolint:gosec
const (
	testSecret   = "test-secret-key"
	testPassword = "secret1"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewBcrypt(bcrypt.MinCost)

	hash, err := svc.Hash(ctx, testPassword)
	require.NoError(t, err)
	assert.NotEqual(t, testPassword, hash)

	ok, err := svc.Verify(ctx, testPassword, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(ctx, "wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewBcrypt(0)

	_, err := svc.Hash(ctx, "")
	require.ErrorIs(t, err, services.ErrInvalidPassword)

	_, err = svc.Hash(ctx, strings.Repeat("x", services.MaxPasswordBytes+1))
	require.ErrorIs(t, err, services.ErrInvalidPassword)

	_, err = svc.Verify(ctx, "", "hash")
	require.ErrorIs(t, err, services.ErrInvalidPassword)

	_, err = svc.Verify(ctx, "pw", "")
	require.ErrorIs(t, err, services.ErrInvalidPassword)

	_, err = svc.Verify(ctx, "pw", "not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestJWT_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewJWT(testSecret, time.Hour)

	token, expiresAt, err := svc.GenerateToken(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 2*time.Second)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, claims.ExpiresAt.Equal(expiresAt))
	assert.False(t, claims.IssuedAt.After(claims.ExpiresAt))
}

func TestJWT_ValidateErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("expired", func(t *testing.T) {
		svc := adapters.NewJWT(testSecret, -time.Minute)
		token, _, err := svc.GenerateToken(ctx, "user-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		require.ErrorIs(t, err, services.ErrExpiredJWTToken)
	})

	t.Run("malformed", func(t *testing.T) {
		svc := adapters.NewJWT(testSecret, time.Hour)
		_, err := svc.ValidateToken(ctx, "not.a.jwt")
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("empty", func(t *testing.T) {
		svc := adapters.NewJWT(testSecret, time.Hour)
		_, err := svc.ValidateToken(ctx, "")
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("wrong key", func(t *testing.T) {
		token, _, err := adapters.NewJWT("other-key", time.Hour).GenerateToken(ctx, "user-1")
		require.NoError(t, err)

		_, err = adapters.NewJWT(testSecret, time.Hour).ValidateToken(ctx, token)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("empty secret cannot sign", func(t *testing.T) {
		_, _, err := adapters.NewJWT("", time.Hour).GenerateToken(ctx, "user-1")
		require.ErrorIs(t, err, services.ErrGeneratingJWTToken)
	})
}

func TestVerifyToken(t *testing.T) {
	key := []byte(testSecret)
	issued := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	claims := services.JWTClaims{UserID: "alice", IssuedAt: issued, ExpiresAt: issued.Add(time.Hour)}

	token, err := adapters.SignToken(claims, key)
	require.NoError(t, err)

	t.Run("valid before expiry", func(t *testing.T) {
		got, err := adapters.VerifyToken(token, key, issued.Add(30*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, "alice", got.UserID)
		assert.True(t, got.ExpiresAt.Equal(claims.ExpiresAt))
	})

	t.Run("expired after expiry", func(t *testing.T) {
		_, err := adapters.VerifyToken(token, key, issued.Add(2*time.Hour))
		require.ErrorIs(t, err, services.ErrExpiredJWTToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		tampered := token[:len(token)-2] + "xx"
		_, err := adapters.VerifyToken(tampered, key, issued)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, adapters.Claims{UserID: "alice"}).SignedString(key)
		require.NoError(t, err)

		_, err = adapters.VerifyToken(noExp, key, issued)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		anon, err := adapters.SignToken(services.JWTClaims{IssuedAt: issued, ExpiresAt: issued.Add(time.Hour)}, key)
		require.NoError(t, err)

		_, err = adapters.VerifyToken(anon, key, issued)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, adapters.Claims{
			UserID: "alice",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
			},
		}).SignedString(key)
		require.NoError(t, err)

		_, err = adapters.VerifyToken(hs512, key, issued)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})
}

func TestServiceFactory(t *testing.T) {
	f := adapters.NewServiceFactory(testSecret, time.Hour, bcrypt.MinCost)

	assert.NotNil(t, f.PasswordService())
	assert.NotNil(t, f.TokenService())
}
