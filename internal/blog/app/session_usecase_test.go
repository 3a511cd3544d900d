package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bloghub/internal/blog/app"
	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/domain/services"
)

func TestAuthenticate(t *testing.T) {
	user := &entities.User{ID: testUserID, Name: testName, Email: testEmail}
	claims := services.JWTClaims{UserID: testUserID, ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name        string
		token       string
		setupMocks  func(users *mockUserRepository, tokens *mockTokenService)
		expectedErr error
	}{
		{
			name:  "valid token",
			token: testToken,
			setupMocks: func(users *mockUserRepository, tokens *mockTokenService) {
				tokens.On("ValidateToken", mock.Anything, testToken).Return(claims, nil).Once()
				users.On("FindByID", mock.Anything, testUserID).Return(user, nil).Once()
			},
		},
		{
			name:        "missing token",
			token:       "",
			setupMocks:  func(*mockUserRepository, *mockTokenService) {},
			expectedErr: entities.ErrNotAuthenticated,
		},
		{
			name:  "expired token",
			token: testToken,
			setupMocks: func(_ *mockUserRepository, tokens *mockTokenService) {
				tokens.On("ValidateToken", mock.Anything, testToken).
					Return(services.JWTClaims{}, services.ErrExpiredJWTToken).Once()
			},
			expectedErr: entities.ErrInvalidSession,
		},
		{
			name:  "user deleted",
			token: testToken,
			setupMocks: func(users *mockUserRepository, tokens *mockTokenService) {
				tokens.On("ValidateToken", mock.Anything, testToken).Return(claims, nil).Once()
				users.On("FindByID", mock.Anything, testUserID).Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr: entities.ErrInvalidSession,
		},
		{
			name:  "store failure",
			token: testToken,
			setupMocks: func(users *mockUserRepository, tokens *mockTokenService) {
				tokens.On("ValidateToken", mock.Anything, testToken).Return(claims, nil).Once()
				users.On("FindByID", mock.Anything, testUserID).Return(nil, errDatabase).Once()
			},
			expectedErr: errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepository)
			tokens := new(mockTokenService)
			tt.setupMocks(users, tokens)
			uc := app.NewSessionUseCase(users, tokens)

			session, err := uc.Authenticate(context.Background(), tt.token)

			if tt.expectedErr == nil {
				require.NoError(t, err)
				assert.Equal(t, user, session.User)
				assert.Equal(t, claims, session.Claims)
			} else {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, session)
			}
			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}

	t.Run("invalid session is unauthenticated", func(t *testing.T) {
		assert.ErrorIs(t, entities.ErrInvalidSession, entities.ErrUnauthenticated)
		assert.ErrorIs(t, entities.ErrNotAuthenticated, entities.ErrUnauthenticated)
	})
}
