package entities_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"bloghub/internal/blog/domain/entities"
)

func TestKindError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"user not found", entities.ErrUserNotFound, entities.ErrNotFound, "User not found"},
		{"post not found", entities.ErrPostNotFound, entities.ErrNotFound, "Blog not found"},
		{"email exists", entities.ErrEmailAlreadyExists, entities.ErrConflict, "User with this email already exists"},
		{"bad credentials", entities.ErrInvalidCredentials, entities.ErrUnauthenticated, "Invalid email or password"},
		{"not author", entities.ErrNotPostAuthor, entities.ErrForbidden, "Not authorized to modify this blog"},
		{"fields required", entities.ErrPostFieldsRequired, entities.ErrValidation, "Title and content are required."},
		{"custom validation", entities.NewValidationError("bad body"), entities.ErrValidation, "bad body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("layer: %w", tt.err)

			assert.ErrorIs(t, wrapped, tt.kind)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.Equal(t, tt.msg, tt.err.Error())

			var ke *entities.KindError
			assert.True(t, errors.As(wrapped, &ke))
			assert.Equal(t, tt.kind, ke.Kind())
		})
	}

	assert.NotErrorIs(t, entities.ErrPostNotFound, entities.ErrForbidden)
}

func TestPost_IsAuthoredBy(t *testing.T) {
	post := entities.Post{AuthorID: "alice"}

	assert.True(t, post.IsAuthoredBy("alice"))
	assert.False(t, post.IsAuthoredBy("bob"))
	assert.False(t, post.IsAuthoredBy(""))
	assert.False(t, (&entities.Post{}).IsAuthoredBy(""))
}

func TestUser_AsAuthor(t *testing.T) {
	u := entities.User{ID: "1", Name: "Alice", Email: "a@x.io", PasswordHash: "hash"}

	assert.Equal(t, entities.Author{ID: "1", Name: "Alice", Email: "a@x.io"}, u.AsAuthor())
}
