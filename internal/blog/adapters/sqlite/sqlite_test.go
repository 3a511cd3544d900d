package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/internal/blog/adapters/sqlite"
	"bloghub/internal/blog/domain/entities"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func createUser(t *testing.T, store *sqlite.Store, name, email string) *entities.User {
	t.Helper()
	user, err := store.UserRepository().Create(context.Background(), &entities.User{
		Name: name, Email: email, PasswordHash: "hash",
	})
	require.NoError(t, err)
	return user
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blog.db")

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	_, err = store.UserRepository().Create(ctx, &entities.User{Name: "Alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	require.NoError(t, store.Close(ctx))

	reopened, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close(ctx) }()

	require.NoError(t, reopened.Ping(ctx))
	user, err := reopened.UserRepository().FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	users := store.UserRepository()

	alice := createUser(t, store, "Alice", "alice@example.com")
	assert.NotEmpty(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	t.Run("find by id", func(t *testing.T) {
		got, err := users.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Email, got.Email)
		assert.True(t, alice.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("find by email", func(t *testing.T) {
		got, err := users.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.Equal(t, "hash", got.PasswordHash)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := users.FindByID(ctx, "nope")
		require.ErrorIs(t, err, entities.ErrUserNotFound)

		_, err = users.FindByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := users.Create(ctx, &entities.User{Name: "Other", Email: "alice@example.com", PasswordHash: "h"})
		require.ErrorIs(t, err, entities.ErrEmailAlreadyExists)
	})
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	posts := store.PostRepository()

	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")

	first, err := posts.Create(ctx, &entities.Post{AuthorID: alice.ID, Title: "First", Content: "one"})
	require.NoError(t, err)
	second, err := posts.Create(ctx, &entities.Post{AuthorID: bob.ID, Title: "Second", Content: "two"})
	require.NoError(t, err)
	third, err := posts.Create(ctx, &entities.Post{AuthorID: alice.ID, Title: "Third", Content: "three"})
	require.NoError(t, err)

	t.Run("list all newest first with authors", func(t *testing.T) {
		all, err := posts.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
		assert.Equal(t, "Bob", all[1].Author.Name)
		assert.Equal(t, "alice@example.com", all[0].Author.Email)
	})

	t.Run("list by author", func(t *testing.T) {
		own, err := posts.ListByAuthor(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, own, 2)
		assert.Equal(t, third.ID, own[0].ID)

		none, err := posts.ListByAuthor(ctx, "unknown")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := posts.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "First", got.Title)
		require.NotNil(t, got.Author)
		assert.Equal(t, alice.ID, got.Author.ID)

		_, err = posts.FindByID(ctx, "missing")
		require.ErrorIs(t, err, entities.ErrPostNotFound)
	})

	t.Run("update", func(t *testing.T) {
		got, err := posts.FindByID(ctx, first.ID)
		require.NoError(t, err)
		got.Title = "First (edited)"

		updated, err := posts.Update(ctx, got)
		require.NoError(t, err)
		assert.Equal(t, "First (edited)", updated.Title)
		assert.Equal(t, "one", updated.Content)
		assert.Equal(t, alice.ID, updated.AuthorID)
		assert.True(t, updated.CreatedAt.Equal(first.CreatedAt))
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
		assert.Equal(t, got.Author, updated.Author)

		_, err = posts.Update(ctx, &entities.Post{ID: "missing", Title: "x", Content: "y"})
		require.ErrorIs(t, err, entities.ErrPostNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, posts.Delete(ctx, second.ID))
		require.ErrorIs(t, posts.Delete(ctx, second.ID), entities.ErrPostNotFound)

		_, err := posts.FindByID(ctx, second.ID)
		require.ErrorIs(t, err, entities.ErrPostNotFound)
	})

	t.Run("unknown author", func(t *testing.T) {
		_, err := posts.Create(ctx, &entities.Post{AuthorID: "ghost", Title: "t", Content: "c"})
		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}
