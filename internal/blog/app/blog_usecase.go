package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/ports/api"
	"bloghub/internal/blog/ports/cache"
	"bloghub/internal/blog/ports/repositories"
	"bloghub/pkg/logger"
)

const (
	methodListAll = "ListAll"
	methodGetByID = "GetByID"
	methodCreate  = "Create"
	methodUpdate  = "Update"
	methodDelete  = "Delete"

	msgInvalidPostID    = "malformed post id"
	msgPostFieldsEmpty  = "title or content is empty"
	msgPostCreated      = "post created"
	msgPostUpdated      = "post updated"
	msgPostDeleted      = "post deleted"
	msgNotPostAuthor    = "requester is not the post author"
	msgErrListingPosts  = "failed to list posts"
	msgErrFindingPost   = "failed to find post"
	msgErrCreatingPost  = "failed to create post"
	msgErrUpdatingPost  = "failed to update post"
	msgErrDeletingPost  = "failed to delete post"
	msgErrReloadingPost = "failed to reload created post"

	errCtxListingPosts = "listing posts"
	errCtxFindingPost  = "finding post"
	errCtxCreatingPost = "creating post"
	errCtxUpdatingPost = "updating post"
	errCtxDeletingPost = "deleting post"
	errCtxCheckingPost = "checking post ownership"
)

// BlogUseCaseImpl реализует операции с постами.
type BlogUseCaseImpl struct {
	postRepo repositories.PostRepository
	cache    *postCache
}

// NewBlogUseCase создает сценарий работы с постами. c может быть nil.
func NewBlogUseCase(postRepo repositories.PostRepository, c cache.Cache, cacheTTL time.Duration) api.BlogUseCase {
	return &BlogUseCaseImpl{postRepo: postRepo, cache: newPostCache(c, cacheTTL)}
}

func validPostID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ListAll возвращает все посты, новые первыми.
func (uc *BlogUseCaseImpl) ListAll(ctx context.Context) ([]entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListAll))

	if posts, ok := uc.cache.getAll(ctx); ok {
		return posts, nil
	}

	gen := uc.cache.snapshot()
	posts, err := uc.postRepo.ListAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListingPosts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingPosts, err)
	}
	if posts == nil {
		posts = []entities.Post{}
	}

	uc.cache.putAll(ctx, posts, gen)
	return posts, nil
}

// GetByID возвращает пост с автором.
func (uc *BlogUseCaseImpl) GetByID(ctx context.Context, id string) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetByID), zap.String("postID", id))

	if !validPostID(id) {
		log.Debug(ctx, msgInvalidPostID)
		return nil, fmt.Errorf("%s: %w", errCtxFindingPost, entities.ErrPostNotFound)
	}

	if post, ok := uc.cache.getPost(ctx, id); ok {
		return post, nil
	}

	gen := uc.cache.snapshot()
	post, err := uc.postRepo.FindByID(ctx, id)
	if err != nil {
		log.Debug(ctx, msgErrFindingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingPost, err)
	}

	uc.cache.putPost(ctx, post, gen)
	return post, nil
}

// Create создает пост от имени requesterID.
func (uc *BlogUseCaseImpl) Create(ctx context.Context, requesterID, title, content string) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate), zap.String("userID", requesterID))

	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		log.Debug(ctx, msgPostFieldsEmpty)
		return nil, fmt.Errorf("%s: %w", errCtxCreatingPost, entities.ErrPostFieldsRequired)
	}

	created, err := uc.postRepo.Create(ctx, &entities.Post{
		AuthorID: requesterID,
		Title:    title,
		Content:  content,
	})
	if err != nil {
		log.Error(ctx, msgErrCreatingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingPost, err)
	}
	uc.cache.invalidate(ctx, CacheKeyAllPosts)

	post, err := uc.postRepo.FindByID(ctx, created.ID)
	if err != nil {
		log.Error(ctx, msgErrReloadingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingPost, err)
	}

	log.Info(ctx, msgPostCreated, zap.String("postID", post.ID))
	return post, nil
}

// Update меняет непустые поля patch, если requesterID - автор поста.
func (uc *BlogUseCaseImpl) Update(
	ctx context.Context,
	requesterID, id string,
	patch entities.PostPatch,
) (*entities.Post, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdate),
		zap.String("userID", requesterID),
		zap.String("postID", id),
	)

	post, err := uc.ownedPost(ctx, log, requesterID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingPost, err)
	}

	if title := strings.TrimSpace(patch.Title); title != "" {
		post.Title = title
	}
	if strings.TrimSpace(patch.Content) != "" {
		post.Content = patch.Content
	}

	updated, err := uc.postRepo.Update(ctx, post)
	if err != nil {
		log.Error(ctx, msgErrUpdatingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingPost, err)
	}
	if updated.Author == nil {
		updated.Author = post.Author
	}
	uc.cache.invalidate(ctx, PostCacheKey(id), CacheKeyAllPosts)

	log.Info(ctx, msgPostUpdated)
	return updated, nil
}

// Delete удаляет пост, если requesterID - его автор.
func (uc *BlogUseCaseImpl) Delete(ctx context.Context, requesterID, id string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDelete),
		zap.String("userID", requesterID),
		zap.String("postID", id),
	)

	if _, err := uc.ownedPost(ctx, log, requesterID, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingPost, err)
	}

	if err := uc.postRepo.Delete(ctx, id); err != nil {
		log.Error(ctx, msgErrDeletingPost, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingPost, err)
	}
	uc.cache.invalidate(ctx, PostCacheKey(id), CacheKeyAllPosts)

	log.Info(ctx, msgPostDeleted)
	return nil
}

// ownedPost читает пост из хранилища (не из кэша) и проверяет авторство.
func (uc *BlogUseCaseImpl) ownedPost(
	ctx context.Context,
	log *logger.Logger,
	requesterID, id string,
) (*entities.Post, error) {
	if !validPostID(id) {
		log.Debug(ctx, msgInvalidPostID)
		return nil, fmt.Errorf("%s: %w", errCtxFindingPost, entities.ErrPostNotFound)
	}

	post, err := uc.postRepo.FindByID(ctx, id)
	if err != nil {
		log.Debug(ctx, msgErrFindingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingPost, err)
	}

	if !post.IsAuthoredBy(requesterID) {
		log.Info(ctx, msgNotPostAuthor, zap.String("authorID", post.AuthorID))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingPost, entities.ErrNotPostAuthor)
	}
	return post, nil
}
