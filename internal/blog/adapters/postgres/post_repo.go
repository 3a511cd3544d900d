package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/ports/repositories"
	"bloghub/pkg/logger"
)

const (
	postColumns = `id::text, author_id::text, title, content, created_at, updated_at`

	postWithAuthorSelect = `
        SELECT p.id::text, p.author_id::text, p.title, p.content, p.created_at, p.updated_at,
               u.name, u.email
        FROM posts p
        JOIN users u ON u.id = p.author_id`
)

// PostRepository реализует repositories.PostRepository для Postgres.
type PostRepository struct {
	pool PgxPoolInterface
}

// NewPostRepository создает репозиторий постов.
func NewPostRepository(pool PgxPoolInterface) repositories.PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (*entities.Post, error) {
	var p entities.Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPostWithAuthor(row pgx.Row) (*entities.Post, error) {
	var (
		p     entities.Post
		name  string
		email string
	)
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt, &name, &email); err != nil {
		return nil, err
	}
	p.Author = &entities.Author{ID: p.AuthorID, Name: name, Email: email}
	return &p, nil
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]entities.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]entities.Post, 0)
	for rows.Next() {
		p, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// Create сохраняет пост. Несуществующий автор дает ErrUserNotFound.
func (r *PostRepository) Create(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "Create"))

	query := `
        INSERT INTO posts (author_id, title, content)
        VALUES ($1, $2, $3)
        RETURNING ` + postColumns

	created, err := scanPost(r.pool.QueryRow(ctx, query, post.AuthorID, post.Title, post.Content))
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			log.Debug(ctx, "author does not exist", zap.String("authorID", post.AuthorID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error creating post", zap.Error(err))
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return created, nil
}

// FindByID находит пост с автором.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "FindByID"))

	query := postWithAuthorSelect + ` WHERE p.id = $1`

	post, err := scanPostWithAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "post not found", zap.String("id", id))
			return nil, entities.ErrPostNotFound
		}
		log.Error(ctx, "error finding post by id", zap.Error(err))
		return nil, fmt.Errorf("error querying post by id: %w", err)
	}
	return post, nil
}

// ListAll возвращает все посты, новые первыми.
func (r *PostRepository) ListAll(ctx context.Context) ([]entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "ListAll"))

	posts, err := r.list(ctx, postWithAuthorSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		log.Error(ctx, "error listing posts", zap.Error(err))
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

// ListByAuthor возвращает посты автора, новые первыми.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "ListByAuthor"))

	query := postWithAuthorSelect + ` WHERE p.author_id = $1 ORDER BY p.created_at DESC`

	posts, err := r.list(ctx, query, authorID)
	if err != nil {
		log.Error(ctx, "error listing posts by author", zap.Error(err))
		return nil, fmt.Errorf("error listing posts by author: %w", err)
	}
	return posts, nil
}

// Update сохраняет заголовок и текст. Автор поста не меняется.
func (r *PostRepository) Update(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "Update"))

	query := `
        UPDATE posts
        SET title = $2, content = $3, updated_at = GREATEST(now(), created_at)
        WHERE id = $1
        RETURNING ` + postColumns

	updated, err := scanPost(r.pool.QueryRow(ctx, query, post.ID, post.Title, post.Content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "post not found for update", zap.String("id", post.ID))
			return nil, entities.ErrPostNotFound
		}
		log.Error(ctx, "error updating post", zap.Error(err))
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	updated.Author = post.Author
	return updated, nil
}

// Delete удаляет пост.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting post", zap.Error(err))
		return fmt.Errorf("error deleting post: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "post not found for deletion", zap.String("id", id))
		return entities.ErrPostNotFound
	}
	return nil
}
