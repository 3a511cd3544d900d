package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bloghub/internal/blog/domain/entities"
	"bloghub/internal/blog/ports/repositories"
	"bloghub/pkg/logger"
)

const (
	postColumns = `id, author_id, title, content, created_at, updated_at`

	postWithAuthorSelect = `
        SELECT p.id, p.author_id, p.title, p.content, p.created_at, p.updated_at,
               u.name, u.email
        FROM posts p
        JOIN users u ON u.id = p.author_id`
)

// PostRepository реализует repositories.PostRepository для SQLite.
type PostRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostRepository создает репозиторий постов.
func NewPostRepository(db *sql.DB) repositories.PostRepository {
	return &PostRepository{db: db, now: time.Now}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*entities.Post, error) {
	var (
		p                  entities.Post
		created, updatedAt int64
	)
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &created, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = fromUnix(created)
	p.UpdatedAt = fromUnix(updatedAt)
	return &p, nil
}

func scanPostWithAuthor(row scanner) (*entities.Post, error) {
	var (
		p                  entities.Post
		created, updatedAt int64
		name, email        string
	)
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &created, &updatedAt, &name, &email); err != nil {
		return nil, err
	}
	p.CreatedAt = fromUnix(created)
	p.UpdatedAt = fromUnix(updatedAt)
	p.Author = &entities.Author{ID: p.AuthorID, Name: name, Email: email}
	return &p, nil
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]entities.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

	now := toUnix(r.now())
	created := &entities.Post{
		ID:        uuid.NewString(),
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: fromUnix(now),
		UpdatedAt: fromUnix(now),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, created.AuthorID, created.Title, created.Content, now, now)
	if err != nil {
		if isForeignKeyViolation(err) {
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

	post, err := scanPostWithAuthor(r.db.QueryRowContext(ctx, postWithAuthorSelect+` WHERE p.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	posts, err := r.list(ctx, postWithAuthorSelect+` ORDER BY p.created_at DESC, p.rowid DESC`)
	if err != nil {
		log.Error(ctx, "error listing posts", zap.Error(err))
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

// ListByAuthor возвращает посты автора, новые первыми.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "ListByAuthor"))

	query := postWithAuthorSelect + ` WHERE p.author_id = ? ORDER BY p.created_at DESC, p.rowid DESC`

	posts, err := r.list(ctx, query, authorID)
	if err != nil {
		log.Error(ctx, "error listing posts by author", zap.Error(err))
		return nil, fmt.Errorf("error listing posts by author: %w", err)
	}
	return posts, nil
}

// Update сохраняет заголовок и текст. updated_at не бывает меньше created_at.
func (r *PostRepository) Update(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "Update"))

	query := `
        UPDATE posts
        SET title = ?, content = ?, updated_at = MAX(?, created_at)
        WHERE id = ?
        RETURNING ` + postColumns

	updated, err := scanPost(r.db.QueryRowContext(ctx, query, post.Title, post.Content, toUnix(r.now()), post.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		log.Error(ctx, "error deleting post", zap.Error(err))
		return fmt.Errorf("error deleting post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if affected == 0 {
		log.Debug(ctx, "post not found for deletion", zap.String("id", id))
		return entities.ErrPostNotFound
	}
	return nil
}
