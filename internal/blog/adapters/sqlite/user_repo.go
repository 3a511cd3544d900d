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

const userColumns = `id, name, email, password_hash, created_at, updated_at`

// UserRepository реализует repositories.UserRepository для SQLite.
type UserRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(db *sql.DB) repositories.UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

func scanUser(row scanner) (*entities.User, error) {
	var (
		u                  entities.User
		created, updatedAt int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &created, &updatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = fromUnix(created)
	u.UpdatedAt = fromUnix(updatedAt)
	return &u, nil
}

// Create сохраняет пользователя. Повтор email дает ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	now := r.now().UTC()
	created := &entities.User{
		ID:           uuid.NewString(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    fromUnix(toUnix(now)),
		UpdatedAt:    fromUnix(toUnix(now)),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, created.Name, created.Email, created.PasswordHash, toUnix(now), toUnix(now))
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "email already exists", zap.String("email", user.Email))
			return nil, entities.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", `id = ?`, id)
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", `email = ?`, email)
}

func (r *UserRepository) findOne(ctx context.Context, method, where string, arg string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("key", arg))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user", zap.Error(err))
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return user, nil
}
