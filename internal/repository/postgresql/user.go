package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, password_hash, name, created_at, updated_at`

func scanUser(row pgx.Row) (user.HRUser, error) {
	var u user.HRUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.HRUser{}, user.ErrUserNotFound
		}
		return user.HRUser{}, err
	}
	return u, nil
}

// GetByEmail implements user.UserRepository. Emails compare case-insensitively.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.HRUser, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM hr_users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return user.HRUser{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, err
}

// Upsert implements user.UserRepository.
func (r *userRepositoryImpl) Upsert(ctx context.Context, u user.HRUser) (user.HRUser, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hr_users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, name = EXCLUDED.name
		RETURNING ` + userColumns

	saved, err := scanUser(q.QueryRow(ctx, query, u.Email, u.PasswordHash, u.Name))
	if err != nil {
		return user.HRUser{}, fmt.Errorf("upsert user: %w", err)
	}
	return saved, nil
}
