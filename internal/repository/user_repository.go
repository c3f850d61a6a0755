package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dojoroom/room-booking/internal/model"
	"github.com/dojoroom/room-booking/internal/utils"
)

// UserRepo persists accounts in the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES (?,?)",
		email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
