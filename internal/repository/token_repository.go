package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dojoroom/room-booking/internal/model"
)

// TokenRepo persists and validates refresh tokens. Only the SHA-256 hash
// of a token is stored.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return err
}

// ValidateRefresh returns the owning user ID when a non-revoked,
// non-expired token with that hash exists; otherwise sql.ErrNoRows.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		t       model.RefreshToken
		revoked sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&t.ID, &t.UserID, &t.ExpiresAt, &revoked)
	if err != nil {
		return 0, err
	}
	if revoked.Valid {
		t.RevokedAt = &revoked.Time
	}
	if t.RevokedAt != nil || time.Now().UTC().After(t.ExpiresAt) {
		return 0, sql.ErrNoRows
	}
	return t.UserID, nil
}

// RevokeByHash marks a token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser revokes all of a user's active tokens. Backs the
// logout-all endpoint, which ends every session across devices.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}
