package model

import "time"

// User represents a row in the `users` table. Accounts are identified by
// email; the booking owner shown on the schedule is derived from the email
// local part (see utils.DisplayName), so two accounts that normalize to the
// same display name are indistinguishable on the schedule. That is an
// accepted limitation of the data model.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token never touches the database; only its SHA-256 hash is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
