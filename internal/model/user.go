package model

import (
    "database/sql"
    "time"
)

// User represents a row in the `users` table.  Email and phone are both
// unique across all users and either one can identify an account during the
// password-reset flow.  ResetCode is non-NULL only while a reset is pending;
// its presence is the sole signal of the pending state.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address (stored lower-cased).
//  Phone        – unique phone number.
//  PasswordHash – bcrypt hashed password; never the plaintext value.
//  ResetCode    – pending 4-digit reset code, NULL when no reset is pending.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64         // users.id
    Email        string         // users.email
    Phone        string         // users.phone
    PasswordHash string         // users.password_hash
    ResetCode    sql.NullString // users.reset_code (CHAR(4), nullable)
    CreatedAt    time.Time      // users.created_at
    UpdatedAt    time.Time      // users.updated_at
}

// AccessToken models an entry in the `access_tokens` table.  Each bearer
// token belongs to a user; the serialized token itself is never stored, only
// its SHA-256 hash.  RevokedAt is set by logout and is NULL for live tokens.
// Several live tokens per user may coexist.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the serialized token.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type AccessToken struct {
    ID        uint64     // access_tokens.id
    UserID    uint64     // access_tokens.user_id
    TokenHash string     // access_tokens.token_hash
    ExpiresAt time.Time  // access_tokens.expires_at
    RevokedAt *time.Time // access_tokens.revoked_at (nullable)
    CreatedAt time.Time  // access_tokens.created_at
}
