package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/user-auth-service/internal/model"
)

const userColumns = "id,email,phone,password_hash,reset_code,created_at,updated_at"

// UserRepo is the credential store. It owns the `users` table and relies on
// the unique indexes on email and phone as the authority for uniqueness;
// any pre-checks done by callers are cosmetic and the insert itself decides.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with an already-hashed password and returns its ID.
// Duplicate-key violations are mapped to ErrEmailExists / ErrPhoneExists by
// inspecting which index the driver reports.
func (r *UserRepo) Create(ctx context.Context, email, phone, passwordHash string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, phone, password_hash) VALUES (?,?,?)",
		email, phone, passwordHash)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "phone") {
				return 0, ErrPhoneExists
			}
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
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &u.ResetCode, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByPhone fetches a user by phone number.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone=? LIMIT 1",
		strings.TrimSpace(phone)).Scan(&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &u.ResetCode, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByEmailOrPhone resolves an identifier that may be either an email or a
// phone number. The email match is tried first so that it wins if the same
// string could somehow match both columns.
func (r *UserRepo) GetByEmailOrPhone(ctx context.Context, identifier string) (model.User, error) {
	u, err := r.GetByEmail(ctx, identifier)
	if err == nil {
		return u, nil
	}
	if err != sql.ErrNoRows {
		return model.User{}, err
	}
	return r.GetByPhone(ctx, identifier)
}

// SetResetCode stores a pending 4-digit reset code on the user,
// overwriting any previous pending code. At most one reset is pending per
// user at any time.
func (r *UserRepo) SetResetCode(ctx context.Context, userID uint64, code string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET reset_code=?, updated_at=NOW() WHERE id=?",
		code, userID)
	return err
}

// ConsumeResetCode atomically swaps the password hash and clears the
// pending code, but only if the stored code still equals the supplied one.
// Matching in the WHERE clause means two concurrent resets with the same
// code cannot both succeed: the second sees zero rows affected and gets
// ErrInvalidResetCode. The same error covers a user with no pending reset.
func (r *UserRepo) ConsumeResetCode(ctx context.Context, userID uint64, code, newPasswordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, reset_code=NULL, updated_at=NOW() WHERE id=? AND reset_code=?",
		newPasswordHash, userID, code)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidResetCode
	}
	return nil
}
