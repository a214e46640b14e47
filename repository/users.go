package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/librarium/data"
)

type users interface {
	RegisterUser(user *data.User) error
	GetUserByID(userID int64) (*data.User, error)
	GetUserByEmail(email string) (*data.User, error)
	UpdateUser(user *data.User) error
	DeleteUser(userID int64) error
	GetUserForToken(tokenScope, tokenPlaintext string) (*data.User, error)
}

// RegisterUser creates a new user record.
func (r *repository) RegisterUser(user *data.User) error {
	query := `
		INSERT INTO users (name, email, phone, city, profile_picture, role, two_factor_enabled, password_hash, activated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version`
	args := []interface{}{
		user.Name,
		user.Email,
		user.Phone,
		user.City,
		user.ProfilePicture,
		user.Role,
		user.TwoFactorEnabled,
		user.Password.Hash,
		user.Activated,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetUserByID retrieves a user record by its ID.
func (r *repository) GetUserByID(userID int64) (*data.User, error) {
	if userID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, name, email, phone, city, profile_picture, role, two_factor_enabled, password_hash, activated, version
		FROM users
		WHERE id = $1`
	var user data.User
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.City,
		&user.ProfilePicture,
		&user.Role,
		&user.TwoFactorEnabled,
		&user.Password.Hash,
		&user.Activated,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// GetUserByEmail retrieves a user record by its email address.
func (r *repository) GetUserByEmail(email string) (*data.User, error) {
	query := `
		SELECT id, created_at, name, email, phone, city, profile_picture, role, two_factor_enabled, password_hash, activated, version
		FROM users
		WHERE email = $1`
	var user data.User
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.City,
		&user.ProfilePicture,
		&user.Role,
		&user.TwoFactorEnabled,
		&user.Password.Hash,
		&user.Activated,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// UpdateUser updates a user record.
func (r *repository) UpdateUser(user *data.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, phone = $3, city = $4, profile_picture = $5, role = $6, two_factor_enabled = $7, password_hash = $8, activated = $9, version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version`
	args := []interface{}{
		user.Name,
		user.Email,
		user.Phone,
		user.City,
		user.ProfilePicture,
		user.Role,
		user.TwoFactorEnabled,
		user.Password.Hash,
		user.Activated,
		user.ID,
		user.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"`:
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteUser deletes a user record.
func (r *repository) DeleteUser(userID int64) error {
	if userID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM users
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetUserForToken retrieves the user record associated with an unexpired
// token of the given scope.
func (r *repository) GetUserForToken(tokenScope, tokenPlaintext string) (*data.User, error) {
	tokenHash := sha256.Sum256([]byte(tokenPlaintext))
	query := `
		SELECT users.id, users.created_at, users.name, users.email, users.phone, users.city, users.profile_picture, users.role, users.two_factor_enabled, users.password_hash, users.activated, users.version
		FROM users
		INNER JOIN tokens
		ON users.id = tokens.user_id
		WHERE tokens.hash = $1
		AND tokens.scope = $2
		AND tokens.expiry > $3`
	args := []interface{}{tokenHash[:], tokenScope, time.Now()}
	var user data.User
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.City,
		&user.ProfilePicture,
		&user.Role,
		&user.TwoFactorEnabled,
		&user.Password.Hash,
		&user.Activated,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}
