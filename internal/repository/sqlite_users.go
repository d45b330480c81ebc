package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/models"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteUserRepository stores users in the users table.
type SQLiteUserRepository struct {
	db *sqlx.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository.
func NewSQLiteUserRepository(db *sqlx.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts a new user with a fresh UUID.
func (r *SQLiteUserRepository) Create(ctx context.Context, user *models.User) error {
	id := uuid.New().String()
	const query = `INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, id, user.Username, user.Email, user.PasswordHash); err != nil {
		if dup := uniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return nil
}

// GetByUsername retrieves a user, including the password hash, by username.
func (r *SQLiteUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, username, email, password_hash FROM users WHERE username = ?`, username)
}

// GetByEmail retrieves a user, including the password hash, by email.
func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, username, email, password_hash FROM users WHERE email = ?`, email)
}

func (r *SQLiteUserRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// uniqueViolation maps a UNIQUE constraint failure on users to the matching
// duplicate error, or returns nil.
func uniqueViolation(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return nil
	}
	msg := se.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return common.ErrDuplicateUsername
	case strings.Contains(msg, "users.email"):
		return common.ErrDuplicateEmail
	}
	return nil
}
