// Package repository is the credential store: user and service records
// behind narrow interfaces, with SQLite and MongoDB implementations.
package repository

import (
	"context"

	"github.com/isdelr/linkstart-be/internal/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts user and assigns its ID. A uniqueness violation is
	// reported as common.ErrDuplicateUsername or common.ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) error
	// GetByUsername returns common.ErrUserNotFound when no user matches.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByEmail returns common.ErrUserNotFound when no user matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ServiceRepository persists service records. Every read and delete is
// filtered by owner.
type ServiceRepository interface {
	// Create inserts svc and assigns its ID.
	Create(ctx context.Context, svc *models.Service) error
	ListByOwner(ctx context.Context, owner string) ([]models.Service, error)
	// DeleteByOwner removes the record matching both id and owner. It returns
	// common.ErrInvalidIdentifier for a malformed id and common.ErrNotFound
	// when nothing matched.
	DeleteByOwner(ctx context.Context, owner, id string) error
	CountByOwner(ctx context.Context, owner string) (int64, error)
}
