package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/models"
	"github.com/jmoiron/sqlx"
)

// SQLiteServiceRepository stores service records in the services table.
// Identifiers are UUID strings.
type SQLiteServiceRepository struct {
	db *sqlx.DB
}

// NewSQLiteServiceRepository creates a new SQLiteServiceRepository.
func NewSQLiteServiceRepository(db *sqlx.DB) *SQLiteServiceRepository {
	return &SQLiteServiceRepository{db: db}
}

func (r *SQLiteServiceRepository) Create(ctx context.Context, svc *models.Service) error {
	id := uuid.New().String()
	const query = `INSERT INTO services (id, owner, name, public_ip, private_ip) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, id, svc.Owner, svc.Name, svc.PublicIP, svc.PrivateIP); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	svc.ID = id
	return nil
}

// ListByOwner returns owner's services in insertion order.
func (r *SQLiteServiceRepository) ListByOwner(ctx context.Context, owner string) ([]models.Service, error) {
	services := []models.Service{}
	const query = `SELECT id, owner, name, public_ip, private_ip FROM services WHERE owner = ? ORDER BY rowid`
	if err := r.db.SelectContext(ctx, &services, query, owner); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// DeleteByOwner checks existence and ownership in the same statement, so a
// record owned by someone else is indistinguishable from a missing one.
func (r *SQLiteServiceRepository) DeleteByOwner(ctx context.Context, owner, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidIdentifier, id)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ? AND owner = ?`, parsed.String(), owner)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteServiceRepository) CountByOwner(ctx context.Context, owner string) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM services WHERE owner = ?`, owner); err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return count, nil
}
