package repository

import (
	"context"
	"database/sql"

	"github.com/clinicapp/accessgate/internal/access/domain"
	apperrors "github.com/clinicapp/accessgate/internal/errors"
)

// MySQLProfileRepository reads user profiles from MySQL.
type MySQLProfileRepository struct {
	db *sql.DB
}

// ListAll returns every profile ordered by creation time.
func (m *MySQLProfileRepository) ListAll(ctx context.Context) ([]*domain.Profile, error) {

	query := "SELECT id, display_name, email, rol FROM user_profiles ORDER BY created_at ASC, id ASC"

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user profiles")
	}
	defer func() { _ = rows.Close() }()

	return scanProfiles(rows)
}

// NewMySQLProfileRepository creates a new MySQL profile repository.
func NewMySQLProfileRepository(db *sql.DB) *MySQLProfileRepository {
	return &MySQLProfileRepository{db: db}
}
