// Package repository implements persistence for the access module: the user-profile
// directory and the role claims store.
//
// Provides PostgreSQL and MySQL implementations over database/sql, one statement per call,
// plus a claims store backed by the identity provider's admin API.
package repository

import (
	"context"
	"database/sql"

	"github.com/clinicapp/accessgate/internal/access/domain"
	apperrors "github.com/clinicapp/accessgate/internal/errors"
)

// PostgreSQLProfileRepository reads user profiles from PostgreSQL.
type PostgreSQLProfileRepository struct {
	db *sql.DB
}

// ListAll returns every profile ordered by creation time.
func (p *PostgreSQLProfileRepository) ListAll(ctx context.Context) ([]*domain.Profile, error) {

	query := `SELECT id, display_name, email, rol
			  FROM user_profiles
			  ORDER BY created_at ASC, id ASC`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user profiles")
	}
	defer func() { _ = rows.Close() }()

	return scanProfiles(rows)
}

// NewPostgreSQLProfileRepository creates a new PostgreSQL profile repository.
func NewPostgreSQLProfileRepository(db *sql.DB) *PostgreSQLProfileRepository {
	return &PostgreSQLProfileRepository{db: db}
}

func scanProfiles(rows *sql.Rows) ([]*domain.Profile, error) {
	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		var profile domain.Profile
		var rol sql.NullString

		if err := rows.Scan(&profile.ID, &profile.DisplayName, &profile.Email, &rol); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user profile")
		}
		if rol.Valid {
			profile.Rol = &rol.String
		}
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user profiles")
	}

	return profiles, nil
}
