package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/clinicapp/accessgate/internal/access/domain"
	apperrors "github.com/clinicapp/accessgate/internal/errors"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

// PostgreSQLClaimsRepository stores role claims in PostgreSQL. A claim can only be attached
// to an existing user profile.
type PostgreSQLClaimsRepository struct {
	db *sql.DB
}

// SetRoleClaim upserts the role claim of subjectID.
func (p *PostgreSQLClaimsRepository) SetRoleClaim(ctx context.Context, subjectID string, role domain.Role) error {

	query := `INSERT INTO identity_claims (subject_id, role, updated_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (subject_id)
			  DO UPDATE SET role = EXCLUDED.role, updated_at = EXCLUDED.updated_at`

	_, err := p.db.ExecContext(ctx, query, subjectID, string(role), time.Now().UTC())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return domain.ErrIdentityNotFound
		}
		return apperrors.Wrap(err, "failed to set role claim")
	}
	return nil
}

// GetRoleClaim returns the stored role of subjectID.
func (p *PostgreSQLClaimsRepository) GetRoleClaim(ctx context.Context, subjectID string) (domain.Role, error) {

	query := `SELECT role FROM identity_claims WHERE subject_id = $1`

	var role string
	if err := p.db.QueryRowContext(ctx, query, subjectID).Scan(&role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrIdentityNotFound
		}
		return "", apperrors.Wrap(err, "failed to get role claim")
	}
	return domain.Role(role), nil
}

// NewPostgreSQLClaimsRepository creates a new PostgreSQL claims repository.
func NewPostgreSQLClaimsRepository(db *sql.DB) *PostgreSQLClaimsRepository {
	return &PostgreSQLClaimsRepository{db: db}
}
