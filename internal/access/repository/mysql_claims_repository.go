package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/clinicapp/accessgate/internal/access/domain"
	apperrors "github.com/clinicapp/accessgate/internal/errors"
)

// ER_NO_REFERENCED_ROW_2
const mysqlForeignKeyViolation = 1452

// MySQLClaimsRepository stores role claims in MySQL. A claim can only be attached to an
// existing user profile.
type MySQLClaimsRepository struct {
	db *sql.DB
}

// SetRoleClaim upserts the role claim of subjectID.
func (m *MySQLClaimsRepository) SetRoleClaim(ctx context.Context, subjectID string, role domain.Role) error {

	query := `INSERT INTO identity_claims (subject_id, role, updated_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE role = VALUES(role), updated_at = VALUES(updated_at)`

	_, err := m.db.ExecContext(ctx, query, subjectID, string(role), time.Now().UTC())
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlForeignKeyViolation {
			return domain.ErrIdentityNotFound
		}
		return apperrors.Wrap(err, "failed to set role claim")
	}
	return nil
}

// GetRoleClaim returns the stored role of subjectID.
func (m *MySQLClaimsRepository) GetRoleClaim(ctx context.Context, subjectID string) (domain.Role, error) {

	query := "SELECT role FROM identity_claims WHERE subject_id = ?"

	var role string
	if err := m.db.QueryRowContext(ctx, query, subjectID).Scan(&role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrIdentityNotFound
		}
		return "", apperrors.Wrap(err, "failed to get role claim")
	}
	return domain.Role(role), nil
}

// NewMySQLClaimsRepository creates a new MySQL claims repository.
func NewMySQLClaimsRepository(db *sql.DB) *MySQLClaimsRepository {
	return &MySQLClaimsRepository{db: db}
}
