package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicapp/accessgate/internal/access/domain"
	"github.com/clinicapp/accessgate/internal/testutil"
)

type integrationCase struct {
	driver   string
	setup    func(t *testing.T) *sql.DB
	skip     func(t *testing.T)
	profiles func(db *sql.DB) profileLister
	claims   func(db *sql.DB) claimsRepository
}

func integrationCases() []integrationCase {
	return []integrationCase{
		{
			driver:   "postgres",
			setup:    testutil.SetupPostgresDB,
			skip:     testutil.SkipIfNoPostgres,
			profiles: func(db *sql.DB) profileLister { return NewPostgreSQLProfileRepository(db) },
			claims:   func(db *sql.DB) claimsRepository { return NewPostgreSQLClaimsRepository(db) },
		},
		{
			driver:   "mysql",
			setup:    testutil.SetupMySQLDB,
			skip:     testutil.SkipIfNoMySQL,
			profiles: func(db *sql.DB) profileLister { return NewMySQLProfileRepository(db) },
			claims:   func(db *sql.DB) claimsRepository { return NewMySQLClaimsRepository(db) },
		},
	}
}

func TestRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	for _, tc := range integrationCases() {
		t.Run(tc.driver, func(t *testing.T) {
			tc.skip(t)
			db := tc.setup(t)
			defer testutil.TeardownDB(t, db)
			defer testutil.CleanupDB(t, db)

			ctx := context.Background()
			testutil.CreateTestProfile(t, db, tc.driver, "u1", "ana@clinica.co", "ADMIN ")
			testutil.CreateTestProfile(t, db, tc.driver, "u2", "", "")

			profiles, err := tc.profiles(db).ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, profiles, 2)
			assert.Equal(t, "ADMIN ", profiles[0].RawRole())
			assert.Equal(t, "all", profiles[1].RawRole())

			claims := tc.claims(db)
			require.NoError(t, claims.SetRoleClaim(ctx, "u1", domain.RoleCoord))
			require.NoError(t, claims.SetRoleClaim(ctx, "u1", domain.RoleAdmin))

			role, err := claims.GetRoleClaim(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, domain.RoleAdmin, role)

			_, err = claims.GetRoleClaim(ctx, "u2")
			assert.ErrorIs(t, err, domain.ErrIdentityNotFound)

			err = claims.SetRoleClaim(ctx, "ghost", domain.RoleAll)
			assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
		})
	}
}

func TestClaimsRepository_Integration_FailedWriteKeepsEarlierWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupDB(t, db)

	ctx := context.Background()
	testutil.CreateTestProfile(t, db, "postgres", "u1", "ana@clinica.co", "coord")
	repo := NewPostgreSQLClaimsRepository(db)

	require.NoError(t, repo.SetRoleClaim(ctx, "u1", domain.RoleCoord))
	require.ErrorIs(t, repo.SetRoleClaim(ctx, "ghost", domain.RoleAll), domain.ErrIdentityNotFound)

	role, err := repo.GetRoleClaim(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoord, role)
}
