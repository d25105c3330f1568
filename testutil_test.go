package careers_test

import (
	"context"
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	careers "github.com/hirepage/careers"
)

const testSigningKey = "test-signing-key"

// setupDB opens an in-memory sqlite and applies the embedded schema so
// repository tests run against the same DDL production uses.
func setupDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	entries, err := fs.Glob(careers.GetMigrationsFS(), "data/sql/migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, name := range entries {
		raw, err := fs.ReadFile(careers.GetMigrationsFS(), name)
		require.NoError(t, err)

		for _, stmt := range strings.Split(string(raw), "--bun:split") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			_, err = db.Exec(stmt)
			require.NoError(t, err)
		}
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

type testEnv struct {
	db     *bun.DB
	repo   careers.RepositoryManager
	tokens careers.TokenService
	auther *careers.Auther
	store  *careers.TenantStore
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupDB(t)
	repo := careers.NewRepositoryManager(db)
	repo.MustValidate()

	tokens := careers.NewTokenService([]byte(testSigningKey), 1, "careers", nil, nil)
	auther := careers.NewAuthenticator(repo, tokens)
	guard := careers.NewOwnershipGuard(db)
	store := careers.NewTenantStore(repo, guard)

	return &testEnv{
		db:     db,
		repo:   repo,
		tokens: tokens,
		auther: auther,
		store:  store,
	}
}

// registerTenant provisions a company with one recruiter account through the
// real registration flow.
func registerTenant(t *testing.T, env *testEnv, email, companyName string) *careers.AuthResult {
	t.Helper()

	result, err := env.auther.Register(context.Background(), careers.RegisterInput{
		Email:       email,
		Password:    "password123",
		CompanyName: companyName,
		FullName:    "Test Recruiter",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Account)
	require.NotNil(t, result.Company)
	require.NotEmpty(t, result.Token)

	return result
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
