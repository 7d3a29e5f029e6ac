package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/store"
)

// postgresDSNEnv names the variable holding a disposable test database.
const postgresDSNEnv = "WORKFLOW_TEST_POSTGRES_DSN"

func TestPostgresStore_Contract(t *testing.T) {
	dsn := os.Getenv(postgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", postgresDSNEnv)
	}

	factory := func(t *testing.T) store.Store {
		ctx := context.Background()
		pool, err := pgxpool.New(ctx, dsn)
		require.NoError(t, err)

		s := store.NewPostgresStore(pool)
		require.NoError(t, s.DropSchema(ctx))
		require.NoError(t, s.CreateSchema(ctx))
		return s
	}
	storeContractTest(t, "PostgresStore", factory)
}
