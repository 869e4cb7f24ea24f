package cmd

import (
	"testing"

	"github.com/pseudomuto/colsweep/pkg/cmd/testutil"
	"github.com/stretchr/testify/require"
)

func TestVerifyCommand(t *testing.T) {
	dsn := testutil.SQLiteDB(t,
		"CREATE TABLE users (id INTEGER PRIMARY KEY, tenant_id INTEGER)",
		"CREATE TABLE orders (id INTEGER PRIMARY KEY, tenant_id INTEGER)",
		"CREATE TABLE audit (id INTEGER PRIMARY KEY)",
	)

	t.Run("all tables", func(t *testing.T) {
		output, err := testutil.RunCommand(t, verify(verifyParams{}), []string{
			"--driver", "sqlite",
			"--dsn", dsn,
			"--column", "tenant_id",
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "verification failed for 1 table(s)")
		require.Contains(t, output, "Column tenant_id is missing from 1 of 3 table(s)")
		require.Contains(t, output, "  ✗ audit: column tenant_id not found")
	})

	t.Run("selected tables", func(t *testing.T) {
		output, err := testutil.RunCommand(t, verify(verifyParams{}), []string{
			"--driver", "sqlite",
			"--dsn", dsn,
			"--column", "tenant_id",
			"--tables", "users,orders",
		})
		require.NoError(t, err)
		require.Contains(t, output, "Verified tenant_id on 2 table(s)")
	})

	t.Run("column is required", func(t *testing.T) {
		_, err := testutil.RunCommand(t, verify(verifyParams{}), []string{"--driver", "sqlite", "--dsn", dsn})
		require.Error(t, err)
	})
}
