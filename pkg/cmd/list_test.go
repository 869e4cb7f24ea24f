package cmd

import (
	"testing"

	"github.com/pseudomuto/colsweep/pkg/cmd/testutil"
	"github.com/stretchr/testify/require"
)

func TestListCommand(t *testing.T) {
	dsn := shopDB(t)

	t.Run("tables only", func(t *testing.T) {
		output, err := testutil.RunCommand(t, list(listParams{}), []string{"--driver", "sqlite", "--dsn", dsn})
		require.NoError(t, err)
		require.Contains(t, output, "Tables (sqlite)")
		require.Contains(t, output, "  orders\n  users\n")
		require.Contains(t, output, "2 table(s)")
		require.NotContains(t, output, "big_orders")
	})

	t.Run("with views", func(t *testing.T) {
		output, err := testutil.RunCommand(t, list(listParams{}), []string{
			"--driver", "sqlite",
			"--dsn", dsn,
			"--include-views",
		})
		require.NoError(t, err)
		require.Contains(t, output, "  big_orders (view)\n")
		require.Contains(t, output, "3 table(s)")
	})

	t.Run("forced dialect", func(t *testing.T) {
		output, err := testutil.RunCommand(t, list(listParams{}), []string{
			"--driver", "sqlite",
			"--dsn", dsn,
			"--dialect", "sqlite",
		})
		require.NoError(t, err)
		require.Contains(t, output, "Tables (sqlite)")
	})

	t.Run("missing dsn", func(t *testing.T) {
		_, err := testutil.RunCommand(t, list(listParams{}), []string{"--driver", "sqlite"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "dsn is required")
	})
}

func TestColumnsCommand(t *testing.T) {
	dsn := testutil.SQLiteDB(t,
		"CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT NOT NULL, status VARCHAR(20) DEFAULT 'active')",
	)

	output, err := testutil.RunCommand(t, columns(columnsParams{}), []string{"--driver", "sqlite", "--dsn", dsn, "users"})
	require.NoError(t, err)
	require.Contains(t, output, "Columns of users")
	require.Regexp(t, `email\s+TEXT\s+NO`, output)
	require.Regexp(t, `status\s+VARCHAR\(20\)\s+YES\s+'active'`, output)

	_, err = testutil.RunCommand(t, columns(columnsParams{}), []string{"--driver", "sqlite", "--dsn", dsn, "nope"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "table nope not found")

	_, err = testutil.RunCommand(t, columns(columnsParams{}), []string{"--driver", "sqlite", "--dsn", dsn})
	require.Error(t, err)
	require.Contains(t, err.Error(), "exactly one table name is required")
}
