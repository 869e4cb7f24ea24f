package executor_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/colsweep/pkg/column"
	"github.com/pseudomuto/colsweep/pkg/dialect"
	. "github.com/pseudomuto/colsweep/pkg/executor"
	"github.com/stretchr/testify/require"
	"modernc.org/sqlite"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction("current_schema", 0,
		func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
			return "public", nil
		})
}

// openMultiSchemaDB creates users and orders in the main database and an
// attached information_schema that also lists an archive schema and the
// engine's own tables.
func openMultiSchemaDB(t *testing.T) *sql.DB {
	t.Helper()

	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "shop.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	stmts := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY)`,
		`ATTACH DATABASE '` + filepath.Join(dir, "information_schema.db") + `' AS information_schema`,
		`CREATE TABLE information_schema.tables (table_name TEXT, table_catalog TEXT, table_schema TEXT, table_type TEXT)`,
		`CREATE TABLE information_schema.columns (
			table_name TEXT, column_name TEXT, data_type TEXT, is_nullable TEXT,
			column_default TEXT, table_schema TEXT, ordinal_position INTEGER
		)`,
		`INSERT INTO information_schema.tables VALUES
			('users', 'shop', 'public', 'BASE TABLE'),
			('orders', 'shop', 'public', 'BASE TABLE'),
			('orders', 'shop', 'archive', 'BASE TABLE'),
			('sql_features', 'shop', 'information_schema', 'BASE TABLE')`,
		`INSERT INTO information_schema.columns VALUES
			('users', 'id', 'integer', 'NO', NULL, 'public', 1),
			('orders', 'id', 'integer', 'NO', NULL, 'public', 1),
			('orders', 'flag', 'integer', 'YES', NULL, 'archive', 2)`,
	}

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return db
}

func TestAddColumnToAll_CurrentSchema(t *testing.T) {
	ctx := context.Background()

	for _, mode := range []Mode{Isolated, Transactional} {
		t.Run(string(mode), func(t *testing.T) {
			db := openMultiSchemaDB(t)
			spec, err := column.New("flag", "INTEGER")
			require.NoError(t, err)

			exec := New(Config{DB: db, Profile: dialect.PostgreSQL})
			report, err := exec.AddColumnToAll(ctx, spec, mode)
			require.NoError(t, err)
			require.Equal(t, []string{"orders", "users"}, report.Applied())
			require.Empty(t, report.Skipped())
			require.Empty(t, report.Failed())
			require.Equal(t, 2, report.Total())

			require.True(t, hasColumn(t, db, "orders", "flag"))
			require.True(t, hasColumn(t, db, "users", "flag"))
		})
	}
}
