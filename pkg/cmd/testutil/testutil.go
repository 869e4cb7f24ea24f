package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// SQLiteDB creates a SQLite database file in a temp dir, runs the setup
// statements against it and returns its path. The path is usable as the DSN of
// the sqlite driver.
//
// Example usage:
//
//	dsn := testutil.SQLiteDB(t,
//		"CREATE TABLE users (id INTEGER PRIMARY KEY)",
//		"CREATE VIEW active_users AS SELECT id FROM users",
//	)
func SQLiteDB(t *testing.T, statements ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "setup statement failed: %s", stmt)
	}

	return path
}

// ColumnNames returns the column names of table in the SQLite database at path.
func ColumnNames(t *testing.T, path, table string) []string {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows, err := db.Query("SELECT name FROM pragma_table_info(?)", table)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())

	return names
}
