package dialect_test

import (
	"context"
	"database/sql"
	"testing"

	. "github.com/pseudomuto/colsweep/pkg/dialect"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input    string
		expected Tag
	}{
		{"mysql", TagMySQL},
		{"MySQL Community Server - GPL", TagMySQL},
		{"10.11.6-MariaDB-0+deb12u1", TagMySQL},
		{"PostgreSQL 16.2 on x86_64-pc-linux-gnu", TagPostgreSQL},
		{"pgx", TagPostgreSQL},
		{"postgres://app@localhost/shop", TagPostgreSQL},
		{"Oracle Database 19c Enterprise Edition", TagOracle},
		{"Microsoft SQL Server 2022 (RTM)", TagSQLServer},
		{"sqlserver://sa@localhost", TagSQLServer},
		{"SQLite 3.45.1", TagSQLite},
		{"clickhouse://default@localhost:9000", TagClickHouse},
		{"ansi-generic", TagGeneric},
		{"H2", TagGeneric},
		{"", TagGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, Resolve(tt.input).Tag())
		})
	}
}

func TestByTag(t *testing.T) {
	p, ok := ByTag("PostgreSQL")
	require.True(t, ok)
	require.Equal(t, TagPostgreSQL, p.Tag())

	_, ok = ByTag("db2")
	require.False(t, ok)

	require.Len(t, All(), 7)
}

func TestDetect(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	t.Run("hint wins", func(t *testing.T) {
		require.Equal(t, TagMySQL, Detect(ctx, db, "mysql").Tag())
	})

	t.Run("probes live connection", func(t *testing.T) {
		require.Equal(t, TagSQLite, Detect(ctx, db, "").Tag())
	})

	t.Run("falls back to generic", func(t *testing.T) {
		require.NoError(t, db.Close())
		require.Equal(t, TagGeneric, Detect(ctx, db, "h2").Tag())
	})
}

func TestIsSystemTable(t *testing.T) {
	tests := []struct {
		profile  Profile
		name     string
		expected bool
	}{
		{PostgreSQL, "pg_class", true},
		{PostgreSQL, "PG_STATISTIC", true},
		{PostgreSQL, "information_schema", true},
		{PostgreSQL, "users", false},
		{PostgreSQL, "page_views", false},
		{MySQL, "mysql", true},
		{MySQL, "performance_schema", true},
		{MySQL, "Sys", true},
		{MySQL, "system_events", false},
		{MySQL, "mysql_backups", false},
		{Oracle, "SYS_EXPORT_JOB", true},
		{Oracle, "BIN$pQ2x==$0", true},
		{Oracle, "SYSTEM_SETTINGS", false},
		{Oracle, "USER_PROFILES", false},
		{Oracle, "ORDERS", false},
		{SQLServer, "sysdiagrams", true},
		{SQLServer, "spt_values", true},
		{SQLServer, "synonyms", false},
		{SQLServer, "system_settings", false},
		{SQLServer, "orders", false},
		{SQLite, "sqlite_sequence", true},
		{SQLite, "orders", false},
		{ClickHouse, ".inner_id.1234", true},
		{ClickHouse, "system", true},
		{Generic, "pg_class", false},
	}

	for _, tt := range tests {
		t.Run(tt.profile.String()+"/"+tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.profile.IsSystemTable(tt.name))
		})
	}
}

func TestIsSystemSchema(t *testing.T) {
	tests := []struct {
		profile  Profile
		schema   string
		expected bool
	}{
		{PostgreSQL, "information_schema", true},
		{PostgreSQL, "pg_catalog", true},
		{PostgreSQL, "pg_temp_3", true},
		{PostgreSQL, "public", false},
		{PostgreSQL, "", false},
		{MySQL, "mysql", true},
		{MySQL, "SYS", true},
		{MySQL, "shop", false},
		{Oracle, "SYSTEM", true},
		{Oracle, "APP", false},
		{SQLServer, "sys", true},
		{SQLServer, "dbo", false},
		{ClickHouse, "system", true},
		{ClickHouse, "default", false},
		{Generic, "SYSIBM", true},
		{SQLite, "main", false},
	}

	for _, tt := range tests {
		t.Run(tt.profile.String()+"/"+tt.schema, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.profile.IsSystemSchema(tt.schema))
		})
	}
}

func TestColumnMatches(t *testing.T) {
	require.True(t, PostgreSQL.ColumnMatches("flag", "flag"))
	require.False(t, PostgreSQL.ColumnMatches("Flag", "flag"))

	require.True(t, MySQL.ColumnMatches("FLAG", "flag"))
	require.True(t, Oracle.ColumnMatches("FLAG", "flag"))
	require.False(t, Oracle.ColumnMatches("FLAGS", "flag"))
	require.True(t, Generic.ColumnMatches("Flag", "fLAG"))
}

func TestProfileAccessors(t *testing.T) {
	require.Equal(t, "?", MySQL.Placeholder(1))
	require.Equal(t, "$2", PostgreSQL.Placeholder(2))
	require.Equal(t, ":1", Oracle.Placeholder(1))
	require.Equal(t, "@p3", SQLServer.Placeholder(3))

	require.Equal(t, "`a`.`b`", MySQL.QualifiedName("a", "b"))
	require.Equal(t, "b", Oracle.QualifiedName("", "b"))
	require.Equal(t, "[b]", SQLServer.QuoteIdentifier("b"))

	require.True(t, PostgreSQL.TransactionalDDL())
	require.True(t, SQLite.TransactionalDDL())
	require.False(t, MySQL.TransactionalDDL())
	require.False(t, Oracle.TransactionalDDL())

	require.Equal(t, CommentInline, MySQL.CommentStyle())
	require.Equal(t, CommentStatement, PostgreSQL.CommentStyle())
	require.Equal(t, CommentUnsupported, SQLServer.CommentStyle())

	require.Equal(t, "SYSDATE", Oracle.Now())
	require.Equal(t, "TRUE", PostgreSQL.BooleanLiteral(true))
	require.Equal(t, "0", MySQL.BooleanLiteral(false))
}

func TestPreset(t *testing.T) {
	t.Run("updated_at on mysql", func(t *testing.T) {
		specs, err := MySQL.Preset(PresetUpdatedAt)
		require.NoError(t, err)
		require.Len(t, specs, 1)
		require.Equal(t,
			[]string{"ALTER TABLE `t` ADD COLUMN `updated_at` TIMESTAMP ON UPDATE CURRENT_TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"},
			MySQL.BuildStatements(specs[0], "", "t"),
		)
	})

	t.Run("updated_at elsewhere", func(t *testing.T) {
		specs, err := PostgreSQL.Preset(PresetUpdatedAt)
		require.NoError(t, err)
		require.Equal(t, "TIMESTAMP", specs[0].Type())
	})

	t.Run("deleted uses boolean type", func(t *testing.T) {
		tests := []struct {
			profile  Profile
			typ      string
			expected string
		}{
			{MySQL, "TINYINT(1)", "0"},
			{PostgreSQL, "BOOLEAN", "FALSE"},
			{Oracle, "NUMBER(1)", "0"},
			{SQLServer, "BIT", "0"},
			{ClickHouse, "Bool", "false"},
		}

		for _, tt := range tests {
			specs, err := tt.profile.Preset(PresetDeleted)
			require.NoError(t, err)
			require.Equal(t, tt.typ, specs[0].Type())
			require.Equal(t, tt.typ, tt.profile.BooleanType())

			def, ok := tt.profile.FormatDefault(specs[0])
			require.True(t, ok)
			require.Equal(t, tt.expected, def)
		}
	})

	t.Run("common", func(t *testing.T) {
		specs, err := Generic.Preset(PresetCommon)
		require.NoError(t, err)

		names := make([]string, 0, len(specs))
		for _, s := range specs {
			names = append(names, s.Name())
			require.False(t, s.Nullable())
		}
		require.Equal(t, []string{"created_at", "updated_at", "version", "deleted"}, names)
		require.Len(t, Presets(), 5)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Generic.Preset("archived")
		require.Error(t, err)
	})
}
