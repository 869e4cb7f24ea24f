package dialect_test

import (
	"strings"
	"testing"

	"github.com/pseudomuto/colsweep/pkg/column"
	. "github.com/pseudomuto/colsweep/pkg/dialect"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

type target struct {
	schema string
	table  string
	spec   column.Spec
}

func mustSpec(t *testing.T, name, typ string, opts ...column.Option) column.Spec {
	t.Helper()

	spec, err := column.New(name, typ, opts...)
	require.NoError(t, err)
	return spec
}

func TestBuildStatementsGolden(t *testing.T) {
	targets := []target{
		{"app", "users", mustSpec(t, "flag", "BOOLEAN", column.NotNull(), column.WithDefault("true"), column.WithComment("feature flag"))},
		{"", "orders", mustSpec(t, "status", "VARCHAR(20)", column.WithDefault("it's active"))},
		{"", "orders", mustSpec(t, "created_at", "TIMESTAMP", column.WithDefault("now()"))},
		{"", "orders", mustSpec(t, "expires_on", "DATE", column.WithDefault("2030-01-01"))},
		{"", "orders", mustSpec(t, "qty", "INT", column.NotNull(), column.WithDefault("0"))},
	}

	for _, profile := range All() {
		t.Run(profile.String(), func(t *testing.T) {
			var buf strings.Builder
			for _, tgt := range targets {
				for _, stmt := range profile.BuildStatements(tgt.spec, tgt.schema, tgt.table) {
					require.NotContains(t, stmt, ";")
					buf.WriteString(stmt + ";\n")
				}
			}

			golden.Assert(t, buf.String(), profile.String()+".sql")
		})
	}
}

func TestFormatDefault(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		typ      string
		value    string
		expected string
	}{
		{"text is quoted", Generic, "VARCHAR(20)", "active", "'active'"},
		{"embedded quotes doubled", PostgreSQL, "TEXT", "O'Brien", "'O''Brien'"},
		{"mysql boolean true", MySQL, "BOOLEAN", "true", "1"},
		{"mysql boolean false", MySQL, "BOOLEAN", "FALSE", "0"},
		{"postgres boolean", PostgreSQL, "BOOLEAN", "true", "TRUE"},
		{"boolean non literal", PostgreSQL, "BOOL", "1", "1"},
		{"generic now", Generic, "TIMESTAMP", "CURRENT_TIMESTAMP", "CURRENT_TIMESTAMP"},
		{"now alias lower case", Oracle, "TIMESTAMP", "current_timestamp", "SYSDATE"},
		{"getdate to mysql", MySQL, "DATETIME", "GETDATE()", "CURRENT_TIMESTAMP"},
		{"sysdate to sqlserver", SQLServer, "DATETIME2", "sysdate", "GETDATE()"},
		{"current_date alias", ClickHouse, "DateTime", "CURRENT_DATE", "now()"},
		{"temporal literal", Generic, "DATE", "2024-01-01", "'2024-01-01'"},
		{"temporal function call", Generic, "DATE", "date('now')", "date('now')"},
		{"numeric verbatim", Generic, "DECIMAL(10,2)", "1.50", "1.50"},
		{"other verbatim", PostgreSQL, "JSONB", "'{}'::jsonb", "'{}'::jsonb"},
		{"text wins over temporal", Generic, "CHAR(10)", "2024", "'2024'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := mustSpec(t, "c", tt.typ, column.WithDefault(tt.value))

			got, ok := tt.profile.FormatDefault(spec)
			require.True(t, ok)
			require.Equal(t, tt.expected, got)
		})
	}

	t.Run("no default", func(t *testing.T) {
		_, ok := MySQL.FormatDefault(mustSpec(t, "c", "INT"))
		require.False(t, ok)
	})
}

func TestBuildStatements(t *testing.T) {
	t.Run("mysql boolean default", func(t *testing.T) {
		spec := mustSpec(t, "flag", "BOOLEAN", column.WithDefault("true"))
		stmts := MySQL.BuildStatements(spec, "", "t1")
		require.Equal(t, []string{"ALTER TABLE `t1` ADD COLUMN `flag` BOOLEAN DEFAULT 1"}, stmts)
	})

	t.Run("generic now unmodified", func(t *testing.T) {
		spec := mustSpec(t, "seen_at", "TIMESTAMP", column.WithDefault("CURRENT_TIMESTAMP"))
		stmts := Generic.BuildStatements(spec, "", "t1")
		require.Len(t, stmts, 1)
		require.Contains(t, stmts[0], "DEFAULT CURRENT_TIMESTAMP")
	})

	t.Run("text default", func(t *testing.T) {
		spec := mustSpec(t, "status", "VARCHAR(20)", column.WithDefault("active"))
		stmts := Generic.BuildStatements(spec, "", "t1")
		require.Contains(t, stmts[0], "DEFAULT 'active'")
	})

	t.Run("comment escaped", func(t *testing.T) {
		spec := mustSpec(t, "note", "TEXT", column.WithComment("user's note"))
		require.Equal(t,
			[]string{"ALTER TABLE `t1` ADD COLUMN `note` TEXT COMMENT 'user''s note'"},
			MySQL.BuildStatements(spec, "", "t1"),
		)

		stmts := PostgreSQL.BuildStatements(spec, "public", "t1")
		require.Equal(t, []string{
			`ALTER TABLE "public"."t1" ADD COLUMN "note" TEXT`,
			`COMMENT ON COLUMN "public"."t1"."note" IS 'user''s note'`,
		}, stmts)
	})

	t.Run("unsupported comment dropped", func(t *testing.T) {
		spec := mustSpec(t, "note", "TEXT", column.WithComment("ignored"))
		require.True(t, SQLServer.DropsComment(spec))
		require.False(t, MySQL.DropsComment(spec))
		require.Equal(t, []string{"ALTER TABLE [t1] ADD [note] TEXT"}, SQLServer.BuildStatements(spec, "", "t1"))
	})

	t.Run("identifiers with quotes", func(t *testing.T) {
		spec := mustSpec(t, `we"ird`, "INT")
		require.Equal(t,
			[]string{`ALTER TABLE "my""table" ADD COLUMN "we""ird" INT`},
			PostgreSQL.BuildStatements(spec, "", `my"table`),
		)
	})
}
