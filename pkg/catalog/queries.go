package catalog

import (
	"fmt"

	"github.com/pseudomuto/colsweep/pkg/dialect"
)

// Every tables query returns (name, catalog, schema, kind) and every columns
// query returns (name, type, YES|NO, default, schema).

func currentSchemaQuery(p dialect.Profile) string {
	switch p.Tag() {
	case dialect.TagSQLite:
		return ""
	case dialect.TagOracle:
		return "SELECT " + currentSchemaExpr(p) + " FROM dual"
	case dialect.TagGeneric:
		return "SELECT CURRENT_SCHEMA"
	default:
		return "SELECT " + currentSchemaExpr(p)
	}
}

// currentSchemaExpr is the expression naming the session's schema, or empty
// when the dialect has no portable one.
func currentSchemaExpr(p dialect.Profile) string {
	switch p.Tag() {
	case dialect.TagMySQL:
		return "DATABASE()"
	case dialect.TagPostgreSQL:
		return "current_schema()"
	case dialect.TagSQLServer:
		return "SCHEMA_NAME()"
	case dialect.TagOracle:
		return "SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA')"
	case dialect.TagClickHouse:
		return "currentDatabase()"
	default:
		return ""
	}
}

// scope renders "<col> = <schema>" for the query built so far. An empty schema
// falls back to the session's current schema; the result is empty when the
// dialect cannot name it.
func scope(p dialect.Profile, col, schema string, args []any) (string, []any) {
	if schema != "" {
		args = append(args, schema)
		return col + " = " + p.Placeholder(len(args)), args
	}

	if expr := currentSchemaExpr(p); expr != "" {
		return col + " = " + expr, args
	}

	return "", args
}

func tablesQuery(p dialect.Profile, schema string) (string, []any) {
	switch p.Tag() {
	case dialect.TagOracle:
		tables, args := scope(p, "owner", schema, nil)
		views, args := scope(p, "owner", schema, args)
		return fmt.Sprintf(`SELECT table_name, '', owner, 'BASE TABLE' FROM all_tables WHERE %s
UNION ALL
SELECT view_name, '', owner, 'VIEW' FROM all_views WHERE %s
ORDER BY 1`, tables, views), args

	case dialect.TagSQLite:
		return `SELECT name, 'main', '', type FROM sqlite_master WHERE type IN ('table', 'view') ORDER BY name`, nil

	case dialect.TagClickHouse:
		where, args := scope(p, "database", schema, nil)
		return fmt.Sprintf(`SELECT name, database, database, engine FROM system.tables WHERE %s ORDER BY name`, where), args

	default:
		const base = `SELECT table_name, table_catalog, table_schema, table_type FROM information_schema.tables`

		where, args := scope(p, "table_schema", schema, nil)
		if where == "" {
			return base + ` ORDER BY table_schema, table_name`, nil
		}

		return base + ` WHERE ` + where + ` ORDER BY table_name`, args
	}
}

func columnsQuery(p dialect.Profile, schema, table string) (string, []any) {
	switch p.Tag() {
	case dialect.TagOracle:
		where, args := scope(p, "owner", schema, nil)
		args = append(args, table, table)
		return fmt.Sprintf(`SELECT column_name, data_type, CASE WHEN nullable = 'Y' THEN 'YES' ELSE 'NO' END, data_default, owner
FROM all_tab_columns WHERE %s AND (table_name = %s OR table_name = UPPER(%s))
ORDER BY column_id`, where, p.Placeholder(len(args)-1), p.Placeholder(len(args))), args

	case dialect.TagSQLite:
		return `SELECT name, type, CASE WHEN "notnull" = 0 THEN 'YES' ELSE 'NO' END, dflt_value, '' FROM pragma_table_info(?) ORDER BY cid`,
			[]any{table}

	case dialect.TagClickHouse:
		where, args := scope(p, "database", schema, nil)
		args = append(args, table)
		return fmt.Sprintf(`SELECT name, type, if(startsWith(type, 'Nullable'), 'YES', 'NO'), default_expression, database
FROM system.columns WHERE %s AND table = %s ORDER BY position`, where, p.Placeholder(len(args))), args

	default:
		const base = `SELECT column_name, data_type, is_nullable, column_default, table_schema FROM information_schema.columns`

		where, args := scope(p, "table_schema", schema, nil)
		args = append(args, table)
		if where == "" {
			return fmt.Sprintf(base+`
WHERE table_name = %s ORDER BY table_schema, ordinal_position`, p.Placeholder(len(args))), args
		}

		return fmt.Sprintf(base+`
WHERE %s AND table_name = %s ORDER BY ordinal_position`, where, p.Placeholder(len(args))), args
	}
}
