package catalog

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/database"
	"github.com/pseudomuto/colsweep/pkg/dialect"
	"github.com/pseudomuto/colsweep/pkg/errs"
)

type (
	// Table describes one table found in the catalog. A new value is produced
	// on every read.
	Table struct {
		Name    string
		Schema  string
		Catalog string
		View    bool
	}

	// ColumnInfo describes one existing column.
	ColumnInfo struct {
		Name     string
		Type     string
		Nullable bool
		Default  *string
	}

	// Options controls ListTables.
	Options struct {
		// IncludeViews returns views alongside base tables.
		IncludeViews bool
	}

	// Reader queries live metadata through a session.
	Reader struct {
		session database.Session
		profile dialect.Profile
		schema  string
	}
)

// New creates a Reader for schema. An empty schema means the session's
// default (and is the only option for SQLite).
func New(session database.Session, profile dialect.Profile, schema string) *Reader {
	return &Reader{session: session, profile: profile, schema: schema}
}

// Open creates a Reader for the session's current schema.
func Open(ctx context.Context, session database.Session, profile dialect.Profile) (*Reader, error) {
	schema, err := CurrentSchema(ctx, session, profile)
	if err != nil {
		return nil, err
	}

	return New(session, profile, schema), nil
}

// CurrentSchema returns the schema (or database, for MySQL and ClickHouse) the
// session resolves unqualified names against.
func CurrentSchema(ctx context.Context, session database.Session, profile dialect.Profile) (string, error) {
	query := currentSchemaQuery(profile)
	if query == "" {
		return "", nil
	}

	var schema sql.NullString
	if err := session.QueryRowContext(ctx, query).Scan(&schema); err != nil {
		if profile.Tag() == dialect.TagGeneric {
			return "", nil
		}
		return "", errs.Metadata("current schema", err)
	}

	return schema.String, nil
}

// WithSession returns a copy of r that queries through s, typically an open
// transaction.
func (r *Reader) WithSession(s database.Session) *Reader {
	return &Reader{session: s, profile: r.profile, schema: r.schema}
}

// Schema returns the schema the reader is bound to.
func (r *Reader) Schema() string { return r.schema }

// Profile returns the dialect profile the reader applies.
func (r *Reader) Profile() dialect.Profile { return r.profile }

// ListTables returns the tables in the reader's schema, sorted by name, with
// duplicates and system tables removed. An empty schema reads the session's
// current schema; where the dialect cannot name it, every non-system schema is
// read and the first occurrence of a name wins. Views are excluded unless
// opts.IncludeViews is set. An empty result is not an error.
func (r *Reader) ListTables(ctx context.Context, opts Options) ([]Table, error) {
	query, args := tablesQuery(r.profile, r.schema)

	rows, err := r.session.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Metadata("list tables", err)
	}
	defer func() { _ = rows.Close() }()

	seen := make(map[string]struct{})
	tables := []Table{}

	for rows.Next() {
		var (
			name    string
			catalog sql.NullString
			schema  sql.NullString
			kind    sql.NullString
		)

		if err := rows.Scan(&name, &catalog, &schema, &kind); err != nil {
			return nil, errs.Metadata("list tables", err)
		}

		view := isView(kind.String)
		if view && !opts.IncludeViews {
			continue
		}

		if r.profile.IsSystemTable(name) || r.profile.IsSystemSchema(schema.String) {
			continue
		}

		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tables = append(tables, Table{
			Name:    name,
			Schema:  schema.String,
			Catalog: catalog.String,
			View:    view,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Metadata("list tables", err)
	}

	sort.SliceStable(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables, nil
}

// Columns lists the columns of table in declaration order. An unknown table
// yields an empty slice. Tables in system schemas are never read, and when the
// schema is unscoped only the first schema holding table is used.
func (r *Reader) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	query, args := columnsQuery(r.profile, r.schema, table)

	rows, err := r.session.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Metadata("list columns of "+table, err)
	}
	defer func() { _ = rows.Close() }()

	var (
		columns []ColumnInfo
		owner   string
		matched bool
	)

	for rows.Next() {
		var (
			col      ColumnInfo
			typ      sql.NullString
			nullable sql.NullString
			def      sql.NullString
			schema   sql.NullString
		)

		if err := rows.Scan(&col.Name, &typ, &nullable, &def, &schema); err != nil {
			return nil, errs.Metadata("list columns of "+table, err)
		}

		if r.profile.IsSystemSchema(schema.String) {
			continue
		}

		if !matched {
			owner, matched = schema.String, true
		} else if owner != schema.String {
			continue
		}

		col.Type = typ.String
		col.Nullable = strings.EqualFold(nullable.String, "YES")
		if def.Valid {
			col.Default = &def.String
		}

		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Metadata("list columns of "+table, err)
	}

	return columns, nil
}

// ColumnExists reports whether table already has a column called name. An
// exact match is tried first, then the profile's case-folding rule.
func (r *Reader) ColumnExists(ctx context.Context, table, name string) (bool, error) {
	columns, err := r.Columns(ctx, table)
	if err != nil {
		return false, errors.Wrapf(err, "failed to check column %s", name)
	}

	for _, col := range columns {
		if col.Name == name {
			return true, nil
		}
	}

	for _, col := range columns {
		if r.profile.ColumnMatches(col.Name, name) {
			return true, nil
		}
	}

	return false, nil
}

func isView(kind string) bool {
	k := strings.ToUpper(kind)
	return strings.Contains(k, "VIEW")
}
