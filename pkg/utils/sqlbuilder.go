package utils

import "strings"

// SQLBuilder provides a fluent interface for building DDL statements. It
// handles identifier quoting through a Quoter, literal escaping, and
// conditional clauses so the dialect code only decides what goes where.
//
// Example usage:
//
//	sql := NewSQLBuilder(Quoter{Open: "`", Close: "`"}).
//		Alter("TABLE").
//		QualifiedName("app", "users").
//		Raw("ADD COLUMN").
//		Name("flag").
//		Raw("TINYINT(1)").
//		NotNull().
//		Default("1").
//		Comment("feature flag").
//		String()
//	// Output: ALTER TABLE `app`.`users` ADD COLUMN `flag` TINYINT(1) NOT NULL DEFAULT 1 COMMENT 'feature flag'
type SQLBuilder struct {
	quoter Quoter
	parts  []string
}

// NewSQLBuilder creates a new SQLBuilder that quotes identifiers with q.
func NewSQLBuilder(q Quoter) *SQLBuilder {
	return &SQLBuilder{
		quoter: q,
		parts:  make([]string, 0, 10),
	}
}

// Alter adds an ALTER clause with the specified object type.
//
// Example:
//
//	builder.Alter("TABLE")   // ALTER TABLE
func (b *SQLBuilder) Alter(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "ALTER", objectType)
	return b
}

// CommentOn adds a COMMENT ON clause with the specified object type.
//
// Example:
//
//	builder.CommentOn("COLUMN")   // COMMENT ON COLUMN
func (b *SQLBuilder) CommentOn(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "COMMENT", "ON", objectType)
	return b
}

// Name adds a quoted identifier.
//
// Example:
//
//	builder.Name("flag")   // `flag`
func (b *SQLBuilder) Name(name string) *SQLBuilder {
	if name != "" {
		b.parts = append(b.parts, b.quoter.Quote(name))
	}
	return b
}

// QualifiedName adds a name with an optional schema prefix, each part quoted.
//
// Example:
//
//	builder.QualifiedName("", "events")            // `events`
//	builder.QualifiedName("analytics", "events")   // `analytics`.`events`
func (b *SQLBuilder) QualifiedName(schema, name string) *SQLBuilder {
	if qualified := b.quoter.QualifiedName(schema, name); qualified != "" {
		b.parts = append(b.parts, qualified)
	}
	return b
}

// ColumnPath adds schema.table.column, each part quoted, as used by
// COMMENT ON COLUMN.
//
// Example:
//
//	builder.ColumnPath("public", "users", "flag")   // "public"."users"."flag"
func (b *SQLBuilder) ColumnPath(schema, table, column string) *SQLBuilder {
	b.parts = append(b.parts, b.quoter.QualifiedName(schema, table)+"."+b.quoter.Quote(column))
	return b
}

// NotNull adds NOT NULL.
func (b *SQLBuilder) NotNull() *SQLBuilder {
	b.parts = append(b.parts, "NOT", "NULL")
	return b
}

// Default adds a DEFAULT clause with an already formatted expression.
//
// Example:
//
//	builder.Default("'active'")            // DEFAULT 'active'
//	builder.Default("CURRENT_TIMESTAMP")   // DEFAULT CURRENT_TIMESTAMP
//	builder.Default("")                    // (nothing added)
func (b *SQLBuilder) Default(expr string) *SQLBuilder {
	if expr != "" {
		b.parts = append(b.parts, "DEFAULT", expr)
	}
	return b
}

// Comment adds an inline COMMENT clause. The text is quoted and escaped.
//
// Example:
//
//	builder.Comment("user's flag")   // COMMENT 'user''s flag'
//	builder.Comment("")              // (nothing added)
func (b *SQLBuilder) Comment(comment string) *SQLBuilder {
	if comment != "" {
		b.parts = append(b.parts, "COMMENT", QuoteLiteral(comment))
	}
	return b
}

// Is adds an IS clause with a quoted, escaped literal, completing COMMENT ON.
//
// Example:
//
//	builder.Is("feature flag")   // IS 'feature flag'
func (b *SQLBuilder) Is(text string) *SQLBuilder {
	b.parts = append(b.parts, "IS", QuoteLiteral(text))
	return b
}

// Raw adds raw SQL text to the builder. Use sparingly for constructs that
// don't fit the fluent pattern, such as verbatim type expressions.
//
// Example:
//
//	builder.Raw("ADD COLUMN")   // ADD COLUMN
func (b *SQLBuilder) Raw(sql string) *SQLBuilder {
	if sql != "" {
		b.parts = append(b.parts, sql)
	}
	return b
}

// String builds and returns the statement without a trailing semicolon, which
// is the form database drivers expect (Oracle rejects the semicolon outright).
//
// Example:
//
//	sql := builder.Alter("TABLE").Name("t").Raw("ADD COLUMN").Name("c").Raw("INT").String()
//	// Returns: "ALTER TABLE `t` ADD COLUMN `c` INT"
func (b *SQLBuilder) String() string {
	return strings.Join(b.parts, " ")
}

// StringWithSemicolon builds and returns the statement terminated by a
// semicolon, for rendering scripts.
func (b *SQLBuilder) StringWithSemicolon() string {
	if len(b.parts) == 0 {
		return ""
	}
	return b.String() + ";"
}
