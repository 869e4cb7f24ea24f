package dialect

import (
	"strings"

	"github.com/pseudomuto/colsweep/pkg/column"
	"github.com/pseudomuto/colsweep/pkg/utils"
)

// nowAliases are the default values treated as "the current timestamp"
// regardless of which engine they were written for.
var nowAliases = []string{"CURRENT_TIMESTAMP", "NOW()", "GETDATE()", "SYSDATE", "CURRENT_DATE"}

// FormatDefault renders the spec's default value as a literal for this
// profile. The second return value is false when the spec has no default.
//
// Rules, applied in order:
//   - a "now" alias (CURRENT_TIMESTAMP, NOW(), GETDATE(), SYSDATE,
//     CURRENT_DATE) becomes the profile's canonical spelling, unquoted
//   - text types are single-quoted with embedded quotes doubled
//   - temporal types are quoted unless the value looks like a function call
//   - boolean types map true/false to the profile's literals
//   - anything else is emitted verbatim
func (p Profile) FormatDefault(spec column.Spec) (string, bool) {
	value, ok := spec.Default()
	if !ok {
		return "", false
	}

	for _, alias := range nowAliases {
		if strings.EqualFold(value, alias) {
			return p.now, true
		}
	}

	switch spec.Class() {
	case column.Text:
		return utils.QuoteLiteral(value), true
	case column.Temporal:
		if strings.Contains(value, "(") {
			return value, true
		}
		return utils.QuoteLiteral(value), true
	case column.Boolean:
		if utils.IsBooleanValue(value) {
			return p.BooleanLiteral(strings.EqualFold(value, "true")), true
		}
		return value, true
	default:
		return value, true
	}
}

// BuildStatements returns the DDL that adds spec to schema.table: the ALTER
// statement and, for profiles that comment through a separate statement, a
// COMMENT ON COLUMN. Statements carry no trailing semicolon.
//
// Example (mysql):
//
//	ALTER TABLE `app`.`users` ADD COLUMN `flag` BOOLEAN NOT NULL DEFAULT 1 COMMENT 'feature flag'
//
// Example (postgresql):
//
//	ALTER TABLE "public"."users" ADD COLUMN "flag" BOOLEAN NOT NULL DEFAULT TRUE
//	COMMENT ON COLUMN "public"."users"."flag" IS 'feature flag'
func (p Profile) BuildStatements(spec column.Spec, schema, table string) []string {
	b := utils.NewSQLBuilder(p.quoter).
		Alter("TABLE").
		QualifiedName(schema, table).
		Raw(p.addKeyword).
		Name(spec.Name()).
		Raw(spec.Type())

	def, hasDefault := p.FormatDefault(spec)

	// Oracle only accepts DEFAULT ahead of inline constraints.
	if p.defaultFirst && hasDefault {
		b.Default(def)
	}

	if !spec.Nullable() {
		b.NotNull()
	}

	if !p.defaultFirst && hasDefault {
		b.Default(def)
	}

	comment, hasComment := spec.Comment()
	if hasComment && p.comments == CommentInline {
		b.Comment(comment)
	}

	statements := []string{b.String()}

	if hasComment && p.comments == CommentStatement {
		statements = append(statements, utils.NewSQLBuilder(p.quoter).
			CommentOn("COLUMN").
			ColumnPath(schema, table, spec.Name()).
			Is(comment).
			String())
	}

	return statements
}

// DropsComment reports whether spec carries a comment this profile cannot
// render.
func (p Profile) DropsComment(spec column.Spec) bool {
	_, ok := spec.Comment()
	return ok && p.comments == CommentUnsupported
}
