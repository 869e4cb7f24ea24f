package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pseudomuto/colsweep/pkg/column"
	"github.com/pseudomuto/colsweep/pkg/errs"
)

var (
	definitionLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `'([^']|'')*'`},
		{Name: "QuotedIdent", Pattern: "`[^`]+`|\"[^\"]+\"|\\[[^\\]]+\\]"},
		{Name: "Number", Pattern: `\d+(\.\d+)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$]*`},
		{Name: "Punct", Pattern: `[(),\[\]=+\-.:]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	definitionParser = participle.MustBuild[Definition](
		participle.Lexer(definitionLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(2),
	)
)

// Parse parses a column definition into its syntax tree. Syntax errors are
// returned as errs.ConfigurationError.
func Parse(definition string) (*Definition, error) {
	def, err := definitionParser.ParseString("", definition)
	if err != nil {
		return nil, errs.Configuration("invalid column definition %q: %v", definition, err)
	}

	return def, nil
}

// ParseDefinition parses a column definition and builds the column.Spec it
// describes. Conflicting constraints (NULL together with NOT NULL, or two
// DEFAULT or COMMENT clauses) are rejected.
//
// Example usage:
//
//	spec, err := parser.ParseDefinition("flag BOOLEAN NOT NULL DEFAULT true COMMENT 'feature flag'")
func ParseDefinition(definition string) (column.Spec, error) {
	def, err := Parse(definition)
	if err != nil {
		return column.Spec{}, err
	}

	var (
		opts                   []column.Option
		sawNull, sawNotNull    bool
		sawDefault, sawComment bool
	)

	for _, c := range def.Constraints {
		switch {
		case c.NotNull:
			sawNotNull = true
		case c.Null:
			sawNull = true
		case c.Default != nil:
			if sawDefault {
				return column.Spec{}, errs.Configuration("column definition %q has more than one DEFAULT", definition)
			}
			sawDefault = true
			opts = append(opts, column.WithDefault(c.Default.Raw()))
		case c.Comment != nil:
			if sawComment {
				return column.Spec{}, errs.Configuration("column definition %q has more than one COMMENT", definition)
			}
			sawComment = true
			opts = append(opts, column.WithComment(unquoteString(*c.Comment)))
		}
	}

	if sawNull && sawNotNull {
		return column.Spec{}, errs.Configuration("column definition %q is both NULL and NOT NULL", definition)
	}

	opts = append(opts, column.Nullable(!sawNotNull))
	return column.New(def.ColumnName(), def.TypeExpr(), opts...)
}
