package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type (
	// Definition is a parsed column definition.
	Definition struct {
		Pos lexer.Position

		Name        string        `parser:"@(Ident | QuotedIdent)"`
		Type        []string      `parser:"@(~('NOT' | 'NULL' | 'DEFAULT' | 'COMMENT'))+"`
		Constraints []*Constraint `parser:"@@*"`
	}

	// Constraint is one of the clauses that may follow the type.
	Constraint struct {
		NotNull bool    `parser:"  @('NOT' 'NULL')"`
		Null    bool    `parser:"| @'NULL'"`
		Default *Value  `parser:"| 'DEFAULT' @@"`
		Comment *string `parser:"| 'COMMENT' @String"`
	}

	// Value is a DEFAULT value: a string literal, a (possibly signed) number,
	// or a keyword/function call like CURRENT_TIMESTAMP or now().
	Value struct {
		String *string `parser:"  @String"`
		Number *string `parser:"| @('-'? Number)"`
		Call   *string `parser:"| @(Ident ('(' ')')?)"`
	}
)

// ColumnName returns the name with any identifier quoting removed.
func (d *Definition) ColumnName() string {
	return unquoteIdent(d.Name)
}

// TypeExpr returns the type tokens joined back into a type expression.
// Whitespace is normalized: none around parentheses and brackets, one space
// after commas, and one space between words.
func (d *Definition) TypeExpr() string {
	var b strings.Builder
	for i, tok := range d.Type {
		if i > 0 && needsSpace(d.Type[i-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}

// Raw returns the value as it should be handed to column.WithDefault: string
// literals are unquoted, everything else is kept as written.
func (v *Value) Raw() string {
	switch {
	case v.String != nil:
		return unquoteString(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Call != nil:
		return *v.Call
	default:
		return ""
	}
}

func needsSpace(prev, cur string) bool {
	switch cur {
	case "(", ")", ",", "[", "]":
		return false
	}

	switch prev {
	case "(", "[":
		return false
	}

	return true
}

func unquoteIdent(name string) string {
	if len(name) < 2 {
		return name
	}

	switch first, last := name[0], name[len(name)-1]; {
	case first == '`' && last == '`', first == '"' && last == '"', first == '[' && last == ']':
		return name[1 : len(name)-1]
	default:
		return name
	}
}

func unquoteString(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, "''", "'")
}
