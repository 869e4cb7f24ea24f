package column

import "strings"

// TypeClass is the coarse category of a column type expression.
type TypeClass int

const (
	// Other is a type no keyword matched (JSON, UUID, BLOB, ...).
	Other TypeClass = iota
	// Text covers CHAR, VARCHAR, TEXT and STRING types.
	Text
	// Temporal covers DATE, TIME, DATETIME and TIMESTAMP types.
	Temporal
	// Boolean covers BOOL and BOOLEAN.
	Boolean
	// Numeric covers integer, decimal and floating point types.
	Numeric
)

var (
	textKeywords     = []string{"CHAR", "TEXT", "VARCHAR", "STRING"}
	temporalKeywords = []string{"DATE", "TIME"}
	booleanKeywords  = []string{"BOOL"}
	numericKeywords  = []string{"INT", "DEC", "NUMERIC", "NUMBER", "FLOAT", "DOUBLE", "REAL", "SERIAL", "MONEY", "BIT"}
)

// Classify assigns a type expression to a TypeClass by case-insensitive
// substring match. Classes are tested in order Text, Temporal, Boolean,
// Numeric, so "DATETIME" is Temporal and "CHARACTER VARYING" is Text.
//
// This is a heuristic over type-name keywords, not a type system. Numeric and
// Other are formatted identically; the split only exists for reporting.
func Classify(typ string) TypeClass {
	upper := strings.ToUpper(typ)

	switch {
	case containsAny(upper, textKeywords):
		return Text
	case containsAny(upper, temporalKeywords):
		return Temporal
	case containsAny(upper, booleanKeywords):
		return Boolean
	case containsAny(upper, numericKeywords):
		return Numeric
	default:
		return Other
	}
}

func (c TypeClass) String() string {
	switch c {
	case Text:
		return "text"
	case Temporal:
		return "temporal"
	case Boolean:
		return "boolean"
	case Numeric:
		return "numeric"
	default:
		return "other"
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
