package utils

import "strings"

// Quoter wraps SQL identifiers in a dialect's delimiters. The zero value
// leaves identifiers bare, which is how dialects without quoting (Oracle,
// ANSI generic) render names.
//
// Examples:
//
//	Quoter{Open: "`", Close: "`"}.Quote("events")      // `events`
//	Quoter{Open: `"`, Close: `"`}.Quote("order")       // "order"
//	Quoter{Open: "[", Close: "]"}.Quote("dbo.users")   // [dbo.users]
//	Quoter{}.Quote("events")                           // events
type Quoter struct {
	Open  string
	Close string
}

// Quote adds delimiters around a single identifier. Occurrences of the closing
// delimiter inside the name are doubled. An identifier that is already wrapped
// in this quoter's delimiters is returned unchanged.
//
// Examples (backtick quoter):
//
//	table   -> `table`
//	`table` -> `table`
//	we`ird  -> `we``ird`
func (q Quoter) Quote(name string) string {
	if name == "" || q.Open == "" {
		return name
	}

	if q.IsQuoted(name) {
		return name
	}

	escaped := strings.ReplaceAll(name, q.Close, q.Close+q.Close)
	return q.Open + escaped + q.Close
}

// QualifiedName formats schema.name, quoting each part. If schema is empty only
// the name is quoted.
//
// Examples:
//   - ("analytics", "events") -> "`analytics`.`events`"
//   - ("", "events") -> "`events`"
func (q Quoter) QualifiedName(schema, name string) string {
	if schema != "" {
		return q.Quote(schema) + "." + q.Quote(name)
	}
	return q.Quote(name)
}

// IsQuoted reports whether s is a single identifier wrapped in this quoter's
// delimiters.
//
// Examples:
//   - "`table`" -> true
//   - "table" -> false
//   - "`db`.`table`" -> false (qualified name, not a single identifier)
func (q Quoter) IsQuoted(s string) bool {
	if q.Open == "" || len(s) < len(q.Open)+len(q.Close) {
		return false
	}

	if !strings.HasPrefix(s, q.Open) || !strings.HasSuffix(s, q.Close) {
		return false
	}

	inner := s[len(q.Open) : len(s)-len(q.Close)]
	return !strings.Contains(strings.ReplaceAll(inner, q.Close+q.Close, ""), q.Close)
}

// Unquote strips this quoter's delimiters from a single quoted identifier and
// collapses doubled closing delimiters. Other input is returned unchanged.
func (q Quoter) Unquote(s string) string {
	if !q.IsQuoted(s) {
		return s
	}

	inner := s[len(q.Open) : len(s)-len(q.Close)]
	return strings.ReplaceAll(inner, q.Close+q.Close, q.Close)
}
