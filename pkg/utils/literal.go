package utils

import "strings"

// QuoteLiteral wraps value in single quotes, doubling any embedded single
// quotes as the SQL standard requires.
//
// Examples:
//
//	active  -> 'active'
//	O'Brien -> 'O''Brien'
//	(empty) -> ''
func QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// IsBooleanValue checks if a string represents a boolean value.
// This is case-insensitive.
//
// Examples:
//   - "true" -> true
//   - "FALSE" -> true
//   - "1" -> false
//   - "yes" -> false
//   - "" -> false
func IsBooleanValue(value string) bool {
	lowered := strings.ToLower(value)
	return lowered == "true" || lowered == "false"
}
