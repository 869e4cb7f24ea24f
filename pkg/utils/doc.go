// Package utils provides common utility functions used throughout the colsweep codebase.
//
// # Identifier Utilities (identifier.go)
//
// Quoter wraps identifiers in a dialect's delimiters (backticks, double quotes,
// square brackets, or nothing at all) and escapes embedded delimiters:
//
//	q := utils.Quoter{Open: `"`, Close: `"`}
//	q.Quote("users")                     // "users"
//	q.QualifiedName("public", "users")   // "public"."users"
//
// # Literal Utilities (literal.go)
//
// QuoteLiteral produces standard SQL string literals by doubling embedded
// single quotes. IsBooleanValue recognizes true/false in any case.
//
// # SQL Builder (sqlbuilder.go)
//
// SQLBuilder assembles DDL fluently, leaving dialect decisions to the caller:
//
//	sql := utils.NewSQLBuilder(q).
//		Alter("TABLE").
//		QualifiedName("public", "users").
//		Raw("ADD COLUMN").
//		Name("flag").
//		Raw("BOOLEAN").
//		Default("TRUE").
//		String()
//	// ALTER TABLE "public"."users" ADD COLUMN "flag" BOOLEAN DEFAULT TRUE
package utils
