// Package parser reads column definitions written the way they would appear
// inside a CREATE TABLE statement and turns them into column.Spec values.
//
// The grammar is deliberately small:
//
//	name TYPE [NOT NULL | NULL] [DEFAULT value] [COMMENT 'text']
//
// The name may be bare or quoted with backticks, double quotes or brackets.
// The type runs until the first constraint keyword and is kept as written
// (normalized whitespace), so engine-specific types such as
// Nullable(String), DECIMAL(10, 2) or TIMESTAMP WITH TIME ZONE pass through.
// Constraints may appear in any order. Keywords are case-insensitive.
//
// Example usage:
//
//	spec, err := parser.ParseDefinition("status VARCHAR(20) NOT NULL DEFAULT 'active'")
//	if err != nil {
//		log.Fatal(err) // errs.ConfigurationError
//	}
//
//	fmt.Println(spec.Name(), spec.Type()) // status VARCHAR(20)
package parser
