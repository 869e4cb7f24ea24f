// Package column models the column that colsweep adds to every target table.
//
// A Spec is built once with New and is immutable afterwards; every table in a
// run receives exactly the same definition. The type expression is opaque: it
// is passed through to the generated DDL untouched and only inspected by
// Classify, a keyword heuristic used to decide how default values are quoted.
//
// Example:
//
//	spec, err := column.New("created_at", "TIMESTAMP",
//		column.NotNull(),
//		column.WithDefault("CURRENT_TIMESTAMP"),
//		column.WithComment("row creation time"),
//	)
//	if err != nil {
//		log.Fatal(err) // errs.ConfigurationError
//	}
package column
