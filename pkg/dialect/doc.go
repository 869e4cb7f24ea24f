// Package dialect captures the DDL conventions of the database families
// colsweep can migrate.
//
// Each family is one Profile value from a closed set (MySQL, PostgreSQL,
// Oracle, SQLServer, Generic, plus SQLite and ClickHouse). A profile knows how
// to quote identifiers, which ADD keyword to use, where column comments go,
// how "now" and boolean defaults are spelled, which tables belong to the
// engine itself, and how the engine folds column-name case.
//
// A profile is resolved once per connection, either from a product string
// with Resolve or from a live connection with Detect, and then reused for
// every table in a run. Resolution never fails: unknown products get Generic.
//
// Example:
//
//	profile := dialect.Detect(ctx, db, "mysql")
//	for _, stmt := range profile.BuildStatements(spec, "app", "users") {
//		if _, err := db.ExecContext(ctx, stmt); err != nil {
//			return err
//		}
//	}
package dialect
