// Package executor adds one column to many tables.
//
// The Executor walks the target tables in catalog order. For each one it asks
// the catalog whether the column already exists (the guard), builds the DDL
// through the dialect profile and sends it to the database. Every table ends
// in exactly one terminal state, recorded as an Outcome in the run's Report:
//
//	NotStarted -> Skipped
//	NotStarted -> Applying -> Applied | Failed
//
// # Modes
//
// Transactional runs hold one connection and one transaction for the whole
// batch. Tables whose DDL succeeded are pending until the commit; the first
// failure rolls everything back, so the report lists the failing table as
// Failed, the reverted tables in RolledBack and the tables never reached in
// Unprocessed. Engines that commit DDL implicitly (MySQL, Oracle, ClickHouse)
// cannot honour the rollback and a warning is logged before such a run.
//
// Isolated runs autocommit each table on the pool. A failure is recorded and
// the run continues with the next table.
//
// # Errors
//
// Configuration, connectivity and metadata errors abort the run without a
// report. DDL errors become Failed outcomes; in transactional mode the error
// is also returned alongside the aborted report.
//
// # Usage Example
//
//	exec := executor.New(executor.Config{DB: db.DB, Profile: db.Profile, Schema: "public"})
//
//	spec, _ := column.New("tenant_id", "BIGINT")
//	report, err := exec.Run(ctx, executor.Request{
//		Spec:   spec,
//		Tables: []string{"orders", "invoices"},
//		Mode:   executor.Isolated,
//		Observer: func(o executor.Outcome) {
//			fmt.Printf("%s: %s\n", o.Table, o.Status)
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mismatches, _ := exec.Verify(ctx, spec.Name(), report.Applied())
package executor
