package executor

import (
	"context"
	"time"
)

// Verify re-reads live metadata for each table and returns a Mismatch for
// every table that does not have the column. It is normally called with
// Report.Applied().
func (e *Executor) Verify(ctx context.Context, columnName string, tables []string) ([]Mismatch, error) {
	reader := e.reader(e.db)
	mismatches := []Mismatch{}

	for _, table := range tables {
		exists, err := reader.ColumnExists(ctx, table, columnName)
		if err != nil {
			return nil, err
		}

		if !exists {
			e.logger.Warn("Column missing after run", "table", table, "column", columnName)
			mismatches = append(mismatches, Mismatch{
				Table:  table,
				Reason: "column " + columnName + " not found",
			})
		}
	}

	return mismatches, nil
}

// plan runs the guard for each table and records the statements that would be
// executed, without executing them.
func (e *Executor) plan(ctx context.Context, targets []string, req Request, report *Report) error {
	reader := e.reader(e.db)

	for _, table := range targets {
		start := time.Now()

		exists, err := reader.ColumnExists(ctx, table, req.Spec.Name())
		if err != nil {
			return err
		}

		outcome := Outcome{Table: table, Status: StatusPlanned}
		if exists {
			outcome.Status = StatusSkipped
			outcome.Reason = "column " + req.Spec.Name() + " already exists"
		} else {
			outcome.Statements = e.profile.BuildStatements(req.Spec, e.schema, table)
		}
		outcome.Duration = time.Since(start)

		e.record(report, outcome, req.Observer)
	}

	return nil
}
