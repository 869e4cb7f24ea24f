package executor

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/catalog"
	"github.com/pseudomuto/colsweep/pkg/column"
	"github.com/pseudomuto/colsweep/pkg/database"
	"github.com/pseudomuto/colsweep/pkg/dialect"
	"github.com/pseudomuto/colsweep/pkg/errs"
)

type (
	// DB is the connection pool the executor runs against. *sql.DB satisfies it.
	DB interface {
		database.Session
		Conn(ctx context.Context) (*sql.Conn, error)
	}

	// Observer is notified after each terminal outcome.
	Observer func(Outcome)

	// Executor adds a column to many tables.
	//
	// An Executor holds no per-run state, so one value may serve concurrent runs.
	// Each run processes its tables sequentially in catalog order and returns a
	// Report describing every table.
	//
	// Example usage:
	//
	//	exec := executor.New(executor.Config{
	//		DB:      db,
	//		Profile: dialect.PostgreSQL,
	//		Schema:  "public",
	//	})
	//
	//	spec, _ := column.New("archived", "BOOLEAN", column.NotNull(), column.WithDefault("false"))
	//	report, err := exec.AddColumnToAll(ctx, spec, executor.Isolated)
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//
	//	fmt.Printf("applied=%v skipped=%v failed=%v\n",
	//		report.Applied(), report.Skipped(), report.Failed())
	Executor struct {
		db      DB
		profile dialect.Profile
		schema  string
		logger  *slog.Logger
	}

	// Config contains configuration options for creating a new Executor.
	Config struct {
		// DB is the connection pool.
		DB DB

		// Profile is the dialect of the database behind DB.
		Profile dialect.Profile

		// Schema qualifies table names and scopes catalog reads. Empty means the
		// connection's default.
		Schema string

		// Logger receives progress messages. Defaults to slog.Default().
		Logger *slog.Logger
	}

	// Request describes one run.
	Request struct {
		// Spec is the column to add.
		Spec column.Spec

		// Tables restricts the run to the named tables. Empty means every table
		// in the catalog.
		Tables []string

		// Mode selects transactional or isolated application. Empty means
		// Transactional.
		Mode Mode

		// IncludeViews adds views to the catalog listing when Tables is empty.
		IncludeViews bool

		// DryRun builds statements and checks the guard without executing DDL.
		DryRun bool

		// Observer, when set, is called after each terminal outcome.
		Observer Observer
	}
)

// New creates an Executor with the provided configuration.
func New(cfg Config) *Executor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		db:      cfg.DB,
		profile: cfg.Profile,
		schema:  cfg.Schema,
		logger:  logger,
	}
}

// Profile returns the dialect profile the executor builds DDL for.
func (e *Executor) Profile() dialect.Profile { return e.profile }

// AddColumn adds spec to a single table, autocommitting. A system table yields
// a ConfigurationError; a rejected statement yields a Failed outcome.
func (e *Executor) AddColumn(ctx context.Context, table string, spec column.Spec) (Outcome, error) {
	if spec.IsZero() {
		return Outcome{}, errs.Configuration("column spec is required")
	}

	targets, err := e.explicitTargets([]string{table})
	if err != nil {
		return Outcome{}, err
	}

	return e.apply(ctx, e.reader(e.db), e.db, targets[0], spec)
}

// AddColumnToAll adds spec to every non-system base table in the catalog.
func (e *Executor) AddColumnToAll(ctx context.Context, spec column.Spec, mode Mode) (*Report, error) {
	return e.Run(ctx, Request{Spec: spec, Mode: mode})
}

// AddColumnToTables adds spec to the named tables. Duplicate names are applied
// once, in first-seen order.
func (e *Executor) AddColumnToTables(ctx context.Context, tables []string, spec column.Spec, mode Mode) (*Report, error) {
	if len(tables) == 0 {
		return nil, errs.Configuration("at least one table is required")
	}

	return e.Run(ctx, Request{Spec: spec, Tables: tables, Mode: mode})
}

// Run executes req and returns its Report.
//
// Configuration, connectivity and metadata errors are returned without a
// report. A DDL failure in transactional mode rolls the batch back and is
// returned together with the (aborted) report. In isolated mode DDL failures
// are recorded as Failed outcomes and the returned error is nil. Cancelling
// ctx aborts the run in either mode: the report lists what finished, what was
// rolled back and what was never reached, and the error wraps ctx.Err().
func (e *Executor) Run(ctx context.Context, req Request) (*Report, error) {
	if req.Spec.IsZero() {
		return nil, errs.Configuration("column spec is required")
	}

	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}

	targets, err := e.targets(ctx, req)
	if err != nil {
		return nil, err
	}

	report := newReport(req.Spec, e.profile.String(), e.schema, mode, time.Now())
	report.DryRun = req.DryRun

	logger := e.logger.With("run", report.ID.String(), "column", req.Spec.Name(), "mode", string(mode))
	logger.Info("Starting run", "tables", len(targets), "dialect", e.profile.String(), "dry_run", req.DryRun)

	if e.profile.DropsComment(req.Spec) {
		logger.Warn("Column comment is not supported by this dialect and will be dropped", "dialect", e.profile.String())
	}

	switch {
	case req.DryRun:
		err = e.plan(ctx, targets, req, report)
	case mode == Isolated:
		err = e.runIsolated(ctx, targets, req, report, logger)
	default:
		if !e.profile.TransactionalDDL() {
			logger.Warn("DDL is committed implicitly by this dialect; a failure cannot roll back earlier tables",
				"dialect", e.profile.String())
		}
		err = e.runTransactional(ctx, targets, req, report, logger)
	}

	report.FinishedAt = time.Now()

	if err != nil && !errs.IsDDLExecution(err) {
		if ctx.Err() == nil {
			return nil, err
		}

		cancelled(report, targets)
	}

	counts := report.Counts()
	logger.Info("Run finished",
		"applied", counts.Applied,
		"skipped", counts.Skipped,
		"failed", counts.Failed,
		"aborted", report.Aborted,
		"duration", report.Duration(),
	)

	return report, err
}

// cancelled marks report aborted and lists every target it holds no outcome
// for as unprocessed.
func cancelled(report *Report, targets []string) {
	done := make(map[string]struct{}, len(report.Outcomes)+len(report.RolledBack))
	for _, o := range report.Outcomes {
		done[o.Table] = struct{}{}
	}
	for _, t := range report.RolledBack {
		done[t] = struct{}{}
	}

	report.Unprocessed = []string{}
	for _, t := range targets {
		if _, ok := done[t]; !ok {
			report.Unprocessed = append(report.Unprocessed, t)
		}
	}

	report.Aborted = true
}

func (e *Executor) reader(s database.Session) *catalog.Reader {
	return catalog.New(s, e.profile, e.schema)
}

func (e *Executor) targets(ctx context.Context, req Request) ([]string, error) {
	if len(req.Tables) > 0 {
		return e.explicitTargets(req.Tables)
	}

	tables, err := e.reader(e.db).ListTables(ctx, catalog.Options{IncludeViews: req.IncludeViews})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	return names, nil
}

// explicitTargets trims and de-duplicates names and rejects system tables.
func (e *Executor) explicitTargets(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	targets := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if e.profile.IsSystemTable(name) {
			return nil, errs.Configuration("%s is a system table", name)
		}

		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		targets = append(targets, name)
	}

	if len(targets) == 0 {
		return nil, errs.Configuration("at least one table is required")
	}

	return targets, nil
}

// apply runs the guard and, when the column is missing, the DDL for one table
// through s. Only metadata errors are returned; DDL errors become a Failed
// outcome.
func (e *Executor) apply(ctx context.Context, reader *catalog.Reader, s database.Session, table string, spec column.Spec) (Outcome, error) {
	start := time.Now()

	exists, err := reader.ColumnExists(ctx, table, spec.Name())
	if err != nil {
		return Outcome{}, err
	}

	if exists {
		return Outcome{
			Table:    table,
			Status:   StatusSkipped,
			Reason:   "column " + spec.Name() + " already exists",
			Duration: time.Since(start),
		}, nil
	}

	statements := e.profile.BuildStatements(spec, e.schema, table)
	for _, stmt := range statements {
		e.logger.Debug("Executing statement", "table", table, "sql", stmt)

		if _, err := s.ExecContext(ctx, stmt); err != nil {
			return Outcome{
				Table:      table,
				Status:     StatusFailed,
				Reason:     err.Error(),
				Statements: statements,
				Duration:   time.Since(start),
			}, errs.DDLExecution(table, stmt, err)
		}
	}

	return Outcome{
		Table:      table,
		Status:     StatusApplied,
		Statements: statements,
		Duration:   time.Since(start),
	}, nil
}

func (e *Executor) runIsolated(ctx context.Context, targets []string, req Request, report *Report, logger *slog.Logger) error {
	reader := e.reader(e.db)

	for _, table := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		outcome, err := e.apply(ctx, reader, e.db, table, req.Spec)
		if err != nil && !errs.IsDDLExecution(err) {
			return err
		}

		if outcome.Status == StatusFailed {
			logger.Error("Failed to add column", "table", table, "error", outcome.Reason)
		} else {
			logger.Info("Processed table", "table", table, "status", string(outcome.Status))
		}

		e.record(report, outcome, req.Observer)
	}

	return nil
}

func (e *Executor) runTransactional(ctx context.Context, targets []string, req Request, report *Report, logger *slog.Logger) error {
	conn, err := e.db.Conn(ctx)
	if err != nil {
		return errs.Connectivity(err)
	}
	defer func() { _ = conn.Close() }()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return errs.Connectivity(err)
	}

	reader := e.reader(tx)

	// Outcomes are held back until commit; applied ones are pending until then.
	var buffered []Outcome

	// unwind rolls back and moves buffered outcomes into the report.
	unwind := func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Rollback failed", "error", rbErr)
		}

		for _, o := range buffered {
			if o.Status == StatusApplied {
				report.RolledBack = append(report.RolledBack, o.Table)
				continue
			}
			e.record(report, o, req.Observer)
		}
		buffered = nil
	}

	abort := func(failed Outcome, remaining []string) {
		unwind()

		e.record(report, failed, req.Observer)
		report.Unprocessed = append([]string{}, remaining...)
		report.Aborted = true

		logger.Error("Batch rolled back",
			"table", failed.Table,
			"error", failed.Reason,
			"rolled_back", len(report.RolledBack),
			"unprocessed", len(report.Unprocessed),
		)
	}

	for i, table := range targets {
		outcome, err := e.apply(ctx, reader, tx, table, req.Spec)
		if err != nil {
			if !errs.IsDDLExecution(err) {
				unwind()
				return err
			}

			abort(outcome, targets[i+1:])
			return err
		}

		logger.Debug("Processed table", "table", table, "status", string(outcome.Status))
		buffered = append(buffered, outcome)
	}

	if err := tx.Commit(); err != nil {
		last := -1
		for i, o := range buffered {
			if o.Status == StatusApplied {
				last = i
			}
		}

		if last < 0 {
			return errs.Connectivity(errors.Wrap(err, "failed to commit transaction"))
		}

		failed := buffered[last]
		failed.Status = StatusFailed
		failed.Reason = err.Error()
		buffered = append(buffered[:last], buffered[last+1:]...)

		abort(failed, nil)
		return errs.DDLExecution(failed.Table, "COMMIT", err)
	}

	for _, o := range buffered {
		e.record(report, o, req.Observer)
	}

	return nil
}

func (e *Executor) record(report *Report, outcome Outcome, observer Observer) {
	report.Outcomes = append(report.Outcomes, outcome)
	if observer != nil {
		observer(outcome)
	}
}
