package executor

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pseudomuto/colsweep/pkg/column"
	"github.com/pseudomuto/colsweep/pkg/errs"
)

type (
	// Mode selects how a batch is applied.
	Mode string

	// Status is the terminal state of one table in a run.
	Status string

	// Outcome records what happened to one table.
	Outcome struct {
		// Table is the unqualified table name.
		Table string `json:"table" yaml:"table"`

		// Status is the terminal state for the table.
		Status Status `json:"status" yaml:"status"`

		// Reason explains a skip or carries the driver message of a failure,
		// verbatim.
		Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

		// Statements are the DDL statements built for the table. Empty for
		// skipped tables.
		Statements []string `json:"statements,omitempty" yaml:"statements,omitempty"`

		// Duration is the time spent on the table, including the guard check.
		Duration time.Duration `json:"duration" yaml:"duration"`
	}

	// Report is the account of one run. Outcomes are kept in processing order.
	Report struct {
		ID         uuid.UUID `json:"id" yaml:"id"`
		Column     string    `json:"column" yaml:"column"`
		Type       string    `json:"type" yaml:"type"`
		Dialect    string    `json:"dialect" yaml:"dialect"`
		Schema     string    `json:"schema,omitempty" yaml:"schema,omitempty"`
		Mode       Mode      `json:"mode" yaml:"mode"`
		DryRun     bool      `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
		StartedAt  time.Time `json:"started_at" yaml:"started_at"`
		FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
		Outcomes   []Outcome `json:"outcomes" yaml:"outcomes"`

		// RolledBack lists tables whose DDL succeeded inside a transaction that
		// was later rolled back.
		RolledBack []string `json:"rolled_back,omitempty" yaml:"rolled_back,omitempty"`

		// Unprocessed lists tables never reached because the run aborted.
		Unprocessed []string `json:"unprocessed,omitempty" yaml:"unprocessed,omitempty"`

		// Aborted is set when a transactional batch was rolled back or the run
		// was cancelled.
		Aborted bool `json:"aborted" yaml:"aborted"`
	}

	// Counts tallies outcomes by status.
	Counts struct {
		Applied int `json:"applied" yaml:"applied"`
		Skipped int `json:"skipped" yaml:"skipped"`
		Failed  int `json:"failed" yaml:"failed"`
		Planned int `json:"planned,omitempty" yaml:"planned,omitempty"`
	}

	// Mismatch is a table where verification did not find the column.
	Mismatch struct {
		Table  string `json:"table" yaml:"table"`
		Reason string `json:"reason" yaml:"reason"`
	}
)

const (
	// Transactional applies the whole batch in one transaction: all or nothing.
	Transactional Mode = "transactional"

	// Isolated applies each table on its own; failures don't affect other tables.
	Isolated Mode = "isolated"
)

const (
	// StatusApplied indicates the column was added.
	StatusApplied Status = "applied"

	// StatusSkipped indicates the column already existed.
	StatusSkipped Status = "skipped"

	// StatusFailed indicates the engine rejected the DDL.
	StatusFailed Status = "failed"

	// StatusPlanned indicates a dry run would have applied the DDL.
	StatusPlanned Status = "planned"
)

// ParseMode converts a mode name to a Mode. An empty name is Transactional.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Transactional:
		return Transactional, nil
	case Isolated:
		return Isolated, nil
	default:
		return "", errs.Configuration("unknown mode %q (want transactional or isolated)", s)
	}
}

func newReport(spec column.Spec, dialect, schema string, mode Mode, started time.Time) *Report {
	return &Report{
		ID:        uuid.New(),
		Column:    spec.Name(),
		Type:      spec.Type(),
		Dialect:   dialect,
		Schema:    schema,
		Mode:      mode,
		StartedAt: started,
		Outcomes:  []Outcome{},
	}
}

// Counts tallies the outcomes by status.
func (r *Report) Counts() Counts {
	var c Counts
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusApplied:
			c.Applied++
		case StatusSkipped:
			c.Skipped++
		case StatusFailed:
			c.Failed++
		case StatusPlanned:
			c.Planned++
		}
	}
	return c
}

// Applied returns the names of tables the column was added to.
func (r *Report) Applied() []string { return r.tables(StatusApplied) }

// Skipped returns the names of tables that already had the column.
func (r *Report) Skipped() []string { return r.tables(StatusSkipped) }

// Failed returns the names of tables whose DDL was rejected.
func (r *Report) Failed() []string { return r.tables(StatusFailed) }

// Planned returns the names of tables a dry run would alter.
func (r *Report) Planned() []string { return r.tables(StatusPlanned) }

// Total returns the number of recorded outcomes.
func (r *Report) Total() int { return len(r.Outcomes) }

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// Succeeded reports whether the run completed without failures.
func (r *Report) Succeeded() bool { return !r.Aborted && r.Counts().Failed == 0 }

func (r *Report) tables(status Status) []string {
	names := []string{}
	for _, o := range r.Outcomes {
		if o.Status == status {
			names = append(names, o.Table)
		}
	}
	return names
}
