package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/column"
	"github.com/pseudomuto/colsweep/pkg/config"
	"github.com/pseudomuto/colsweep/pkg/dialect"
	"github.com/pseudomuto/colsweep/pkg/executor"
	"github.com/pseudomuto/colsweep/pkg/report"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type addParams struct {
	fx.In

	Config *config.Config `optional:"true"`
}

// add creates the add command, which adds one column (or a preset's columns)
// to every candidate table.
//
// Command flags:
//   - --preset: a built-in column (created_at, updated_at, version, deleted, common)
//   - --definition: a full column definition
//   - --name/--type/--not-null/--default/--comment: the column, piece by piece
//   - --mode: transactional (default) or isolated
//   - --tables, -t: limit the run to these tables
//   - --include-views: treat views as candidates
//   - --dry-run: show the DDL that would run without executing it
//   - --verify: re-read the catalog afterwards and confirm the column exists
//   - --report-dir/--format: write the report to a file
//
// Example usage:
//
//	# Add a soft-delete flag to every table, all or nothing
//	colsweep add --driver postgres --dsn "$DATABASE_URL" \
//	  --definition "deleted BOOLEAN NOT NULL DEFAULT false"
//
//	# Add audit columns table by table and keep a JSON report
//	colsweep add --preset common --mode isolated --report-dir reports --format json
//
//	# Preview the DDL for two tables
//	colsweep add --preset created_at --tables users,orders --dry-run
func add(p addParams) *cli.Command {
	flags := connectionFlags()
	flags = append(flags,
		&cli.StringFlag{
			Name:  "preset",
			Usage: "Built-in column: " + strings.Join(dialect.Presets(), ", "),
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:  "definition",
			Usage: `Column definition, e.g. "flag BOOLEAN NOT NULL DEFAULT false COMMENT 'feature flag'"`,
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "Column name (with --type)",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "Column type expression, passed to the database verbatim",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.BoolFlag{
			Name:  "not-null",
			Usage: "Declare the column NOT NULL",
		},
		&cli.StringFlag{
			Name:  "default",
			Usage: "Default value, quoted as the column type requires",
		},
		&cli.StringFlag{
			Name:  "comment",
			Usage: "Column comment (dropped by dialects without column comments)",
		},
		&cli.StringFlag{
			Name:  "mode",
			Usage: "transactional (all or nothing) or isolated (table by table)",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		tablesFlag(),
		includeViewsFlag(),
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Show what would be executed without applying changes",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "verify",
			Usage: "Confirm the column exists on every applied table afterwards",
		},
		&cli.StringFlag{
			Name:  "report-dir",
			Usage: "Write the run report to this directory",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Report file format: text, yaml or json",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	)

	return &cli.Command{
		Name:  "add",
		Usage: "Add a column to every table",
		Description: `Add one column definition to every table in the target schema.

Tables that already have the column are skipped, system tables are never
touched. In transactional mode (the default) the whole batch is rolled back
when one table fails; note that MySQL, Oracle and ClickHouse commit DDL
implicitly, so earlier tables cannot be rolled back there. In isolated mode
each table succeeds or fails on its own.

The column comes from --preset, --definition or --name/--type, or from the
column section of colsweep.yaml when no column flag is given.`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := resolveConfig(cmd, p.Config)
			if err != nil {
				return err
			}

			return runAdd(ctx, cmd, cfg, cmd.Bool("dry-run"), cmd.Bool("verify"))
		},
	}
}

func runAdd(ctx context.Context, cmd *cli.Command, cfg *config.Config, dryRun, verify bool) error {
	mode, err := executor.ParseMode(cfg.Migration.Mode)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	specs, err := cfg.Column.Specs(db.Profile)
	if err != nil {
		return err
	}

	reader, err := openReader(ctx, db, cfg.Database.Schema)
	if err != nil {
		return err
	}

	exec := newExecutor(db, reader)

	failed := 0
	for _, spec := range specs {
		rep, err := addColumn(ctx, cmd, exec, cfg, spec, mode, dryRun)
		if rep == nil {
			return err
		}

		if cfg.Report.Dir != "" {
			path, werr := report.Write(cfg.Report.Dir, rep, format)
			if werr != nil {
				return werr
			}
			fmt.Fprintf(cmd.Writer, "Report written to %s\n", path)
		}

		if err != nil {
			return errors.Wrapf(err, "failed to add column %s", spec.Name())
		}

		failed += rep.Counts().Failed

		if verify && !dryRun {
			if err := printVerification(ctx, cmd, exec, spec.Name(), rep.Applied()); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return errors.Errorf("%d table(s) failed", failed)
	}

	return nil
}

func addColumn(
	ctx context.Context,
	cmd *cli.Command,
	exec *executor.Executor,
	cfg *config.Config,
	spec column.Spec,
	mode executor.Mode,
	dryRun bool,
) (*executor.Report, error) {
	title := fmt.Sprintf("Adding %s %s (%s)", spec.Name(), spec.Type(), mode)
	if dryRun {
		title = fmt.Sprintf("Dry run: showing DDL for %s %s", spec.Name(), spec.Type())
	}

	printHeader(cmd.Writer, title)

	rep, err := exec.Run(ctx, executor.Request{
		Spec:         spec,
		Tables:       cfg.Migration.Tables,
		Mode:         mode,
		IncludeViews: cfg.Migration.IncludeViews,
		DryRun:       dryRun,
		Observer:     printOutcome(cmd.Writer),
	})
	if rep == nil {
		return nil, err
	}

	fmt.Fprintln(cmd.Writer)
	if rerr := report.Render(cmd.Writer, rep, report.Text); rerr != nil {
		return nil, rerr
	}
	fmt.Fprintln(cmd.Writer)

	return rep, err
}
