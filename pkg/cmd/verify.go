package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/catalog"
	"github.com/pseudomuto/colsweep/pkg/config"
	"github.com/pseudomuto/colsweep/pkg/executor"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type verifyParams struct {
	fx.In

	Config *config.Config `optional:"true"`
}

// verify creates the verify command, which checks that a column exists on
// every candidate table.
//
// Example usage:
//
//	# Confirm every table has created_at
//	colsweep verify --column created_at
//
//	# Check specific tables only
//	colsweep verify --column tenant_id --tables users,orders
func verify(p verifyParams) *cli.Command {
	flags := connectionFlags()
	flags = append(flags,
		&cli.StringFlag{
			Name:     "column",
			Usage:    "The column name to look for",
			Required: true,
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		tablesFlag(),
		includeViewsFlag(),
	)

	return &cli.Command{
		Name:  "verify",
		Usage: "Check that a column exists on every table",
		Description: `Re-read live column metadata for each table and report the tables that do
not have the column. Exits with an error when any table is missing it.`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := resolveConfig(cmd, p.Config)
			if err != nil {
				return err
			}

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			reader, err := openReader(ctx, db, cfg.Database.Schema)
			if err != nil {
				return err
			}

			tables := cfg.Migration.Tables
			if len(tables) == 0 {
				found, err := reader.ListTables(ctx, catalog.Options{IncludeViews: cfg.Migration.IncludeViews})
				if err != nil {
					return err
				}

				for _, t := range found {
					tables = append(tables, t.Name)
				}
			}

			printHeader(cmd.Writer, fmt.Sprintf("Verifying %s", cmd.String("column")))
			return printVerification(ctx, cmd, newExecutor(db, reader), cmd.String("column"), tables)
		},
	}
}

func printVerification(ctx context.Context, cmd *cli.Command, exec *executor.Executor, columnName string, tables []string) error {
	mismatches, err := exec.Verify(ctx, columnName, tables)
	if err != nil {
		return err
	}

	if len(mismatches) == 0 {
		fmt.Fprintf(cmd.Writer, "Verified %s on %d table(s)\n", columnName, len(tables))
		return nil
	}

	fmt.Fprintf(cmd.Writer, "Column %s is missing from %d of %d table(s):\n", columnName, len(mismatches), len(tables))
	for _, m := range mismatches {
		fmt.Fprintf(cmd.Writer, "  ✗ %s: %s\n", m.Table, m.Reason)
	}

	return errors.Errorf("verification failed for %d table(s)", len(mismatches))
}
