package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pseudomuto/colsweep/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the main colsweep CLI application with the given
// version and command-line arguments.
//
// The function creates a CLI application with:
//   - Global --dir flag for the working directory (where colsweep.yaml and
//     .env are looked up)
//   - Global --config flag naming the config file
//   - Command registration and routing
//   - Context propagation for cancellation support
//
// Example usage:
//
//	# List candidate tables using colsweep.yaml in the current directory
//	colsweep list
//
//	# Add a column using flags only
//	colsweep add --driver postgres --dsn "$DATABASE_URL" --definition "flag BOOLEAN NOT NULL DEFAULT false"
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "colsweep",
		Usage: "Add a column to every table in a database",
		Description: `colsweep adds one column definition to many tables at once. It reads the
catalog of the target database, skips tables that already have the column and
applies the DDL either as a single all-or-nothing batch or table by table.

MySQL, PostgreSQL, Oracle, SQL Server, SQLite and ClickHouse are supported,
with a generic ANSI fallback for anything else.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the working directory",
				Value:       ".",
				DefaultText: "Current directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the colsweep config file",
				Sources: cli.EnvVars("COLSWEEP_CONFIG"),
				Value:   consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, os.Chdir(cmd.String("dir"))
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}
