package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type columnsParams struct {
	fx.In

	Config *config.Config `optional:"true"`
}

// columns creates the columns command, which prints the existing columns of
// one table.
//
// Example usage:
//
//	colsweep columns users
func columns(p columnsParams) *cli.Command {
	return &cli.Command{
		Name:      "columns",
		Usage:     "Show the columns of a table",
		ArgsUsage: "TABLE",
		Flags:     connectionFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one table name is required")
			}
			table := cmd.Args().First()

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

			cols, err := reader.Columns(ctx, table)
			if err != nil {
				return err
			}

			if len(cols) == 0 {
				return errors.Errorf("table %s not found or has no columns", table)
			}

			printHeader(cmd.Writer, fmt.Sprintf("Columns of %s", table))
			fmt.Fprintf(cmd.Writer, "%-24s %-24s %-8s %s\n", "NAME", "TYPE", "NULL", "DEFAULT")
			for _, c := range cols {
				nullable := "NO"
				if c.Nullable {
					nullable = "YES"
				}

				def := ""
				if c.Default != nil {
					def = *c.Default
				}

				fmt.Fprintf(cmd.Writer, "%-24s %-24s %-8s %s\n", c.Name, c.Type, nullable, def)
			}

			return nil
		},
	}
}
