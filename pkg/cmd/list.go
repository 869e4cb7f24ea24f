package cmd

import (
	"context"
	"fmt"

	"github.com/pseudomuto/colsweep/pkg/catalog"
	"github.com/pseudomuto/colsweep/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type listParams struct {
	fx.In

	Config *config.Config `optional:"true"`
}

// list creates the list command, which prints the tables colsweep would
// operate on.
//
// Example usage:
//
//	colsweep list --driver mysql --dsn "app:secret@tcp(localhost:3306)/shop"
//	colsweep list --include-views
func list(p listParams) *cli.Command {
	flags := connectionFlags()
	flags = append(flags, includeViewsFlag())

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List candidate tables",
		Description: `List the tables in the target schema that colsweep would add a column to.
System tables are never listed. Views are listed only with --include-views.`,
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

			tables, err := reader.ListTables(ctx, catalog.Options{IncludeViews: cfg.Migration.IncludeViews})
			if err != nil {
				return err
			}

			title := fmt.Sprintf("Tables (%s)", db.Profile)
			if reader.Schema() != "" {
				title = fmt.Sprintf("Tables in %s (%s)", reader.Schema(), db.Profile)
			}
			printHeader(cmd.Writer, title)

			for _, t := range tables {
				if t.View {
					fmt.Fprintf(cmd.Writer, "  %s (view)\n", t.Name)
					continue
				}
				fmt.Fprintf(cmd.Writer, "  %s\n", t.Name)
			}

			fmt.Fprintf(cmd.Writer, "\n%d table(s)\n", len(tables))
			return nil
		},
	}
}
