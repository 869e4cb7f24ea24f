package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/column"
	"github.com/pseudomuto/colsweep/pkg/dialect"
	"github.com/urfave/cli/v3"
)

// types creates the types command, which lists common column types and the
// built-in presets as they would be rendered for a dialect. It needs no
// database connection.
//
// Example usage:
//
//	colsweep types
//	colsweep types --dialect mysql
func types() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "List common column types and presets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "Render presets for this dialect",
				Value: string(dialect.TagGeneric),
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			profile, ok := dialect.ByTag(cmd.String("dialect"))
			if !ok {
				tags := make([]string, 0, len(dialect.All()))
				for _, p := range dialect.All() {
					tags = append(tags, p.String())
				}
				return errors.Errorf("unknown dialect %q (want one of %s)", cmd.String("dialect"), strings.Join(tags, ", "))
			}

			printHeader(cmd.Writer, "Common column types")
			for _, typ := range column.CommonTypes() {
				fmt.Fprintf(cmd.Writer, "  %-20s %s\n", typ, column.Classify(typ))
			}

			fmt.Fprintln(cmd.Writer)
			printHeader(cmd.Writer, fmt.Sprintf("Presets (%s)", profile))
			for _, name := range dialect.Presets() {
				if name == dialect.PresetCommon {
					fmt.Fprintf(cmd.Writer, "%s: all of the above, in order\n", name)
					continue
				}

				specs, err := profile.Preset(name)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.Writer, "%s:\n", name)
				for _, spec := range specs {
					for _, stmt := range profile.BuildStatements(spec, "", "<table>") {
						fmt.Fprintf(cmd.Writer, "  %s;\n", stmt)
					}
				}
			}

			return nil
		},
	}
}
