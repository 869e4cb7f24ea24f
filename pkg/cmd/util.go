package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/catalog"
	"github.com/pseudomuto/colsweep/pkg/config"
	"github.com/pseudomuto/colsweep/pkg/consts"
	"github.com/pseudomuto/colsweep/pkg/database"
	"github.com/pseudomuto/colsweep/pkg/executor"
	"github.com/urfave/cli/v3"
)

// connectionFlags returns the flags every database command accepts. Each
// overrides the matching value from the database section of colsweep.yaml.
func connectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "driver",
			Usage:   "Database driver (mysql, postgres, sqlite, clickhouse)",
			Sources: cli.EnvVars("COLSWEEP_DRIVER"),
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:    "dsn",
			Usage:   "Driver-specific connection string",
			Sources: cli.EnvVars("COLSWEEP_DSN"),
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:  "dialect",
			Usage: "Force a dialect (mysql, postgresql, oracle, sqlserver, sqlite, clickhouse, ansi-generic)",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:  "schema",
			Usage: "Schema to operate on (defaults to the connection's current schema)",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:  "cafile",
			Usage: "Certificate authority pem",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:  "certfile",
			Usage: "Certificate public key file",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:  "keyfile",
			Usage: "Certificate private key file",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	}
}

func tablesFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "tables",
		Aliases: []string{"t"},
		Usage:   "Only operate on these tables (comma separated or repeated)",
	}
}

func includeViewsFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "include-views",
		Usage: "Treat views as candidate tables",
	}
}

// resolveConfig returns the effective configuration for a command: the
// config file (when there is one) with command-line flags applied on top.
// The returned value is a copy, base is never modified.
func resolveConfig(cmd *cli.Command, base *config.Config) (*config.Config, error) {
	cfg, err := loadConfig(cmd, base)
	if err != nil {
		return nil, err
	}

	resolved := *cfg
	resolved.Migration.Tables = append([]string(nil), cfg.Migration.Tables...)

	setString := func(flag string, dst *string) {
		if cmd.IsSet(flag) {
			*dst = cmd.String(flag)
		}
	}

	setString("driver", &resolved.Database.Driver)
	setString("dsn", &resolved.Database.DSN)
	setString("dialect", &resolved.Database.Dialect)
	setString("schema", &resolved.Database.Schema)
	setString("cafile", &resolved.Database.TLS.CAFile)
	setString("certfile", &resolved.Database.TLS.CertFile)
	setString("keyfile", &resolved.Database.TLS.KeyFile)
	setString("mode", &resolved.Migration.Mode)
	setString("report-dir", &resolved.Report.Dir)
	setString("format", &resolved.Report.Format)

	if cmd.IsSet("tables") {
		resolved.Migration.Tables = cmd.StringSlice("tables")
	}

	if cmd.IsSet("include-views") {
		resolved.Migration.IncludeViews = cmd.Bool("include-views")
	}

	// Column flags replace the configured column as a whole, mixing the two
	// would make the result hard to predict.
	if cmd.IsSet("preset") || cmd.IsSet("definition") || cmd.IsSet("name") || cmd.IsSet("type") {
		resolved.Column = config.Column{
			Preset:     cmd.String("preset"),
			Definition: cmd.String("definition"),
			Name:       cmd.String("name"),
			Type:       cmd.String("type"),
			Default:    cmd.String("default"),
			Comment:    cmd.String("comment"),
		}

		if cmd.IsSet("not-null") {
			nullable := !cmd.Bool("not-null")
			resolved.Column.Nullable = &nullable
		}
	}

	return &resolved, nil
}

// loadConfig picks the config the command starts from. The config provided
// at startup wins unless --dir or --config point somewhere else.
func loadConfig(cmd *cli.Command, base *config.Config) (*config.Config, error) {
	relocated := cmd.IsSet("dir") || cmd.IsSet("config")
	if base != nil && !relocated {
		return base, nil
	}

	if err := config.LoadEnv(consts.DefaultEnvFile); err != nil {
		return nil, err
	}

	path := cmd.String("config")
	if path == "" {
		path = consts.DefaultConfigFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if cmd.IsSet("config") {
			return nil, errors.Errorf("config file not found: %s", path)
		}
		return config.Default(), nil
	}

	return config.LoadConfigFile(path)
}

func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(ctx, cfg.DatabaseOptions(slog.Default()))
	if err != nil {
		return nil, err
	}

	slog.Info("Connected to database", "driver", db.Driver, "dialect", db.Profile.String())
	return db, nil
}

// openReader creates a catalog reader for the configured schema, falling back
// to the connection's current schema.
func openReader(ctx context.Context, db *database.DB, schema string) (*catalog.Reader, error) {
	if schema != "" {
		return catalog.New(db, db.Profile, schema), nil
	}

	return catalog.Open(ctx, db, db.Profile)
}

// newExecutor creates an executor bound to the schema reader resolved.
func newExecutor(db *database.DB, reader *catalog.Reader) *executor.Executor {
	return executor.New(executor.Config{
		DB:      db.DB,
		Profile: db.Profile,
		Schema:  reader.Schema(),
	})
}

// printOutcome returns an observer that prints one line per finished table.
func printOutcome(w io.Writer) executor.Observer {
	return func(o executor.Outcome) {
		switch o.Status {
		case executor.StatusApplied:
			fmt.Fprintf(w, "  ✓ %s\n", o.Table)
		case executor.StatusSkipped:
			fmt.Fprintf(w, "  ⏭  %s (%s)\n", o.Table, o.Reason)
		case executor.StatusFailed:
			fmt.Fprintf(w, "  ✗ %s: %s\n", o.Table, o.Reason)
		case executor.StatusPlanned:
			fmt.Fprintf(w, "  → %s\n", o.Table)
			for _, stmt := range o.Statements {
				fmt.Fprintf(w, "      %s;\n", stmt)
			}
		}
	}
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 60))
}
