// Package cmd provides CLI commands for the colsweep tool.
//
// # Available Commands
//
//   - list: List the tables a run would touch
//   - add: Add a column (or a preset's columns) to every table
//   - verify: Check that a column exists on every table
//   - columns: Show the existing columns of one table
//   - types: List common column types and render the presets for a dialect
//
// # Command Structure
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern, and is registered with fx
// through the "commands" value group.
//
// # Configuration
//
// Connection settings, the column and the migration mode come from
// colsweep.yaml (see pkg/config). Every value can be overridden on the
// command line; column flags replace the configured column as a whole.
//
// # Global Options
//
//   - --dir, -d: Working directory (defaults to current directory)
//   - --config, -c: Config file (defaults to colsweep.yaml, or $COLSWEEP_CONFIG)
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	colsweep list --driver sqlite --dsn app.db
//	colsweep add --preset common --mode isolated
//	colsweep add --definition "tenant_id INTEGER NOT NULL DEFAULT 0" --dry-run
//	colsweep verify --column tenant_id
//	colsweep columns users
//	colsweep types --dialect postgresql
package cmd
