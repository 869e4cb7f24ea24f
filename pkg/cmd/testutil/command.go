package testutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

// RunCommand executes a command as the root of a test app, so that its
// Writer is a buffer, and returns what it wrote.
func RunCommand(t *testing.T, command *cli.Command, args []string) (string, error) {
	t.Helper()

	return RunCommandWithContext(context.Background(), t, command, args)
}

// RunCommandWithContext executes a command with a custom context and returns
// what it wrote.
func RunCommandWithContext(ctx context.Context, t *testing.T, command *cli.Command, args []string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   command.Name,
		Flags:  command.Flags,
		Action: command.Action,
		Writer: &buf,
	}

	err := app.Run(ctx, append([]string{command.Name}, args...))
	return buf.String(), err
}
