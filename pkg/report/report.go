package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/consts"
	"github.com/pseudomuto/colsweep/pkg/errs"
	"github.com/pseudomuto/colsweep/pkg/executor"
	"gopkg.in/yaml.v3"
)

// Format is an output format for reports.
type Format string

const (
	Text Format = "text"
	YAML Format = "yaml"
	JSON Format = "json"
)

// document is the serialized form of a report: the report itself plus its
// counts, which are derived and would otherwise be lost.
type document struct {
	executor.Report `yaml:",inline"`

	Counts executor.Counts `json:"counts" yaml:"counts"`
}

// ParseFormat converts a format name to a Format. An empty name is Text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case Text, YAML, JSON:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", errs.Configuration("unknown report format %q (want text, yaml or json)", s)
	}
}

// Ext returns the file extension used for the format.
func (f Format) Ext() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	default:
		return "txt"
	}
}

// Render writes r to w in the given format.
func Render(w io.Writer, r *executor.Report, f Format) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Report: *r, Counts: r.Counts()}); err != nil {
			return errors.Wrap(err, "failed to encode yaml report")
		}
		return errors.Wrap(enc.Close(), "failed to encode yaml report")

	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return errors.Wrap(enc.Encode(document{Report: *r, Counts: r.Counts()}), "failed to encode json report")

	default:
		_, err := io.WriteString(w, renderText(r))
		return errors.Wrap(err, "failed to write report")
	}
}

// FileName returns the name Write uses for r. The run ID keeps reports that
// finish in the same millisecond apart.
func FileName(r *executor.Report, f Format) string {
	return fmt.Sprintf("colsweep_report_%d_%s.%s", r.FinishedAt.UnixMilli(), r.ID.String()[:8], f.Ext())
}

// Write renders r into a new file in dir, creating dir when needed, and
// returns the file's path. An existing file is never overwritten.
func Write(dir string, r *executor.Report, f Format) (string, error) {
	if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
		return "", errors.Wrapf(err, "failed to create report dir: %s", dir)
	}

	path := filepath.Join(dir, FileName(r, f))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, consts.ModeFile)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create report file: %s", path)
	}
	defer func() { _ = file.Close() }()

	if err := Render(file, r, f); err != nil {
		return "", err
	}

	return path, errors.Wrapf(file.Close(), "failed to close report file: %s", path)
}

// Result summarizes how a run ended in a few words.
func Result(r *executor.Report) string {
	switch {
	case r.DryRun:
		return "dry run"
	case r.Aborted:
		return "aborted"
	case r.Counts().Failed > 0:
		return "completed with failures"
	default:
		return "completed"
	}
}

func renderText(r *executor.Report) string {
	var b strings.Builder

	field := func(name, value string) {
		fmt.Fprintf(&b, "%-12s %s\n", name+":", value)
	}

	b.WriteString("colsweep report\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")

	field("Run", r.ID.String())
	field("Column", strings.TrimSpace(r.Column+" "+r.Type))
	field("Dialect", r.Dialect)
	if r.Schema != "" {
		field("Schema", r.Schema)
	}
	field("Mode", string(r.Mode))
	field("Started", r.StartedAt.UTC().Format(time.RFC3339))
	field("Finished", r.FinishedAt.UTC().Format(time.RFC3339))
	field("Duration", r.Duration().String())
	field("Result", Result(r))

	b.WriteString(strings.Repeat("-", 60) + "\n")

	if r.DryRun {
		planned := outcomes(r, executor.StatusPlanned)
		fmt.Fprintf(&b, "Planned (%d):\n", len(planned))
		for _, o := range planned {
			fmt.Fprintf(&b, "  - %s\n", o.Table)
			for _, stmt := range o.Statements {
				fmt.Fprintf(&b, "      %s;\n", stmt)
			}
		}
	} else {
		applied := outcomes(r, executor.StatusApplied)
		fmt.Fprintf(&b, "Applied (%d):\n", len(applied))
		for _, o := range applied {
			fmt.Fprintf(&b, "  - %s\n", o.Table)
		}
	}

	skipped := outcomes(r, executor.StatusSkipped)
	fmt.Fprintf(&b, "Skipped (%d):\n", len(skipped))
	for _, o := range skipped {
		fmt.Fprintf(&b, "  - %s: %s\n", o.Table, o.Reason)
	}

	failed := outcomes(r, executor.StatusFailed)
	fmt.Fprintf(&b, "Failed (%d):\n", len(failed))
	for _, o := range failed {
		fmt.Fprintf(&b, "  - %s\n", o.Table)
		fmt.Fprintf(&b, "    error: %s\n", o.Reason)
	}

	list := func(title string, names []string) {
		if len(names) == 0 {
			return
		}

		fmt.Fprintf(&b, "%s (%d):\n", title, len(names))
		for _, name := range names {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}

	list("Rolled back", r.RolledBack)
	list("Unprocessed", r.Unprocessed)

	return b.String()
}

func outcomes(r *executor.Report, status executor.Status) []executor.Outcome {
	var out []executor.Outcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}
