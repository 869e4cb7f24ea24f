// Package report renders executor reports for people and machines.
//
// Three formats are supported: a plain text summary (the default, and what
// the CLI prints), YAML and JSON. Write persists a rendered report as
// colsweep_report_<unix-millis>.<ext> in a directory.
package report
