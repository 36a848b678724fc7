package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Quiet shows errors only, verbose
// enables debug output, otherwise info-level messages are shown.
func newLogger(w io.Writer, quiet, verbose bool) *log.Logger {
	level := log.InfoLevel
	switch {
	case quiet:
		level = log.ErrorLevel
	case verbose:
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}
