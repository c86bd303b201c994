// Package logging provides a thin wrapper around charmbracelet/log so that
// every package in this module constructs loggers the same way.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new prefixed logger writing to stderr, using the
// process-wide level in effect when it is called (see SetLevel); a later
// SetLevel does not change loggers already created.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a logger with explicit options, for call sites that
// need to deviate from the process default.
func NewWithConfig(prefix string, level log.Level, caller, timestamp bool, formatter log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: timestamp,
		Formatter:       formatter,
	})
}

// SetLevel adjusts the process-wide default log level used by New.
func SetLevel(level log.Level) {
	log.SetLevel(level)
}
