// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"vseek/internal/cli"
)

// ParseLevel maps a level name to a log level. Unknown names are an error.
func ParseLevel(name string) (log.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q", name)
}

// NewLogger builds the program logger writing to stderr and, when l.File is
// set, appending to that file too. --quiet wins over --verbose, which wins
// over --log-level. The returned close func releases the log file.
func NewLogger(stderr io.Writer, l cli.Logging) (*log.Logger, func() error, error) {
	closeFn := func() error { return nil }
	out := stderr
	if l.File != "" {
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(stderr, f)
		closeFn = f.Close
	}

	level, err := ParseLevel(l.Level)
	if err != nil {
		_ = closeFn()
		return nil, func() error { return nil }, err
	}
	switch {
	case l.Quiet:
		level = log.ErrorLevel
	case l.Verbose:
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "vseek",
	})
	return logger, closeFn, nil
}
