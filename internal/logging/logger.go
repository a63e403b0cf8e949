// Package logging provides structured, colorful logging for the bootstrap
// pipeline, ensuring every stage emits a consistent, severity-coded status line.
//
// Implements a thin wrapper around charmbracelet/log with color-coded levels:
// DEBUG (purple), INFO (blue), WARN (yellow), ERROR (red), plus a custom
// SUCCESS level (green) for completed stages. Colors are rendered only when
// the stream is attached to a terminal; log aggregators receive plain text.
//
// Follows Unix conventions: INFO/SUCCESS go to stdout, WARN/ERROR/DEBUG go
// to stderr. A LevelWriter adapter routes output from probed subprocesses
// (interpreter version and import probes) through the same pipeline.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	// Logger for INFO/SUCCESS messages (stdout, follows Unix conventions)
	stdoutLogger = log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	// Logger for WARN/ERROR/DEBUG messages (stderr, follows Unix conventions)
	stderrLogger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
)

// setupCustomStyles configures custom color schemes for log levels so each
// stage of the bootstrap is visually distinct during container startup.
//
// Provides carefully chosen colors that work well in both light and dark
// terminals while keeping the output readable when colors are stripped.
func setupCustomStyles() *log.Styles {
	styles := log.DefaultStyles()

	// DEBUG: light purple
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))

	// INFO: light blue
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))

	// WARN: light yellow
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))

	// ERROR: light red/pink
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))

	return styles
}

func init() {
	styles := setupCustomStyles()
	stdoutLogger.SetStyles(styles)
	stderrLogger.SetStyles(styles)
}

// Info logs informational messages for stage progress and status updates.
func Info(format string, v ...any) {
	stdoutLogger.Info(fmt.Sprintf(format, v...))
}

// Warn logs advisory conditions that do not stop the bootstrap.
func Warn(format string, v ...any) {
	stderrLogger.Warn(fmt.Sprintf(format, v...))
}

// Error logs failures, including the fatal conditions that abort the run.
func Error(format string, v ...any) {
	stderrLogger.Error(fmt.Sprintf(format, v...))
}

// Success logs completed stages in green using INFO level with custom styling.
// Implements a custom SUCCESS level that respects INFO level filtering.
func Success(format string, v ...any) {
	if stdoutLogger.GetLevel() > log.InfoLevel {
		return // Skip if INFO level is suppressed
	}

	// Temporary logger that overrides the INFO label with a green "SUCCESS"
	// label; the level semantics stay INFO so filtering is uniform.
	styles := setupCustomStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SUCCESS").
		Foreground(lipgloss.Color("#60F281"))

	tempLogger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	tempLogger.SetStyles(styles)
	tempLogger.Info(fmt.Sprintf(format, v...))
}

// Debug logs detailed diagnostics, such as individual schema statements and
// subprocess probe output.
func Debug(format string, v ...any) {
	stderrLogger.Debug(fmt.Sprintf(format, v...))
}

// SetLevel configures the minimum logging level for both output streams.
// Accepts standard level strings (DEBUG, INFO, WARN, ERROR); anything else
// falls back to INFO.
func SetLevel(level string) {
	var logLevel log.Level
	switch level {
	case "DEBUG":
		logLevel = log.DebugLevel
	case "INFO":
		logLevel = log.InfoLevel
	case "WARN":
		logLevel = log.WarnLevel
	case "ERROR":
		logLevel = log.ErrorLevel
	default:
		logLevel = log.InfoLevel
	}

	stdoutLogger.SetLevel(logLevel)
	stderrLogger.SetLevel(logLevel)
}

// LevelWriter forwards log lines to a specific log level with optional prefix.
// Used to integrate stderr output of probed subprocesses (the workload
// interpreter) into the unified status output.
type LevelWriter struct {
	level  string
	prefix string
}

// NewLevelWriter creates a writer that logs each line at the specified level
// with the given prefix. Valid levels: DEBUG, INFO, WARN, ERROR.
func NewLevelWriter(level, prefix string) io.Writer {
	return &LevelWriter{level: strings.ToUpper(level), prefix: prefix}
}

// Write implements io.Writer by splitting input into lines and logging each
// at the configured level.
func (w *LevelWriter) Write(p []byte) (int, error) {
	text := string(p)
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		msg := line
		if w.prefix != "" {
			msg = w.prefix + ": " + line
		}
		switch w.level {
		case "DEBUG":
			Debug("%s", msg)
		case "INFO":
			Info("%s", msg)
		case "WARN":
			Warn("%s", msg)
		case "ERROR":
			Error("%s", msg)
		default:
			Info("%s", msg)
		}
	}
	return len(p), nil
}
