// Package logging wraps charmbracelet/log with a shared default logger.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	defaultLogger *log.Logger
	defaultOnce   sync.Once
)

// Field name constants for structured logging.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldSelector = "selector"
	FieldMatches  = "matches"
	FieldStep     = "step"
	FieldStrategy = "strategy"
)

// New creates a logger writing to stderr at the given level. Valid levels
// are "debug", "info", "warn", and "error"; anything else means info.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	setLevel(logger, level)
	return logger
}

func setLevel(logger *log.Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// Default returns the shared logger.
func Default() *log.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// SetLevel updates the shared logger's level.
func SetLevel(level string) {
	setLevel(Default(), level)
}
