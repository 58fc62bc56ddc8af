package common

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.WarnLevel).
	With().Timestamp().Logger()

// Logger returns the process-wide logger. Defaults to warn level,
// SetDebug raises it.
func Logger() zerolog.Logger {
	return logger
}

// SetDebug switches the process-wide logger to debug level.
func SetDebug() {
	logger = logger.Level(zerolog.DebugLevel)
}

// Warnf prints a message to stderr with formatting.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, pterm.Yellow(fmt.Sprintf(format, args...)))
}

// Successf prints a success message to stderr with formatting.
func Successf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, pterm.Green(fmt.Sprintf(format, args...)))
}

// PrintErrorf prints an error message to stderr with formatting.
func PrintErrorf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, pterm.Red(fmt.Sprintf(format, args...)))
}
