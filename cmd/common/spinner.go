package common

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// RunWithSpinner runs fn while displaying an animated spinner with the given
// message. When stderr is not a terminal the spinner is skipped and fn runs
// silently.
func RunWithSpinner(msg string, fn func() error) error {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return fn()
	}

	spinner, err := pterm.DefaultSpinner.
		WithWriter(os.Stderr).
		WithRemoveWhenDone(true).
		Start(msg)
	if err != nil {
		// Degrade to running without the spinner.
		return fn()
	}
	defer func() {
		_ = spinner.Stop()
	}()

	return fn()
}
