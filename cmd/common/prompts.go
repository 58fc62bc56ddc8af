package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/internal/balance"
)

// SurveyStdio is the standard survey option to direct prompts to stderr.
var SurveyStdio = survey.WithStdio(os.Stdin, os.Stderr, os.Stderr)

// Ask wraps survey.AskOne while forcing prompts to stderr.
func Ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return survey.AskOne(p, response, append([]survey.AskOpt{SurveyStdio}, opts...)...)
}

// Confirm asks the user for confirmation and aborts when rejected.
func Confirm(msg, abortMsg string) {
	if GetAnswerYes() {
		fmt.Fprintf(os.Stderr, "? %s Yes\n", msg)
		return
	}

	var proceed bool
	err := Ask(&survey.Confirm{Message: msg}, &proceed)
	cobra.CheckErr(err)
	if !proceed {
		cobra.CheckErr(abortMsg)
	}
}

// PromptAmount asks the user for a token amount denominated in the unit of
// netuid. Entering "q" quits, returning quit=true.
func PromptAmount(msg string, netuid uint16) (amount balance.Balance, quit bool, err error) {
	var raw string
	if err = Ask(&survey.Input{Message: msg}, &raw); err != nil {
		return
	}
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "q") {
		quit = true
		return
	}

	dec, err := decimal.NewFromString(raw)
	if err != nil {
		err = fmt.Errorf("malformed amount '%s': %w", raw, err)
		return
	}
	if dec.IsNegative() {
		err = fmt.Errorf("amount must not be negative")
		return
	}
	amount = balance.FromDecimal(dec, netuid)
	return
}
