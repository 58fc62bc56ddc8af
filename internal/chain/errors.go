package chain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKeyfile indicates the wallet keyfile could not be read or decrypted.
// Commands abort entirely on this error instead of continuing the batch.
var ErrKeyfile = errors.New("error unlocking coldkey (missing or invalid keyfile)")

// SubmissionError is a chain-reported extrinsic failure: either a rejection
// at submission time or an ExtrinsicFailed event after inclusion.
type SubmissionError struct {
	// Pallet and Name identify the dispatch error when it could be resolved
	// against metadata; Raw always carries the underlying message.
	Pallet string
	Name   string
	Raw    string
}

func (e *SubmissionError) Error() string {
	if e.Pallet != "" && e.Name != "" {
		return fmt.Sprintf("%s.%s: %s", e.Pallet, e.Name, e.Raw)
	}
	return e.Raw
}

// priceToleranceCode is the custom dispatch code the chain returns when a
// limit-price extrinsic would exceed the tolerance and partial fills are
// disabled.
const priceToleranceCode = "Custom error: 8"

// IsPriceToleranceExceeded reports whether the error is the chain rejecting
// a limit-price extrinsic because the price moved past the tolerance while
// partial fills were disabled.
func IsPriceToleranceExceeded(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), priceToleranceCode)
}

// FormatError renders a chain error for the user, stripping the noisy RPC
// envelope substrate nodes wrap custom errors in.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = strings.TrimPrefix(msg, "rpc error: ")
	return strings.TrimSpace(msg)
}
