package chain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPriceToleranceExceeded(t *testing.T) {
	require := require.New(t)

	require.True(IsPriceToleranceExceeded(errors.New(`{"code":1010,"message":"Invalid Transaction","data":"Custom error: 8"}`)))
	require.True(IsPriceToleranceExceeded(&SubmissionError{Raw: "Custom error: 8"}))
	require.False(IsPriceToleranceExceeded(errors.New("Custom error: 3")))
	require.False(IsPriceToleranceExceeded(nil))
}

func TestSubmissionError(t *testing.T) {
	require := require.New(t)

	err := &SubmissionError{Raw: "boom"}
	require.Equal("boom", err.Error())

	err = &SubmissionError{Pallet: "SubtensorModule", Name: "AmountTooLow", Raw: "amount too low"}
	require.Equal("SubtensorModule.AmountTooLow: amount too low", err.Error())

	// SubmissionError travels through wrapping.
	wrapped := fmt.Errorf("failed to unstake: %w", err)
	var subErr *SubmissionError
	require.ErrorAs(wrapped, &subErr)
}

func TestFormatError(t *testing.T) {
	require := require.New(t)

	require.Equal("", FormatError(nil))
	require.Equal("connection refused", FormatError(errors.New("rpc error: connection refused")))
	require.Equal("plain", FormatError(errors.New(" plain ")))
}

func TestIdentityMapDisplayName(t *testing.T) {
	require := require.New(t)

	m := IdentityMap{"5ABC": {Name: "validator-one"}}
	require.Equal("validator-one (5ABC)", m.DisplayName("5ABC"))
	require.Equal("5XYZ", m.DisplayName("5XYZ"))

	require.Equal("fallback", Identity{}.Display("fallback"))
	require.Equal("v", Identity{Name: "v"}.Display("fallback"))
}
