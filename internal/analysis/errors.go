package analysis

import (
	"errors"

	"SignalSentinel/internal/daterange"
)

// Failure classes of a run. Every one of them ends the run with a status
// message and no report.
var (
	ErrInvalidDateFormat = daterange.ErrInvalidDateFormat
	ErrInvertedRange     = daterange.ErrInvertedRange
	ErrUnknownRange      = daterange.ErrUnknownLabel
	ErrEmptySymbol       = errors.New("empty ticker symbol")
	ErrInvalidWindows    = errors.New("invalid moving average windows")
	ErrProviderFailure   = errors.New("data provider failure")
	ErrNoData            = errors.New("no data for range")
)

// Outcome labels used in run history and metrics.
const (
	OutcomeOK                = "ok"
	OutcomeInvalidDateFormat = "invalid_date_format"
	OutcomeInvertedRange     = "inverted_range"
	OutcomeUnknownRange      = "unknown_range"
	OutcomeEmptySymbol       = "empty_symbol"
	OutcomeInvalidWindows    = "invalid_windows"
	OutcomeProviderFailure   = "provider_failure"
	OutcomeNoData            = "no_data"
	OutcomeError             = "error"
)

// Outcome classifies err into one of the outcome labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrInvalidDateFormat):
		return OutcomeInvalidDateFormat
	case errors.Is(err, ErrInvertedRange):
		return OutcomeInvertedRange
	case errors.Is(err, ErrUnknownRange):
		return OutcomeUnknownRange
	case errors.Is(err, ErrEmptySymbol):
		return OutcomeEmptySymbol
	case errors.Is(err, ErrInvalidWindows):
		return OutcomeInvalidWindows
	case errors.Is(err, ErrProviderFailure):
		return OutcomeProviderFailure
	case errors.Is(err, ErrNoData):
		return OutcomeNoData
	}
	return OutcomeError
}
