// Package daterange turns a range selection into the start/end dates sent
// to the data provider.
package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the date format exchanged with the provider.
const Layout = "2006-01-02"

// Label is a closed set of range selections.
type Label string

const (
	SixMonths Label = "6-months"
	OneYear   Label = "1-year"
	TwoYears  Label = "2-years"
	FiveYears Label = "5-years"
	Manual    Label = "manual"
)

// Labels lists every accepted label in display order.
var Labels = []Label{SixMonths, OneYear, TwoYears, FiveYears, Manual}

var (
	ErrUnknownLabel      = errors.New("unknown range label")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvertedRange     = errors.New("start date is after end date")
)

// ParseLabel maps user input onto a Label. Matching ignores case and
// surrounding whitespace.
func ParseLabel(s string) (Label, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range Labels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q (allowed: %s)", ErrUnknownLabel, s, strings.Join(LabelStrings(), ", "))
}

// LabelStrings returns Labels as plain strings.
func LabelStrings() []string {
	out := make([]string, len(Labels))
	for i, l := range Labels {
		out[i] = string(l)
	}
	return out
}

// Offset returns the look-back in days for a preset label.
func (l Label) Offset() (days int, ok bool) {
	switch l {
	case SixMonths:
		return 182, true
	case OneYear:
		return 365, true
	case TwoYears:
		return 730, true
	case FiveYears:
		return 1825, true
	case Manual:
		return 0, false
	}
	return 0, false
}

// Select returns the start and end date strings for a label. Preset labels
// count back from today and ignore the manual inputs; Manual returns the
// inputs untouched. Validation is left to Parse.
func Select(label Label, manualStart, manualEnd string, today time.Time) (start, end string, err error) {
	if label == Manual {
		return manualStart, manualEnd, nil
	}
	days, ok := label.Offset()
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownLabel, string(label))
	}
	return today.AddDate(0, 0, -days).Format(Layout), today.Format(Layout), nil
}

// Range is a validated, inclusive-start date range.
type Range struct {
	Start time.Time
	End   time.Time
}

// Parse validates both date strings and their ordering.
func Parse(start, end string) (Range, error) {
	s, err := time.Parse(Layout, strings.TrimSpace(start))
	if err != nil {
		return Range{}, fmt.Errorf("%w: start %q", ErrInvalidDateFormat, start)
	}
	e, err := time.Parse(Layout, strings.TrimSpace(end))
	if err != nil {
		return Range{}, fmt.Errorf("%w: end %q", ErrInvalidDateFormat, end)
	}
	if s.After(e) {
		return Range{}, fmt.Errorf("%w: %s > %s", ErrInvertedRange, s.Format(Layout), e.Format(Layout))
	}
	return Range{Start: s, End: e}, nil
}
