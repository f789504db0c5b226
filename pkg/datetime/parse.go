// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/finance-tools/pkg/constants"
)

const (
	// DateLayout is the calendar date format accepted on input.
	DateLayout = constants.DateLayout
)

// acceptedLayouts lists the date formats accepted from forms and config files,
// in the order they are tried.
var acceptedLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006/01/02",
}

// ParseDate parses a calendar date in any of the accepted layouts.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, expected %s", value, DateLayout)
}

// ParseDateOrZero parses a calendar date, returning the zero time when it
// cannot be read.
func ParseDateOrZero(value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// YearsBetween returns the elapsed time from start to end in years of
// 365.25 days. The result is negative when end precedes start and zero when
// either date is unset.
func YearsBetween(start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	days := end.Sub(start).Hours() / 24
	return days / constants.DaysPerYear
}
