// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"
	"time"

	"github.com/iwvelando/finance-tools/pkg/datetime"
	"github.com/iwvelando/finance-tools/pkg/output"
)

// FindReport finds a report by name in the reports slice.
// Returns a pointer to the report if found, nil otherwise.
func FindReport(reports []output.Report, name string) *output.Report {
	for i := range reports {
		if reports[i].Name == name {
			return &reports[i]
		}
	}
	return nil
}

// ApproxEqual reports whether a and b differ by no more than tol.
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// AssertClose fails the test when got is not within tol of want.
func AssertClose(t testing.TB, name string, got, want, tol float64) {
	t.Helper()
	if !ApproxEqual(got, want, tol) {
		t.Errorf("%s = %.6f, expected %.6f (tolerance %g)", name, got, want, tol)
	}
}

// Date parses a date known to be valid and panics otherwise.
func Date(value string) time.Time {
	t, err := datetime.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}
