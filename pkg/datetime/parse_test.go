package datetime

import (
	"math"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"Calendar date", "2021-03-04", "2021-03-04", false},
		{"Padded calendar date", " 2021-03-04 ", "2021-03-04", false},
		{"RFC3339", "2021-03-04T10:00:00Z", "2021-03-04", false},
		{"Datetime-local form value", "2021-03-04T10:00", "2021-03-04", false},
		{"Slash separated", "2021/03/04", "2021-03-04", false},
		{"Empty", "", "", true},
		{"Garbage", "yesterday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if result.Format(DateLayout) != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.input, result.Format(DateLayout), tt.expected)
			}
		})
	}

	if !ParseDateOrZero("nope").IsZero() {
		t.Errorf("ParseDateOrZero should return the zero time for invalid input")
	}
}

func TestYearsBetween(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected float64
	}{
		{"Exactly one holding year", start, start.Add(time.Duration(365.25 * 24 * float64(time.Hour))), 1},
		{"Two holding years", start, start.Add(time.Duration(2 * 365.25 * 24 * float64(time.Hour))), 2},
		{"Same day", start, start, 0},
		{"Reversed dates", start.AddDate(0, 0, 1), start, -1 / 365.25},
		{"Unset start", time.Time{}, start, 0},
		{"Unset end", start, time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := YearsBetween(tt.start, tt.end)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("YearsBetween() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
