// Package usage records which calculators are used and with what inputs.
// Reporting is best-effort: a failing sink never changes a calculation.
package usage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyCalculatorType is returned when an event does not name its calculator.
var ErrEmptyCalculatorType = errors.New("calculator type is required")

// ErrStatsUnsupported is returned by sinks that cannot report usage counts.
var ErrStatsUnsupported = errors.New("usage backend does not report statistics")

// Event is one completed calculation.
type Event struct {
	ID             string          `json:"id"`
	CalculatorType string          `json:"calculatorType"`
	InputData      json.RawMessage `json:"inputData,omitempty"`
	ResultData     json.RawMessage `json:"resultData,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// NewEvent builds an event with a fresh ID, encoding inputs and results as JSON.
func NewEvent(calculatorType string, inputs, results interface{}) (Event, error) {
	calculatorType = strings.TrimSpace(calculatorType)
	if calculatorType == "" {
		return Event{}, ErrEmptyCalculatorType
	}

	inputData, err := json.Marshal(inputs)
	if err != nil {
		return Event{}, fmt.Errorf("encode input data: %w", err)
	}
	resultData, err := json.Marshal(results)
	if err != nil {
		return Event{}, fmt.Errorf("encode result data: %w", err)
	}

	return Event{
		ID:             uuid.NewString(),
		CalculatorType: calculatorType,
		InputData:      inputData,
		ResultData:     resultData,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// Normalize fills in the ID and timestamp of an event received from a client.
func (e *Event) Normalize() error {
	e.CalculatorType = strings.TrimSpace(e.CalculatorType)
	if e.CalculatorType == "" {
		return ErrEmptyCalculatorType
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return nil
}

// Recorder accepts usage events.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// StatsReader reports usage counts recorded since a point in time.
type StatsReader interface {
	Stats(ctx context.Context, since time.Time) ([]Stat, error)
}

// Stat is the number of uses of one calculator.
type Stat struct {
	CalculatorType string `json:"calculatorType"`
	Count          int    `json:"count"`
}

// Summary is a usage report over a look-back window.
type Summary struct {
	Days        int    `json:"days"`
	Total       int    `json:"total"`
	Calculators []Stat `json:"calculators"`
}

// Summarize orders stats by count, most used first, and totals them.
func Summarize(stats []Stat, days int) Summary {
	sorted := make([]Stat, 0, len(stats))
	total := 0
	for _, s := range stats {
		if s.Count <= 0 {
			continue
		}
		sorted = append(sorted, s)
		total += s.Count
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].CalculatorType < sorted[j].CalculatorType
	})
	return Summary{Days: days, Total: total, Calculators: sorted}
}

// Since returns the start of a look-back window of the given number of days.
func Since(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// Nop discards every event.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, Event) error { return nil }
