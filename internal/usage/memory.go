package usage

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps events in process. Contents are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record implements Recorder.
func (m *MemoryStore) Record(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := event.Normalize(); err != nil {
		return err
	}
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	return nil
}

// Events returns a copy of the recorded events in arrival order.
func (m *MemoryStore) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Event(nil), m.events...)
}

// Stats implements StatsReader.
func (m *MemoryStore) Stats(ctx context.Context, since time.Time) ([]Stat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	counts := make(map[string]int)
	for _, e := range m.events {
		if e.CreatedAt.Before(since) {
			continue
		}
		counts[e.CalculatorType]++
	}
	m.mu.RUnlock()

	return statsFromCounts(counts), nil
}

func statsFromCounts(counts map[string]int) []Stat {
	stats := make([]Stat, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, Stat{CalculatorType: name, Count: count})
	}
	return stats
}
