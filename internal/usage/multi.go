package usage

import (
	"context"
	"errors"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// Multi fans each event out to several recorders concurrently.
type Multi struct {
	recorders []Recorder
}

// NewMulti combines recorders. Stats come from the first member that can
// report them.
func NewMulti(recorders ...Recorder) *Multi {
	return &Multi{recorders: recorders}
}

// Record implements Recorder. It returns the first failure after every
// member has been tried.
func (m *Multi) Record(ctx context.Context, event Event) error {
	if err := event.Normalize(); err != nil {
		return err
	}
	var g errgroup.Group
	for _, r := range m.recorders {
		r := r
		g.Go(func() error {
			return r.Record(ctx, event)
		})
	}
	return g.Wait()
}

// Stats implements StatsReader.
func (m *Multi) Stats(ctx context.Context, since time.Time) ([]Stat, error) {
	for _, r := range m.recorders {
		if reader, ok := r.(StatsReader); ok {
			return reader.Stats(ctx, since)
		}
	}
	return nil, ErrStatsUnsupported
}

// Close closes every member that holds resources.
func (m *Multi) Close() error {
	var errs []error
	for _, r := range m.recorders {
		if c, ok := r.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
