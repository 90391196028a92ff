package events

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Fanout dispatches events to all configured sinks.
type Fanout struct {
	publishers []Publisher
}

// NewFanout builds a dispatcher that fans out events across sinks.
func NewFanout(pubs []Publisher) *Fanout {
	cp := make([]Publisher, 0, len(pubs))
	for _, p := range pubs {
		if p == nil {
			continue
		}
		cp = append(cp, p)
	}
	return &Fanout{publishers: cp}
}

// Publish forwards the event to every registered sink.
// It returns the number of sinks that successfully handled the event.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f == nil || len(f.publishers) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, p := range f.publishers {
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("%s sink[%s]: %w", p.Type(), p.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Size returns the number of active sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.publishers)
}

// Close releases sinks that hold connections (Pub/Sub topics, etc).
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}

	var errs []error
	for _, p := range f.publishers {
		closer, ok := p.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s sink[%s]: %w", p.Type(), p.ID(), err))
		}
	}
	return errors.Join(errs...)
}
