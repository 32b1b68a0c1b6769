// Package trigger turns external inputs into backup requests. Every source
// hands events to a Sink without blocking, so a burst of inputs never
// stalls the goroutine that delivers them.
package trigger

import (
	"context"
	"time"
)

// Event is a request to check for a new save. The fields are informational.
type Event struct {
	Source string
	At     time.Time
}

// Sink receives events. Put must not block.
type Sink interface {
	Put(Event)
}

// Source produces events until ctx is done.
type Source interface {
	Name() string
	Run(ctx context.Context, sink Sink) error
}

func emit(sink Sink, source string) {
	sink.Put(Event{Source: source, At: time.Now()})
}
