// Package worker debounces backup triggers and runs the backup pipeline.
// All filesystem work happens on the goroutine that calls Start, so at most
// one backup sequence is in flight.
package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/raoulx24/quicksave-archiver/internal/logging"
	"github.com/raoulx24/quicksave-archiver/internal/mailbox"
	"github.com/raoulx24/quicksave-archiver/internal/trigger"
)

// Runner executes one backup sequence.
type Runner interface {
	Run(ctx context.Context) Outcome
}

// Options tunes the debouncer.
type Options struct {
	// Delay between the first trigger and the backup.
	Delay time.Duration
	// RestartOnTrigger restarts the delay for every trigger received while
	// waiting. Otherwise those triggers are absorbed and the first one's
	// deadline holds.
	RestartOnTrigger bool
}

// Worker is the Idle → Waiting → Copying state machine.
type Worker struct {
	mb     *mailbox.Mailbox[trigger.Event]
	runner Runner
	opts   Options
	log    logging.Logger

	state  atomic.Int32
	cycles atomic.Uint64
}

// New creates a worker consuming triggers from mb.
func New(mb *mailbox.Mailbox[trigger.Event], runner Runner, opts Options, log logging.Logger) *Worker {
	return &Worker{
		mb:     mb,
		runner: runner,
		opts:   opts,
		log:    log,
	}
}

// State is safe to call from any goroutine.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// Cycles is the number of completed backup sequences.
func (w *Worker) Cycles() uint64 {
	return w.cycles.Load()
}

// Start runs the worker loop until ctx is done. A pending delay is
// abandoned on cancellation; a running backup sequence is not interrupted
// and Start returns once it finishes.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting worker", "delay", w.opts.Delay.String(), "restartOnTrigger", w.opts.RestartOnTrigger)
	defer w.log.Info("worker stopped")

	for {
		ev, ok := w.mb.Take(ctx)
		if !ok {
			return
		}

		w.setState(Waiting)
		w.log.Info("backup trigger received", "source", ev.Source, "delay", w.opts.Delay.String())

		absorbed, ok := w.wait(ctx)
		if !ok {
			w.setState(Idle)
			w.log.Info("pending backup abandoned")
			return
		}
		if absorbed > 0 {
			w.log.Debug("triggers coalesced", "count", absorbed)
		}

		w.setState(Copying)
		w.run(context.WithoutCancel(ctx))
		w.cycles.Add(1)

		if dropped := w.drop(); dropped > 0 {
			w.log.Debug("triggers dropped during backup", "count", dropped)
		}
		w.setState(Idle)
	}
}

// wait sleeps for the delay while consuming triggers that arrive meanwhile.
// It returns false if ctx ended first.
func (w *Worker) wait(ctx context.Context) (int, bool) {
	timer := time.NewTimer(w.opts.Delay)
	defer timer.Stop()

	absorbed := 0
	for {
		select {
		case <-ctx.Done():
			return absorbed, false

		case <-timer.C:
			return absorbed, true

		case <-w.mb.Ready():
			if w.mb.TryTake() == nil {
				continue
			}
			absorbed++
			if w.opts.RestartOnTrigger {
				timer.Reset(w.opts.Delay)
			}
		}
	}
}

// drop discards triggers that arrived while copying.
func (w *Worker) drop() int {
	if w.mb.TryTake() != nil {
		return 1
	}
	return 0
}

// run keeps the loop alive if the pipeline panics.
func (w *Worker) run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("backup sequence panic", "panic", r)
		}
	}()
	w.runner.Run(ctx)
}

func (w *Worker) setState(s State) {
	w.state.Store(int32(s))
}
