package trigger

import (
	"context"
	"os"
	"os/signal"

	"github.com/raoulx24/quicksave-archiver/internal/logging"
)

// Signals fires whenever the process receives one of its signals.
type Signals struct {
	sigs []os.Signal
	log  logging.Logger
}

func NewSignals(log logging.Logger, sigs ...os.Signal) *Signals {
	return &Signals{sigs: sigs, log: log}
}

func (s *Signals) Name() string { return "signal" }

func (s *Signals) Run(ctx context.Context, sink Sink) error {
	if len(s.sigs) == 0 {
		s.log.Warn("signal trigger has no signals on this platform, it will never fire")
		<-ctx.Done()
		return nil
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, s.sigs...)
	defer signal.Stop(ch)
	s.log.Info("signal trigger started", "signals", s.sigs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-ch:
			s.log.Debug("signal received", "signal", sig.String())
			emit(sink, s.Name())
		}
	}
}
