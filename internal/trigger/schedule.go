package trigger

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/quicksave-archiver/internal/logging"
)

// Schedule fires on a cron schedule.
type Schedule struct {
	spec   string
	parser cron.Parser
	log    logging.Logger
}

// NewSchedule creates a schedule source. spec is parsed by parser.
func NewSchedule(spec string, parser cron.Parser, log logging.Logger) *Schedule {
	return &Schedule{spec: spec, parser: parser, log: log}
}

func (s *Schedule) Name() string { return "schedule" }

func (s *Schedule) Run(ctx context.Context, sink Sink) error {
	c := cron.New(cron.WithParser(s.parser))
	if _, err := c.AddFunc(s.spec, func() { emit(sink, s.Name()) }); err != nil {
		return fmt.Errorf("parsing schedule %q: %w", s.spec, err)
	}

	c.Start()
	s.log.Info("schedule trigger started", "spec", s.spec)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
