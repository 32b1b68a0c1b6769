package trigger

import (
	"bufio"
	"context"
	"io"

	"github.com/raoulx24/quicksave-archiver/internal/logging"
)

// Lines fires once per line read from r. On a terminal this makes Enter the
// backup hotkey.
type Lines struct {
	r   io.Reader
	log logging.Logger
}

func NewLines(r io.Reader, log logging.Logger) *Lines {
	return &Lines{r: r, log: log}
}

func (l *Lines) Name() string { return "stdin" }

// Run returns when ctx is done or the reader hits EOF. A blocked Read cannot
// be interrupted, so the scanning goroutine may outlive Run until the next
// line or EOF.
func (l *Lines) Run(ctx context.Context, sink Sink) error {
	errCh := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(l.r)
		for sc.Scan() {
			if ctx.Err() != nil {
				break
			}
			emit(sink, l.Name())
		}
		errCh <- sc.Err()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil {
			return err
		}
		l.log.Debug("stdin closed, line trigger stopped")
		<-ctx.Done()
		return nil
	}
}
