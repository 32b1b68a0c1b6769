package worker

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/raoulx24/quicksave-archiver/internal/logging"
	"github.com/raoulx24/quicksave-archiver/internal/retention"
	"github.com/raoulx24/quicksave-archiver/internal/snapshot"
	"github.com/raoulx24/quicksave-archiver/internal/watcher"
)

// Outcome records what one backup sequence did.
type Outcome struct {
	Cycle     string
	Changed   bool
	Snapshot  string
	Copy      snapshot.Result
	DetectErr error
	CopyErr   error
	Prune     retention.Result
	PruneErr  error
}

// Pipeline is one backup sequence: detect a new save, copy the save
// directory, advance the baseline, prune old snapshots. Every stage handles
// its own errors; Run never fails.
type Pipeline struct {
	target    *watcher.Target
	copier    *snapshot.Copier
	retention *retention.Manager
	maxCount  int
	log       logging.Logger
	now       func() time.Time
}

func NewPipeline(target *watcher.Target, copier *snapshot.Copier, ret *retention.Manager, maxCount int, log logging.Logger) *Pipeline {
	return &Pipeline{
		target:    target,
		copier:    copier,
		retention: ret,
		maxCount:  maxCount,
		log:       log,
		now:       time.Now,
	}
}

// Run snapshots only if the save changed since the baseline.
func (p *Pipeline) Run(ctx context.Context) Outcome {
	return p.run(ctx, false)
}

// Snapshot copies even if the save did not change.
func (p *Pipeline) Snapshot(ctx context.Context) Outcome {
	return p.run(ctx, true)
}

// Prune runs only the retention stage.
func (p *Pipeline) Prune() (retention.Result, error) {
	return p.retention.Prune(p.target.Parent(), snapshot.MarkerFor(p.target.Base()), p.maxCount)
}

func (p *Pipeline) run(ctx context.Context, force bool) Outcome {
	out := Outcome{Cycle: uuid.NewString()}
	log := p.log.With("cycle", out.Cycle)

	changed, mod, err := p.target.HasChanged()
	switch {
	case errors.Is(err, watcher.ErrNotFound):
		out.DetectErr = err
		log.Warn("watched file not found", "file", p.target.Path())
	case err != nil:
		out.DetectErr = err
		log.Error("change detection failed", "error", err)
	case !changed && !force:
		log.Info("file has not been modified", "file", p.target.Path())
	default:
		out.Changed = changed
		p.copy(ctx, log, mod, &out)
	}

	out.Prune, out.PruneErr = p.Prune()
	if out.PruneErr != nil {
		log.Error("retention failed", "error", out.PruneErr)
	} else if n := len(out.Prune.Deleted); n > 0 {
		log.Info("retention applied", "deleted", n, "kept", len(out.Prune.Kept), "failed", len(out.Prune.Failed))
	}

	return out
}

// copy snapshots the save directory. The baseline moves forward when a
// snapshot directory was produced, even a partial one, so a file that can
// never be copied does not cause a snapshot on every trigger.
func (p *Pipeline) copy(ctx context.Context, log logging.Logger, mod time.Time, out *Outcome) {
	dst := filepath.Join(p.target.Parent(), snapshot.Name(p.target.Base(), p.now()))
	log.Info("file has been modified, copying", "src", p.target.Dir(), "dst", dst)

	res, err := p.copier.CopyTree(ctx, p.target.Dir(), dst)
	out.Copy, out.CopyErr = res, err

	switch {
	case err == nil:
		p.target.UpdateBaseline(mod)
		out.Snapshot = dst
		log.Info("snapshot written", "dst", dst, "files", res.Files, "dirs", res.Dirs, "size", humanize.IBytes(uint64(res.Bytes)))
	case errors.Is(err, snapshot.ErrPartialCopy):
		p.target.UpdateBaseline(mod)
		out.Snapshot = dst
		log.Warn("snapshot incomplete", "dst", dst, "copied", res.Files, "total", res.Total, "error", err)
	default:
		log.Error("snapshot failed", "dst", dst, "error", err)
	}
}
