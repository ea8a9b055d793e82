package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Tera-Dark/ArtClipper-AI/internal/analyzer"
	"github.com/Tera-Dark/ArtClipper-AI/internal/system"
)

// ErrRunActive is returned when a run is started while another is active.
var ErrRunActive = errors.New("orchestrator: a run is already active")

// Concurrency bounds for in-flight detection calls per round.
const (
	MinConcurrency = 1
	MaxConcurrency = 5
)

// pausePollInterval is how often a paused run re-checks its flags.
const pausePollInterval = 200 * time.Millisecond

// DetectFunc performs detection for one job, selecting the local or external
// path per the job's mode. Supplied by the caller.
type DetectFunc func(ctx context.Context, job Job) ([]analyzer.Region, error)

// Outcome is one per-job result emitted on the run's outcome stream.
type Outcome struct {
	JobID   string
	Status  JobStatus
	Regions []analyzer.Region
	Err     error
}

// Run owns the mutable state of one batch run: the concurrency limit and the
// cooperative pause/cancel flags. It is created when a run starts and torn
// down (flags reset, marked inactive) when the run ends.
type Run struct {
	limit     int
	paused    atomic.Bool
	cancelled atomic.Bool
	active    atomic.Bool
	outcomes  chan Outcome
}

// Outcomes streams per-job results as rounds commit. The channel is closed
// when the run terminates. Consumers must drain it until close; a caller that
// abandons the stream must cancel the run's context, which unblocks any
// pending send and tears the run down.
func (r *Run) Outcomes() <-chan Outcome { return r.outcomes }

// Pause requests a cooperative pause at the next round boundary. Jobs
// already in flight are not interrupted.
func (r *Run) Pause() { r.paused.Store(true) }

// Resume clears a pause request.
func (r *Run) Resume() { r.paused.Store(false) }

// Cancel requests termination at the next round boundary. Results of the
// round in flight at that moment are discarded; prior rounds stay committed.
func (r *Run) Cancel() { r.cancelled.Store(true) }

// Active reports whether the run is still dispatching.
func (r *Run) Active() bool { return r.active.Load() }

// Orchestrator issues at most one run at a time over a shared working set.
type Orchestrator struct {
	logger *slog.Logger

	mu      sync.Mutex
	current *Run
}

// New creates an orchestrator. A nil logger disables logging.
func New(logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{logger: logger}
}

// Start begins a batch run over the queued jobs of set, dispatching up to
// limit detection calls per round. Starting while a run is active returns
// ErrRunActive and changes nothing; a fresh start always begins with pause
// and cancel cleared. limit is clamped to [MinConcurrency, MaxConcurrency];
// zero or negative selects a host-derived default.
func (o *Orchestrator) Start(ctx context.Context, set *JobSet, limit int, detect DetectFunc) (*Run, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil && o.current.Active() {
		return nil, ErrRunActive
	}

	if limit <= 0 {
		limit = system.DefaultConcurrency()
	}
	if limit < MinConcurrency {
		limit = MinConcurrency
	}
	if limit > MaxConcurrency {
		limit = MaxConcurrency
	}

	run := &Run{limit: limit, outcomes: make(chan Outcome, 64)}
	run.active.Store(true)
	o.current = run

	o.logger.Info("run started", "concurrency", limit, "jobs", set.Len())
	go o.loop(ctx, run, set, detect)
	return run, nil
}

// loop drives round-based dispatch until no queued jobs remain or the run is
// cancelled. Pause and cancellation are inspected only at round boundaries.
func (o *Orchestrator) loop(ctx context.Context, run *Run, set *JobSet, detect DetectFunc) {
	defer func() {
		set.requeueProcessing()
		run.paused.Store(false)
		run.cancelled.Store(false)
		run.active.Store(false)
		close(run.outcomes)
	}()

	for {
		if run.cancelled.Load() || ctx.Err() != nil {
			o.logger.Info("run cancelled")
			return
		}
		if run.paused.Load() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(pausePollInterval):
			}
			continue
		}

		round := set.takeRound(run.limit)
		if len(round) == 0 {
			o.logger.Info("run finished")
			return
		}
		o.logger.Debug("round dispatched", "size", len(round))

		type result struct {
			jobID   string
			regions []analyzer.Region
			err     error
		}
		results := make([]result, len(round))

		g, gctx := errgroup.WithContext(ctx)
		for i, job := range round {
			i, job := i, job
			g.Go(func() error {
				regions, err := detect(gctx, job)
				// a failed job is isolated to its own error status; never
				// abort the round
				results[i] = result{jobID: job.ID, regions: regions, err: err}
				return nil
			})
		}
		_ = g.Wait()

		if run.cancelled.Load() || ctx.Err() != nil {
			// the round was in flight when cancellation arrived: discard
			o.logger.Info("round discarded on cancellation", "size", len(round))
			return
		}

		for _, res := range results {
			job, ok := set.commit(res.jobID, res.regions, res.err)
			if !ok {
				o.logger.Debug("result dropped, job removed", "job", res.jobID)
				continue
			}
			if res.err != nil {
				o.logger.Warn("job failed", "job", res.jobID, "error", res.err)
			}
			select {
			case run.outcomes <- Outcome{JobID: job.ID, Status: job.Status, Regions: job.Regions, Err: job.Err}:
			case <-ctx.Done():
				// the consumer is gone; stop instead of wedging on the stream
				o.logger.Info("run cancelled")
				return
			}
		}
	}
}
