package sorting

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Job describes one queued sort request. Generation is a monotonically
// increasing submission counter; a job whose generation is no longer the
// newest is stale and its result is dropped.
type Job struct {
	ID         string
	Generation uint64
	Source     *Raster
	Algorithm  Algorithm
	Params     Params
}

// Result carries a completed job's output raster and timing.
type Result struct {
	Job     Job
	Output  *Raster
	Elapsed time.Duration
}

// Service runs sort jobs off the UI thread. Submitting a new job while an
// older one is queued or in flight supersedes it: the queued job is
// replaced and the in-flight one is cancelled between line passes. At most
// the newest result is ever delivered on Results().
//
// The engine itself is pure and synchronous; each job owns its input and
// output rasters, so a single worker goroutine suffices and no locking of
// pixel data is needed.
type Service struct {
	logger  *slog.Logger
	sorter  *Sorter
	mu      sync.Mutex
	pending *Job
	wake    chan struct{}
	results chan Result
	gen     atomic.Uint64
	running atomic.Bool
	cancel  atomic.Pointer[context.CancelFunc]
	done    chan struct{}

	completed atomic.Uint64
	discarded atomic.Uint64
}

// Stats summarises service activity for instrumentation.
type Stats struct {
	Completed uint64
	Discarded uint64
}

// NewService constructs a stopped service around the given sorter.
func NewService(logger *slog.Logger, sorter *Sorter) *Service {
	if sorter == nil {
		sorter = NewSorter()
	}
	return &Service{
		logger:  logger,
		sorter:  sorter,
		wake:    make(chan struct{}, 1),
		results: make(chan Result, 1),
	}
}

// Start launches the worker goroutine. Idempotent.
func (s *Service) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.done = make(chan struct{})
	go s.loop()
}

// Stop cancels any in-flight job and waits for the worker to exit.
// Idempotent.
func (s *Service) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	if c := s.cancel.Load(); c != nil {
		(*c)()
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
	<-s.done
}

// Running reports whether the worker is active.
func (s *Service) Running() bool { return s.running.Load() }

// Results delivers completed, non-stale results. The channel has capacity
// one and is drained by the service itself before publishing a newer
// result, so slow consumers only ever observe the freshest output.
func (s *Service) Results() <-chan Result { return s.results }

// Submit queues a sort of src and returns the job id. Any unconsumed older
// job is superseded.
func (s *Service) Submit(src *Raster, alg Algorithm, p Params) string {
	job := Job{
		ID:         uuid.NewString(),
		Generation: s.gen.Add(1),
		Source:     src,
		Algorithm:  alg,
		Params:     p,
	}
	s.mu.Lock()
	if s.pending != nil {
		s.discarded.Add(1)
	}
	s.pending = &job
	s.mu.Unlock()
	if c := s.cancel.Load(); c != nil {
		(*c)() // supersede the in-flight job
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return job.ID
}

// Stats returns completion counters.
func (s *Service) Stats() Stats {
	return Stats{Completed: s.completed.Load(), Discarded: s.discarded.Load()}
}

func (s *Service) loop() {
	defer close(s.done)
	for range s.wake {
		if !s.running.Load() {
			return
		}
		for {
			s.mu.Lock()
			job := s.pending
			s.pending = nil
			s.mu.Unlock()
			if job == nil {
				break
			}
			s.run(*job)
		}
	}
}

func (s *Service) run(job Job) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel.Store(&cancel)
	defer func() {
		s.cancel.Store(nil)
		cancel()
	}()

	start := time.Now()
	out, err := s.sorter.SortPixelsContext(ctx, job.Source, job.Algorithm, job.Params)
	if err == nil && job.Params.TintEnabled {
		ApplyTint(out, job.Params.ColorTint)
	}
	elapsed := time.Since(start)
	if err != nil || job.Generation != s.gen.Load() {
		s.discarded.Add(1)
		if s.logger != nil {
			s.logger.Debug("sort job discarded", "job", job.ID, "algorithm", job.Algorithm.Name(), "superseded", err == nil)
		}
		return
	}
	s.completed.Add(1)
	if s.logger != nil {
		s.logger.Info("sort job completed",
			"job", job.ID,
			"algorithm", job.Algorithm.Name(),
			"threshold", job.Params.Threshold,
			"elapsed", elapsed,
		)
	}
	// Replace a stale undelivered result rather than blocking the worker.
	select {
	case <-s.results:
	default:
	}
	s.results <- Result{Job: job, Output: out, Elapsed: elapsed}
}
