// Package scheduler runs periodic housekeeping jobs such as session
// eviction and expired KV slot purges.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JobFunc performs one run of a job.
type JobFunc func(ctx context.Context) error

// Job is a named unit of work repeated every Interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      JobFunc
	// RunOnStart triggers one run immediately after Start.
	RunOnStart bool
}

// JobStats summarises the runs of one job.
type JobStats struct {
	Runs      int64
	Failures  int64
	LastRun   time.Time
	LastError string
}

// Scheduler drives a fixed set of jobs, each on its own ticker.
type Scheduler struct {
	logger *zap.Logger

	mu        sync.Mutex
	jobs      []Job
	stats     map[string]*JobStats
	isRunning bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// New creates a stopped scheduler.
func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: logger,
		stats:  make(map[string]*JobStats),
	}
}

// Add registers job. Jobs must be added before Start.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Interval <= 0 || job.Run == nil {
		return fmt.Errorf("%w: %q", ErrInvalidJob, job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return ErrSchedulerRunning
	}
	if _, ok := s.stats[job.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateJob, job.Name)
	}
	s.jobs = append(s.jobs, job)
	s.stats[job.Name] = &JobStats{}
	return nil
}

// Start launches one goroutine per job. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	ctx, s.cancel = context.WithCancel(ctx)
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	for _, job := range jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, job)
	}
	s.logger.Info("Scheduler started", zap.Int("jobs", len(jobs)))
}

// Stop cancels every job and waits for in-flight runs, or until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether Start has been called without a matching Stop.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Stats returns a copy of the run counters for name.
func (s *Scheduler) Stats(name string) (JobStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stats[name]
	if !ok {
		return JobStats{}, false
	}
	return *st, true
}

func (s *Scheduler) runLoop(ctx context.Context, job Job) {
	defer s.wg.Done()

	if job.RunOnStart {
		s.execute(ctx, job)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.execute(ctx, job)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job Job) {
	err := s.safeRun(ctx, job)

	s.mu.Lock()
	st := s.stats[job.Name]
	st.Runs++
	st.LastRun = time.Now()
	if err != nil {
		st.Failures++
		st.LastError = err.Error()
	} else {
		st.LastError = ""
	}
	s.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		s.logger.Warn("Scheduled job failed",
			zap.String("job", job.Name),
			zap.Error(err),
		)
	}
}

// safeRun keeps a panicking job from taking the process down.
func (s *Scheduler) safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %q panicked: %v", job.Name, r)
		}
	}()
	return job.Run(ctx)
}
