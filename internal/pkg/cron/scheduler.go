// Package cron runs background jobs on fixed intervals. The sweep jobs it
// hosts are idempotent, so a tick firing twice or a restart replaying one
// is harmless.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs each registered job in its own goroutine. Register jobs
// before Start; Stop waits for in-flight runs to finish.
type Scheduler struct {
	jobs   []Job
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	s.logger.Info("job registered", "job", name, "interval", interval)
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(job)
	}

	s.logger.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop cancels the job contexts and blocks until every loop has exited.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// First run fires immediately so a deploy after a missed window
	// catches up without waiting a full interval.
	s.execute(job)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(job)
		}
	}
}

func (s *Scheduler) execute(job Job) {
	start := time.Now()
	if err := job.Fn(s.ctx); err != nil {
		s.logger.Error("job failed", "job", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	s.logger.Debug("job finished", "job", job.Name, "duration", time.Since(start))
}

// RunOnce executes every registered job a single time. Test hook.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			s.logger.Error("job failed", "job", job.Name, "error", err)
		}
	}
}
