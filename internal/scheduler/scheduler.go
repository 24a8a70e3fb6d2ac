package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"skilltrack/internal/config"
)

// PendingCounter counts submitted ratings per reviewer
type PendingCounter interface {
	PendingCounts(ctx context.Context) (map[uint]int, error)
}

// DigestSender writes one digest notification per reviewer with pending work
type DigestSender interface {
	SendPendingDigests(ctx context.Context, counts map[uint]int) (int, error)
}

// taskTimeout bounds a single run of a scheduled task
const taskTimeout = 5 * time.Minute

// Scheduler handles periodic tasks
type Scheduler struct {
	pending  PendingCounter
	digests  DigestSender
	config   *config.SchedulerConfig
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler creates a new scheduler
func NewScheduler(pending PendingCounter, digests DigestSender, cfg *config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		pending:  pending,
		digests:  digests,
		config:   cfg,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Start starts all scheduled tasks
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler",
		"pending_digest_enabled", s.config.EnablePendingDigest,
		"pending_digest_hour", s.config.PendingDigestHour)

	if s.config.EnablePendingDigest {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.scheduleDailyTask(s.config.PendingDigestHour, 0, "pending_digest", s.runPendingDigest)
		}()
	}

	slog.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running tasks to return
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		slog.Info("Stopping scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// scheduleDailyTask runs a task daily at a specific time
func (s *Scheduler) scheduleDailyTask(hour, minute int, taskName string, task func(ctx context.Context)) {
	for {
		now := s.now()
		next := nextDailyRun(now, hour, minute)

		slog.Info("Next daily task scheduled", "task", taskName, "next_run", next.Format("2006-01-02 15:04:05"))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-timer.C:
			slog.Info("Running daily task", "task", taskName)
			s.run(task)
		case <-s.stopChan:
			timer.Stop()
			return
		}
	}
}

// run executes a task with a context that is cancelled on Stop
func (s *Scheduler) run(task func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		task(ctx)
	}()

	select {
	case <-done:
	case <-s.stopChan:
		cancel()
		<-done
	}
}

// nextDailyRun calculates the next daily run time
func nextDailyRun(from time.Time, hour, minute int) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), hour, minute, 0, 0, from.Location())

	// If the time has already passed today, schedule for tomorrow
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// runPendingDigest notifies every reviewer that has submitted ratings waiting
func (s *Scheduler) runPendingDigest(ctx context.Context) {
	if _, err := RunPendingDigest(ctx, s.pending, s.digests); err != nil {
		slog.Error("Failed to send pending digests", "error", err)
	}
}

// RunPendingDigest performs one digest run and returns the number of
// notifications written.
func RunPendingDigest(ctx context.Context, pending PendingCounter, digests DigestSender) (int, error) {
	counts, err := pending.PendingCounts(ctx)
	if err != nil {
		return 0, err
	}

	sent, err := digests.SendPendingDigests(ctx, counts)
	if err != nil {
		return 0, err
	}

	slog.Info("Pending digests sent", "reviewers", sent)
	return sent, nil
}
