package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/adhocore/gronx"
)

// EveryMinute fires at the start of every minute.
const EveryMinute = "* * * * *"

var (
	ErrInvalidSchedule = errors.New("invalid cron schedule")
	ErrAlreadyRunning  = errors.New("scheduler already running")
)

// Job is the unit of work run on every tick.
type Job func(ctx context.Context)

type Option func(*Scheduler)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithTimer replaces time.After. Tests use it to fire ticks by hand.
func WithTimer(after func(time.Duration) <-chan time.Time) Option {
	return func(s *Scheduler) {
		s.after = after
	}
}

// WithName sets the name used in log lines.
func WithName(name string) Option {
	return func(s *Scheduler) {
		s.name = name
	}
}

// Scheduler runs a Job on a cron schedule until stopped.
// Job runs never overlap, including runs started through RunNow.
type Scheduler struct {
	name  string
	expr  string
	job   Job
	now   func() time.Time
	after func(time.Duration) <-chan time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	runMu sync.Mutex
}

func New(expr string, job Job, opts ...Option) (*Scheduler, error) {
	if !gronx.New().IsValid(expr) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSchedule, expr)
	}
	if job == nil {
		return nil, errors.New("scheduler job is required")
	}

	s := &Scheduler{
		name:  "scheduler",
		expr:  expr,
		job:   job,
		now:   time.Now,
		after: time.After,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Start launches the scheduling loop. The loop exits when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(loopCtx, s.done)

	slog.InfoContext(ctx, "scheduler started",
		slog.String("scheduler", s.name),
		slog.String("schedule", s.expr),
	)

	return nil
}

// Stop cancels the loop and waits for an in-flight job to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	slog.Info("scheduler stopped", slog.String("scheduler", s.name))
}

// RunNow runs the job synchronously, waiting for any scheduled run to finish first.
func (s *Scheduler) RunNow(ctx context.Context) {
	s.runJob(ctx)
}

// NextRun returns the first tick strictly after t.
func (s *Scheduler) NextRun(t time.Time) (time.Time, error) {
	return gronx.NextTickAfter(s.expr, t, false)
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		now := s.now()
		next, err := s.NextRun(now)
		if err != nil {
			slog.ErrorContext(ctx, "failed to compute next scheduler tick",
				slog.String("scheduler", s.name),
				slog.String("schedule", s.expr),
				slog.String("error", err.Error()),
			)
			return
		}

		wait := next.Sub(now)
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-s.after(wait):
		}

		if ctx.Err() != nil {
			return
		}
		s.runJob(ctx)
	}
}

func (s *Scheduler) runJob(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "scheduled job panicked",
				slog.String("scheduler", s.name),
				slog.Any("panic", r),
			)
		}
	}()

	s.job(ctx)
}
