// Package scheduler runs the background jobs of the pool on gocron.
// Jobs keep a small contract (Name, Description, Run) and the scheduler
// records the outcome of each run.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bolao-nfl/bolao-hub/pkg/logger"
	"github.com/go-co-op/gocron/v2"
)

// ══════════════════════════════════════════════════════════════════════════════
// JOB INTERFACE
// ══════════════════════════════════════════════════════════════════════════════

// Job defines the interface that all scheduled jobs must implement.
type Job interface {
	// Name returns the unique name of the job.
	Name() string

	// Run executes the job.
	// The context is cancelled when the scheduler is stopping.
	Run(ctx context.Context) error

	// Description returns a human-readable description of the job.
	Description() string
}

// JobResult contains the result of a job execution.
type JobResult struct {
	JobName     string
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	Success     bool
	Error       error
}

var (
	// ErrJobNotFound is returned by RunNow for an unregistered job.
	ErrJobNotFound = errors.New("scheduler: job not found")

	// ErrJobAlreadyRegistered is returned when a name is used twice.
	ErrJobAlreadyRegistered = errors.New("scheduler: job already registered")
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULER
// ══════════════════════════════════════════════════════════════════════════════

// Config contains configuration for the Scheduler.
type Config struct {
	// JobTimeout bounds a single run. Zero means no bound.
	JobTimeout time.Duration

	// StopTimeout is how long Stop waits for running jobs.
	StopTimeout time.Duration
}

// Scheduler runs registered jobs on fixed intervals. A job never overlaps
// with itself: a tick that arrives while it runs is skipped.
type Scheduler struct {
	s      gocron.Scheduler
	log    *logger.Logger
	config Config

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	jobs     map[string]Job
	lastRuns map[string]JobResult
}

// New creates a scheduler. Jobs only start running after Start.
func New(config Config, log *logger.Logger) (*Scheduler, error) {
	if config.StopTimeout <= 0 {
		config.StopTimeout = 30 * time.Second
	}
	log = log.With(logger.Component("scheduler"))

	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(gocronLogger{log: log}),
		gocron.WithStopTimeout(config.StopTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		s:        s,
		log:      log,
		config:   config,
		ctx:      ctx,
		cancel:   cancel,
		jobs:     make(map[string]Job),
		lastRuns: make(map[string]JobResult),
	}, nil
}

// Every registers job to run every interval, first run immediately on Start.
func (s *Scheduler) Every(interval time.Duration, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrJobAlreadyRegistered, job.Name())
	}

	_, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.execute(s.ctx, job) }),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", job.Name(), err)
	}

	s.jobs[job.Name()] = job
	s.log.Info("job registered",
		logger.String("job", job.Name()),
		logger.String("description", job.Description()),
		logger.Duration("interval", interval),
	)
	return nil
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.s.Start()
	s.log.Info("scheduler started", logger.Int("jobs_count", len(s.jobs)))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() error {
	s.cancel()
	if err := s.s.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	s.log.Info("scheduler stopped")
	return nil
}

// RunNow executes a registered job synchronously, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) (JobResult, error) {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return JobResult{}, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.execute(ctx, job), nil
}

// LastRun returns the outcome of the most recent run of a job.
func (s *Scheduler) LastRun(name string) (JobResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.lastRuns[name]
	return r, ok
}

func (s *Scheduler) execute(ctx context.Context, job Job) JobResult {
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	name := job.Name()
	startedAt := time.Now()
	s.log.Debug("job started", logger.String("job", name))

	err := job.Run(ctx)
	completedAt := time.Now()

	result := JobResult{
		JobName:     name,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		Duration:    completedAt.Sub(startedAt),
		Success:     err == nil,
		Error:       err,
	}

	s.mu.Lock()
	s.lastRuns[name] = result
	s.mu.Unlock()

	if err != nil {
		s.log.Error("job failed",
			logger.String("job", name),
			logger.Latency(result.Duration),
			logger.Err(err),
		)
	} else {
		s.log.Info("job completed",
			logger.String("job", name),
			logger.Latency(result.Duration),
		)
	}
	return result
}

// gocronLogger forwards gocron's own messages to the structured logger.
type gocronLogger struct {
	log *logger.Logger
}

func (l gocronLogger) Debug(msg string, args ...any) { l.log.Debug(msg, pairs(args)...) }
func (l gocronLogger) Info(msg string, args ...any)  { l.log.Info(msg, pairs(args)...) }
func (l gocronLogger) Warn(msg string, args ...any)  { l.log.Warn(msg, pairs(args)...) }
func (l gocronLogger) Error(msg string, args ...any) { l.log.Error(msg, pairs(args)...) }

// pairs turns alternating key/value arguments into fields.
func pairs(args []any) []logger.Field {
	fields := make([]logger.Field, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if err, isErr := args[i+1].(error); isErr {
			fields = append(fields, logger.String(key, err.Error()))
			continue
		}
		fields = append(fields, logger.Any(key, args[i+1]))
	}
	return fields
}
