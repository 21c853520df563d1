package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"iss_overhead_notifier/internal/app" // For Outcome
	"iss_overhead_notifier/internal/infra/metrics"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultRunTimeout = 2 * time.Minute

// Checker runs one watch iteration.
type Checker interface {
	RunCheck(ctx context.Context) (app.Outcome, error)
}

// WatchScheduler runs the checker on a cron spec, one iteration at a time.
type WatchScheduler struct {
	cronEngine *cron.Cron
	checker    Checker
	logger     *logrus.Entry
	spec       string
	runTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	runs   int
}

func NewWatchScheduler(checker Checker, logger *logrus.Entry, spec string) *WatchScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cronLogger := cron.PrintfLogger(logger)
	return &WatchScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		checker:    checker,
		logger:     logger,
		spec:       spec, // e.g., "@every 60s"
		runTimeout: defaultRunTimeout,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start registers the watch job and starts the cron engine. The first run
// happens one interval after Start.
func (s *WatchScheduler) Start() error {
	s.logger.Infof("Starting watch scheduler with spec %q...", s.spec)

	_, err := s.cronEngine.AddFunc(s.spec, s.runOnce)
	if err != nil {
		return fmt.Errorf("could not add watch cron job: %w", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Watch scheduler started.")
	return nil
}

// runOnce is the cron job body. Errors end the iteration; the next tick
// starts fresh.
func (s *WatchScheduler) runOnce() {
	if s.ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
	defer cancel()

	s.mu.Lock()
	s.runs++
	run := s.runs
	s.mu.Unlock()

	log := s.logger.WithField("run", run)
	log.Debug("Watch job triggered.")

	out, err := s.checker.RunCheck(ctx)
	if err != nil {
		metrics.ObserveCheckError()
		log.WithError(err).Error("Watch iteration failed")
		return
	}
	log.WithFields(logrus.Fields{
		"overhead": out.Overhead,
		"daylight": out.Daylight,
		"notified": out.Notified,
	}).Info("Watch iteration complete.")
}

// Runs returns how many iterations have been started.
func (s *WatchScheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// Stop cancels any running iteration and waits for it to return.
func (s *WatchScheduler) Stop() {
	s.logger.Info("Stopping watch scheduler...")
	s.cancel()
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Watch scheduler gracefully stopped.")
}
