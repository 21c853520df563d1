package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iss_overhead_notifier/internal/app"
)

type fakeChecker struct {
	calls atomic.Int32
	out   app.Outcome
	err   error
	block bool
}

func (f *fakeChecker) RunCheck(ctx context.Context) (app.Outcome, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return app.Outcome{}, ctx.Err()
	}
	return f.out, f.err
}

func quietLogger() *logrus.Entry {
	l, _ := test.NewNullLogger()
	return logrus.NewEntry(l)
}

func TestRunOnceLogsOutcome(t *testing.T) {
	l, hook := test.NewNullLogger()
	checker := &fakeChecker{out: app.Outcome{Overhead: true, Daylight: true, Notified: true}}
	s := NewWatchScheduler(checker, logrus.NewEntry(l), "@every 60s")

	s.runOnce()

	assert.Equal(t, int32(1), checker.calls.Load())
	assert.Equal(t, 1, s.Runs())
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Watch iteration complete.", entry.Message)
	assert.Equal(t, true, entry.Data["notified"])
}

func TestRunOnceLogsErrorAndContinues(t *testing.T) {
	l, hook := test.NewNullLogger()
	checker := &fakeChecker{err: errors.New("failed to get ISS position: timeout")}
	s := NewWatchScheduler(checker, logrus.NewEntry(l), "@every 60s")

	s.runOnce()
	s.runOnce()

	assert.Equal(t, int32(2), checker.calls.Load())
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
}

func TestRunOnceAfterStopDoesNothing(t *testing.T) {
	checker := &fakeChecker{}
	s := NewWatchScheduler(checker, quietLogger(), "@every 60s")
	require.NoError(t, s.Start())
	s.Stop()

	s.runOnce()
	assert.Equal(t, int32(0), checker.calls.Load())
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := NewWatchScheduler(&fakeChecker{}, quietLogger(), "every minute please")
	assert.Error(t, s.Start())
}

func TestSchedulerRunsOnInterval(t *testing.T) {
	checker := &fakeChecker{}
	s := NewWatchScheduler(checker, quietLogger(), "@every 1s")
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return checker.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)
}

func TestStopCancelsRunningIteration(t *testing.T) {
	checker := &fakeChecker{block: true}
	s := NewWatchScheduler(checker, quietLogger(), "@every 1s")
	require.NoError(t, s.Start())

	require.Eventually(t, func() bool { return checker.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return while an iteration was running")
	}
}
