package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iss_overhead_notifier/internal/domain/daylight"
	"iss_overhead_notifier/internal/domain/observer"
	"iss_overhead_notifier/internal/infra/retry"
)

// flakyProvider fails the first failures calls, then returns w.
type flakyProvider struct {
	w        daylight.Window
	err      error
	failures int
	calls    int
}

func (f *flakyProvider) Window(context.Context, observer.Coordinate) (daylight.Window, error) {
	f.calls++
	if f.calls <= f.failures {
		return daylight.Window{}, f.err
	}
	return f.w, nil
}

func fastPolicy() *retry.Policy {
	p := retry.NewPolicy(logrus.NewEntry(logrus.New()))
	p.InitialInterval = time.Millisecond
	p.MaxInterval = 2 * time.Millisecond
	return p
}

func TestFallbackWaitsForPrimaryRetries(t *testing.T) {
	primary := &flakyProvider{w: winter, err: errors.New("connection reset"), failures: 1}
	secondary := &flakyProvider{w: daylight.Window{Sunrise: time.Unix(1, 0), Sunset: time.Unix(2, 0)}}

	sun := &daylight.Fallback{
		Primary:   NewRetryingProvider(primary, fastPolicy(), "sun_times"),
		Secondary: secondary,
	}
	got, err := sun.Window(context.Background(), home)

	require.NoError(t, err)
	assert.Equal(t, winter, got)
	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackAfterPrimaryRetriesSpent(t *testing.T) {
	primary := &flakyProvider{err: errors.New("503"), failures: 100}
	secondary := &flakyProvider{w: winter}

	sun := &daylight.Fallback{
		Primary:   NewRetryingProvider(primary, fastPolicy(), "sun_times"),
		Secondary: secondary,
	}
	got, err := sun.Window(context.Background(), home)

	require.NoError(t, err)
	assert.Equal(t, winter, got)
	assert.Equal(t, 4, primary.calls) // first try plus three retries
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackKeepsBothErrorsWhenPrimaryIsPermanent(t *testing.T) {
	badStatus := errors.New("sunrise-sunset did not report OK")
	primary := &flakyProvider{err: retry.Permanent(badStatus), failures: 100}
	secondary := &flakyProvider{err: errors.New("no sunrise today"), failures: 100}

	sun := &daylight.Fallback{
		Primary:   NewRetryingProvider(primary, fastPolicy(), "sun_times"),
		Secondary: secondary,
	}
	_, err := sun.Window(context.Background(), home)

	require.Error(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.ErrorIs(t, err, badStatus)
	var perm *backoff.PermanentError
	assert.False(t, errors.As(err, &perm))

	// An outer retry loop must still report the secondary failure.
	p := fastPolicy()
	p.MaxRetries = 0
	outer := p.Do(context.Background(), "outer", func(ctx context.Context) error {
		_, err := sun.Window(ctx, home)
		return err
	})
	assert.Contains(t, outer.Error(), "no sunrise today")
}
