// internal/infra/retry/retry.go
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

const (
	defaultInitialInterval = 1 * time.Second
	defaultMaxInterval     = 10 * time.Second
	defaultMaxRetries      = 3
)

// Policy is an exponential backoff applied around a single network call.
type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
	logger          *logrus.Entry
}

func NewPolicy(logger *logrus.Entry) *Policy {
	return &Policy{
		InitialInterval: defaultInitialInterval,
		MaxInterval:     defaultMaxInterval,
		MaxRetries:      defaultMaxRetries,
		logger:          logger,
	}
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a Permanent error, runs out of retries
// or ctx is done. The last error from op is returned.
func (p *Policy) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.MaxElapsedTime = 0 // bounded by MaxRetries and ctx instead
	b.Reset()

	attempt := 0
	return backoff.RetryNotify(
		func() error {
			attempt++
			return op(ctx)
		},
		backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx),
		func(err error, wait time.Duration) {
			onRetry(name)
			if p.logger != nil {
				p.logger.WithFields(logrus.Fields{
					"call":    name,
					"attempt": attempt,
					"wait":    wait.String(),
				}).WithError(err).Warn("Call failed, retrying")
			}
		},
	)
}

var onRetry = func(string) {}

// OnRetry registers a hook called before every retry, e.g. to count retries.
func OnRetry(fn func(name string)) {
	onRetry = fn
}
