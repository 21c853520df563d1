package app

import (
	"context"

	"iss_overhead_notifier/internal/domain/daylight"
	"iss_overhead_notifier/internal/domain/observer"
)

// RetryingProvider runs every Window lookup of Provider under Retrier. Put it
// inside a daylight.Fallback so the fallback is only asked once the retries
// are spent.
type RetryingProvider struct {
	Provider daylight.Provider
	Retrier  Retrier
	Name     string
}

func NewRetryingProvider(p daylight.Provider, r Retrier, name string) *RetryingProvider {
	return &RetryingProvider{Provider: p, Retrier: r, Name: name}
}

// Window implements daylight.Provider. The returned error is never a
// permanent-marked one: the retrier strips that marker, so an outer retry
// loop sees the full error text.
func (p *RetryingProvider) Window(ctx context.Context, c observer.Coordinate) (daylight.Window, error) {
	var w daylight.Window
	err := p.Retrier.Do(ctx, p.Name, func(ctx context.Context) error {
		var err error
		w, err = p.Provider.Window(ctx, c)
		return err
	})
	if err != nil {
		return daylight.Window{}, err
	}
	return w, nil
}
