// Package astro computes daylight windows locally, without a network call.
package astro

import (
	"context"
	"errors"
	"time"

	"github.com/keep94/sunrise"

	"iss_overhead_notifier/internal/domain/daylight"
	"iss_overhead_notifier/internal/domain/observer"
)

var ErrNoSunEvents = errors.New("no sunrise/sunset on this day at this latitude")

// Provider computes the daylight window for the day containing Now().
type Provider struct {
	Now func() time.Time
}

func NewProvider() *Provider {
	return &Provider{Now: time.Now}
}

// Window implements daylight.Provider.
func (p *Provider) Window(ctx context.Context, c observer.Coordinate) (daylight.Window, error) {
	if err := ctx.Err(); err != nil {
		return daylight.Window{}, err
	}

	var s sunrise.Sunrise
	s.Around(float64(c.Latitude), float64(c.Longitude), p.Now())

	rise, set := s.Sunrise(), s.Sunset()
	// Around gives back a degenerate pair during polar day or night.
	if !set.After(rise) {
		return daylight.Window{}, ErrNoSunEvents
	}
	return daylight.Window{Sunrise: rise, Sunset: set}, nil
}
