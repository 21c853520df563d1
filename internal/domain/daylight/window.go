// internal/domain/daylight/window.go
package daylight

import (
	"context"
	"time"

	"iss_overhead_notifier/internal/domain/observer"
)

// Window is the span between sunrise and sunset for one day at one place.
type Window struct {
	Sunrise time.Time
	Sunset  time.Time
}

// SunriseHour returns the hour of day of sunrise on the clock of loc.
func (w Window) SunriseHour(loc *time.Location) int {
	return w.Sunrise.In(loc).Hour()
}

// SunsetHour returns the hour of day of sunset on the clock of loc.
func (w Window) SunsetHour(loc *time.Location) int {
	return w.Sunset.In(loc).Hour()
}

// Contains reports whether hour falls in [sunrise hour, sunset hour], both read
// on the clock of loc. Only whole hours are compared.
func (w Window) Contains(hour int, loc *time.Location) bool {
	return w.SunriseHour(loc) <= hour && hour <= w.SunsetHour(loc)
}

// Provider looks up today's daylight window for a coordinate.
type Provider interface {
	Window(ctx context.Context, c observer.Coordinate) (Window, error)
}
