package astro

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iss_overhead_notifier/internal/domain/observer"
)

func TestWindowSantaCruz(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	p := &Provider{Now: func() time.Time {
		return time.Date(2020, time.October, 25, 12, 0, 0, 0, la)
	}}
	w, err := p.Window(context.Background(), observer.Coordinate{Latitude: 37, Longitude: -122})
	require.NoError(t, err)

	// Sunrise is around 07:26 and sunset around 18:19 local time.
	assert.Equal(t, 7, w.SunriseHour(la))
	assert.Equal(t, 18, w.SunsetHour(la))
	assert.True(t, w.Contains(12, la))
	assert.False(t, w.Contains(21, la))
}

func TestWindowCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Window(ctx, observer.Coordinate{})
	assert.ErrorIs(t, err, context.Canceled)
}
