// internal/domain/station/position.go
package station

import (
	"context"
	"time"
)

// Position is the sub-station point reported by a tracking API. It is only
// meaningful for the instant it was queried.
type Position struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time // Report time as given by the API, zero if absent
}

// Locator reports where the station is right now.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}
