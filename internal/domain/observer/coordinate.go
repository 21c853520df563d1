// internal/domain/observer/coordinate.go
package observer

import (
	"fmt"

	"iss_overhead_notifier/internal/domain/station"
)

// ToleranceDegrees is the half-width of the band, per axis, inside which the
// station counts as overhead.
const ToleranceDegrees = 5

// Coordinate is the fixed place the program watches from, in whole degrees.
type Coordinate struct {
	Latitude  int
	Longitude int
}

// Overhead reports whether p lies within ToleranceDegrees of c on both axes.
// Each axis is a closed interval checked on its own; this is not a distance.
func (c Coordinate) Overhead(p station.Position) bool {
	return within(p.Latitude, c.Latitude) && within(p.Longitude, c.Longitude)
}

func within(v float64, center int) bool {
	lo := float64(center - ToleranceDegrees)
	hi := float64(center + ToleranceDegrees)
	return lo <= v && v <= hi
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Latitude, c.Longitude)
}
