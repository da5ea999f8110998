package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

func (c Coordinates) Point() orb.Point { return orb.Point{c.Lon, c.Lat} }

func CoordinatesFromPoint(p orb.Point) Coordinates { return Coordinates{Lon: p.Lon(), Lat: p.Lat()} }

// Validate rejects NaN and out-of-range values.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("invalid coordinates (lat=%v, lon=%v)", c.Lat, c.Lon)
	}
	return nil
}

// "lat,lng", the order most map APIs expect in query strings.
func (c Coordinates) LatLngString() string { return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon) }
