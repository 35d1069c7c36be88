package spatial

import (
	"github.com/golang/geo/r1"

	"github.com/valencia-move/listings-backend/internal/models"
)

// DefaultPadding is the fraction of the bounds' height and width added on each side
// when fitting a viewport
const DefaultPadding = 0.1

var (
	latRange = r1.Interval{Lo: -90, Hi: 90}
	lonRange = r1.Interval{Lo: -180, Hi: 180}
)

// BoundsBuilder accumulates points into a degree box. Longitude is a plain
// min/max so the box never wraps the antimeridian.
type BoundsBuilder struct {
	lat r1.Interval
	lon r1.Interval
}

// NewBoundsBuilder returns an empty builder
func NewBoundsBuilder() *BoundsBuilder {
	return &BoundsBuilder{lat: r1.EmptyInterval(), lon: r1.EmptyInterval()}
}

// Add extends the bounds to include c
func (b *BoundsBuilder) Add(c models.Coordinates) {
	b.lat = b.lat.AddPoint(c.Lat)
	b.lon = b.lon.AddPoint(c.Lon)
}

// Empty reports whether no point has been added
func (b *BoundsBuilder) Empty() bool {
	return b.lat.IsEmpty()
}

// Bounds returns the tight bounding box, false when empty
func (b *BoundsBuilder) Bounds() (models.Bounds, bool) {
	if b.Empty() {
		return models.Bounds{}, false
	}
	return toBounds(b.lat, b.lon), true
}

// Padded returns the bounding box grown by ratio of its size on every side,
// clamped to valid coordinates, false when empty
func (b *BoundsBuilder) Padded(ratio float64) (models.Bounds, bool) {
	if b.Empty() {
		return models.Bounds{}, false
	}
	lat := b.lat.Expanded(b.lat.Length() * ratio).Intersection(latRange)
	lon := b.lon.Expanded(b.lon.Length() * ratio).Intersection(lonRange)
	return toBounds(lat, lon), true
}

// Contains reports whether c lies inside bounds, edges included
func Contains(b models.Bounds, c models.Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

func toBounds(lat, lon r1.Interval) models.Bounds {
	return models.Bounds{
		MinLat: lat.Lo,
		MinLon: lon.Lo,
		MaxLat: lat.Hi,
		MaxLon: lon.Hi,
	}
}
