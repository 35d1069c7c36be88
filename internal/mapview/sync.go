package mapview

import (
	"fmt"
	"log/slog"

	"github.com/valencia-move/listings-backend/internal/models"
	"github.com/valencia-move/listings-backend/internal/render"
	"github.com/valencia-move/listings-backend/internal/spatial"
)

// Options configures a Sync
type Options struct {
	// Strict panics on a listing with invalid coordinates instead of skipping it
	Strict  bool
	Padding float64
	Logger  *slog.Logger
}

// Sync owns the markers it placed on one surface. It is not safe for
// concurrent use; each view drives its own Sync.
type Sync struct {
	surface Surface
	opts    Options
	handles []int
}

// NewSync binds a Sync to surface. A nil surface turns every call into a no-op.
func NewSync(surface Surface, opts Options) *Sync {
	if opts.Padding <= 0 {
		opts.Padding = spatial.DefaultPadding
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Sync{surface: surface, opts: opts}
}

// Sync removes every marker from the previous call, adds one marker per listing
// and fits the viewport to the new markers. With no listings the viewport is
// left where it was.
func (s *Sync) Sync(listings []models.Listing) []models.Marker {
	if s.surface == nil {
		return nil
	}

	for _, h := range s.handles {
		s.surface.RemoveMarker(h)
	}
	s.handles = s.handles[:0]

	markers := make([]models.Marker, 0, len(listings))
	bounds := spatial.NewBoundsBuilder()
	for _, l := range listings {
		if !l.Coordinates.Valid() {
			if s.opts.Strict {
				panic(fmt.Sprintf("mapview: listing %d has invalid coordinates (%f, %f)", l.ID, l.Coordinates.Lat, l.Coordinates.Lon))
			}
			s.opts.Logger.Warn("skipping listing with invalid coordinates",
				"listing_id", l.ID, "lat", l.Coordinates.Lat, "lon", l.Coordinates.Lon)
			continue
		}

		m := MarkerFor(l)
		s.handles = append(s.handles, s.surface.AddMarker(m))
		markers = append(markers, m)
		bounds.Add(l.Coordinates)
	}

	if viewport, ok := bounds.Padded(s.opts.Padding); ok {
		s.surface.FitBounds(viewport)
	}
	return markers
}

// Count returns how many markers this Sync currently has on the surface
func (s *Sync) Count() int {
	return len(s.handles)
}

// MarkerFor builds the marker and popup for a listing
func MarkerFor(l models.Listing) models.Marker {
	return models.Marker{
		ListingID: l.ID,
		Position:  l.Coordinates,
		Geohash:   spatial.Geohash(l.Coordinates, spatial.MarkerGeohashPrecision),
		Popup: models.Popup{
			Title:       l.Title,
			Price:       render.Price(l.Price),
			Description: l.Description,
		},
	}
}
