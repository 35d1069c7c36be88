// Package mapview keeps a map surface's markers and viewport in step with the
// visible listings.
package mapview

import (
	"sort"
	"sync"

	"github.com/valencia-move/listings-backend/internal/models"
)

// Surface is the map display receiving marker and viewport calls
type Surface interface {
	AddMarker(m models.Marker) int
	RemoveMarker(handle int)
	FitBounds(b models.Bounds)
}

// Layer is an in-memory Surface. Its snapshot is what the browser map draws.
type Layer struct {
	mu       sync.Mutex
	markers  map[int]models.Marker
	next     int
	viewport *models.Bounds
	fits     int
}

// NewLayer returns an empty layer with no viewport
func NewLayer() *Layer {
	return &Layer{markers: make(map[int]models.Marker)}
}

// AddMarker places m on the layer and returns its handle
func (l *Layer) AddMarker(m models.Marker) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.markers[l.next] = m
	return l.next
}

// RemoveMarker drops the marker with the given handle; unknown handles are ignored
func (l *Layer) RemoveMarker(handle int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.markers, handle)
}

// FitBounds moves the viewport to b
func (l *Layer) FitBounds(b models.Bounds) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewport = &b
	l.fits++
}

// SetViewport sets the initial viewport without counting as a fit
func (l *Layer) SetViewport(b models.Bounds) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewport = &b
}

// Markers returns the markers in the order they were added
func (l *Layer) Markers() []models.Marker {
	l.mu.Lock()
	defer l.mu.Unlock()

	handles := make([]int, 0, len(l.markers))
	for h := range l.markers {
		handles = append(handles, h)
	}
	sort.Ints(handles)

	out := make([]models.Marker, 0, len(handles))
	for _, h := range handles {
		out = append(out, l.markers[h])
	}
	return out
}

// Viewport returns the current viewport, nil if none was ever set
func (l *Layer) Viewport() *models.Bounds {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.viewport == nil {
		return nil
	}
	v := *l.viewport
	return &v
}

// FitCalls returns how many times FitBounds was called
func (l *Layer) FitCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fits
}
