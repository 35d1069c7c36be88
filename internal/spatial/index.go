package spatial

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/valencia-move/listings-backend/internal/models"
)

const (
	tolerance   = 1e-7
	minChildren = 2
	maxChildren = 8
	dimensions  = 2
)

// spatialItem wraps a listing position for R-Tree indexing
type spatialItem struct {
	pos      int // position in the source collection
	location models.Coordinates
	rect     *rtreego.Rect
}

func (si *spatialItem) Bounds() *rtreego.Rect {
	return si.rect
}

// Index is an R-Tree over listing coordinates. It is read-only once built,
// so concurrent searches need no locking.
type Index struct {
	tree *rtreego.Rtree
	size int
}

// NewIndex builds an index over listings
func NewIndex(listings []models.Listing) *Index {
	idx := &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
	for i, l := range listings {
		p := rtreego.Point{l.Coordinates.Lat, l.Coordinates.Lon}
		idx.tree.Insert(&spatialItem{pos: i, location: l.Coordinates, rect: p.ToRect(tolerance)})
		idx.size++
	}
	return idx
}

// Size returns the number of indexed listings
func (idx *Index) Size() int {
	return idx.size
}

// Search returns the collection positions of listings inside b, in ascending order
func (idx *Index) Search(b models.Bounds) ([]int, error) {
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return nil, fmt.Errorf("invalid bounding box: min corner (%f, %f) above max corner (%f, %f)",
			b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
	}

	// rtreego rejects zero-length sides
	latSpan := b.MaxLat - b.MinLat
	lonSpan := b.MaxLon - b.MinLon
	if latSpan == 0 {
		latSpan = tolerance
	}
	if lonSpan == 0 {
		lonSpan = tolerance
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.MinLat, b.MinLon}, []float64{latSpan, lonSpan})
	if err != nil {
		return nil, fmt.Errorf("invalid bounding box: %w", err)
	}

	results := idx.tree.SearchIntersect(rect)
	positions := make([]int, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialItem)
		if !ok {
			continue
		}
		// Verify the point is within the box boundaries
		if Contains(b, item.location) {
			positions = append(positions, item.pos)
		}
	}
	sort.Ints(positions)
	return positions, nil
}
