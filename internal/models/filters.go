package models

// RawFilters holds the filter control values exactly as the client sent them
type RawFilters struct {
	Area    string `form:"area" json:"area"`       // area slug or "all"
	Price   string `form:"price" json:"price"`     // "800-1200", "1600+" or "all"
	Beds    string `form:"beds" json:"beds"`       // "1", "2", "3" (top band) or "all"
	Feature string `form:"feature" json:"feature"` // exact tag or "all"
}

// ViewportFilter represents a bounding-box query over listing coordinates.
// Pointers keep 0 a valid coordinate while still requiring all four.
type ViewportFilter struct {
	RawFilters
	MinLat *float64 `form:"minLat" binding:"required,min=-90,max=90"`
	MinLon *float64 `form:"minLon" binding:"required,min=-180,max=180"`
	MaxLat *float64 `form:"maxLat" binding:"required,min=-90,max=90"`
	MaxLon *float64 `form:"maxLon" binding:"required,min=-180,max=180"`
}

// NewViewportFilter builds a complete viewport query
func NewViewportFilter(raw RawFilters, minLat, minLon, maxLat, maxLon float64) ViewportFilter {
	return ViewportFilter{RawFilters: raw, MinLat: &minLat, MinLon: &minLon, MaxLat: &maxLat, MaxLon: &maxLon}
}

// Box returns the bounding box, false when a corner coordinate is missing
func (f ViewportFilter) Box() (Bounds, bool) {
	if f.MinLat == nil || f.MinLon == nil || f.MaxLat == nil || f.MaxLon == nil {
		return Bounds{}, false
	}
	return Bounds{MinLat: *f.MinLat, MinLon: *f.MinLon, MaxLat: *f.MaxLat, MaxLon: *f.MaxLon}, true
}

// AreaOption is one selectable area
type AreaOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FilterOptions describes the values the filter controls can take
type FilterOptions struct {
	Areas       []AreaOption `json:"areas"`
	PriceBands  []string     `json:"priceBands"`
	Beds        []string     `json:"beds"`
	Features    []string     `json:"features"`
	MinPrice    float64      `json:"minPrice"`
	MaxPrice    float64      `json:"maxPrice"`
	MedianPrice float64      `json:"medianPrice"`
	Total       int          `json:"total"`
}
