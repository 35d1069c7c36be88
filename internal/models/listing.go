package models

// Coordinates is a WGS84 latitude/longitude pair in degrees
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Valid reports whether the pair lies within [-90,90] x [-180,180]
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Listing represents one rentable apartment
type Listing struct {
	ID          int64       `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Area        string      `json:"area" db:"area"`   // categorical slug, e.g. "ciutat-vella"
	Price       float64     `json:"price" db:"price"` // EUR per month
	Beds        int         `json:"beds" db:"beds"`
	Baths       int         `json:"baths" db:"baths"`
	Size        float64     `json:"size" db:"size"` // m²
	Features    []string    `json:"features"`
	Coordinates Coordinates `json:"coordinates"`
	Description string      `json:"description" db:"description"`
	ImageURL    string      `json:"imageUrl,omitempty" db:"image_url"`
}

// HasFeature reports whether the listing carries the exact tag
func (l Listing) HasFeature(tag string) bool {
	for _, f := range l.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// ListingsResponse is the payload of a filtered listing query
type ListingsResponse struct {
	Data     []Listing     `json:"data"`
	Count    int           `json:"count"`
	Empty    bool          `json:"empty"`
	Cards    string        `json:"cards,omitempty"`
	Markers  []Marker      `json:"markers"`
	Viewport *Bounds       `json:"viewport,omitempty"`
	Prices   *PriceSummary `json:"prices,omitempty"`
	Criteria RawFilters    `json:"criteria"`
}

// PriceSummary describes the rents of a set of listings
type PriceSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// ListingDetail is a single listing with its rendered detail text
type ListingDetail struct {
	Listing
	AreaLabel          string  `json:"areaLabel"`
	Details            string  `json:"details"`
	DistanceToCenterKm float64 `json:"distanceToCenterKm"`
	PricePercentile    float64 `json:"pricePercentile"` // share of listings renting for the same or less
}
