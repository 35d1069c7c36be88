package models

// Bounds is a geographic bounding box in degrees
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

// Marker is a map pin for one listing
type Marker struct {
	ListingID int64       `json:"listingId"`
	Position  Coordinates `json:"position"`
	Geohash   string      `json:"geohash"`
	Popup     Popup       `json:"popup"`
}

// Popup summarizes a listing inside a marker
type Popup struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	Description string `json:"description"`
}
