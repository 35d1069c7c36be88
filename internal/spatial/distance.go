package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/valencia-move/listings-backend/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// ValenciaCenter is Plaça de l'Ajuntament, where the map opens
var ValenciaCenter = models.Coordinates{Lat: 39.4699, Lon: -0.3763}

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceKm returns the great-circle distance between a and b in kilometers
func DistanceKm(a, b models.Coordinates) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) / 1000
}
