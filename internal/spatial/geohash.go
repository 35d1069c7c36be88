package spatial

import (
	"github.com/mmcloughlin/geohash"

	"github.com/valencia-move/listings-backend/internal/models"
)

// MarkerGeohashPrecision gives cells of roughly 150m x 150m
const MarkerGeohashPrecision = 7

// Geohash encodes c at the given precision (1-12 characters)
func Geohash(c models.Coordinates, precision uint) string {
	if precision < 1 {
		precision = 1
	}
	if precision > 12 {
		precision = 12
	}
	return geohash.EncodeWithPrecision(c.Lat, c.Lon, precision)
}
