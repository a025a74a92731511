// Package location provides great-circle distance helpers
package location

import "math"

const (
	earthRadiusMeters = 6371000
	metersPerMile     = 1609.344
)

// Haversine calculates the distance in meters between two lat/lng points
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// MetersToMiles converts meters to miles
func MetersToMiles(meters float64) float64 {
	return meters / metersPerMile
}

// GreatCircleMiles returns the distance in miles between two lat/lng points
func GreatCircleMiles(lat1, lng1, lat2, lng2 float64) float64 {
	return MetersToMiles(Haversine(lat1, lng1, lat2, lng2))
}
