package domain

import "math"

// GeodesicKm computes the great-circle distance in kilometers between two
// WGS84 points using the haversine formula.
func GeodesicKm(a, b Coordinate) float64 {
	const earthRadiusKm = 6371.0
	const deg2rad = math.Pi / 180.0

	dLat := (b.Lat - a.Lat) * deg2rad
	dLng := (b.Lng - a.Lng) * deg2rad
	latA := a.Lat * deg2rad
	latB := b.Lat * deg2rad

	sinDLat := math.Sin(dLat / 2)
	sinDLng := math.Sin(dLng / 2)
	h := sinDLat*sinDLat + math.Cos(latA)*math.Cos(latB)*sinDLng*sinDLng
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// MinutesAtConstantSpeed returns the travel time in minutes for a distance
// covered at a constant speed. Independent of any resolved route data.
func MinutesAtConstantSpeed(distanceKm, speedKmh float64) (float64, error) {
	if speedKmh <= 0 {
		return 0, ErrInvalidSpeed
	}
	return (distanceKm / speedKmh) * 60, nil
}
