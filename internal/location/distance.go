package location

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
	EarthRadiusKm = 6371.0
	// MilesPerKm converts kilometers to statute miles.
	MilesPerKm = 0.621371
)

// Route is the pair of endpoints a distance was computed between.
type Route struct {
	From Coordinates `json:"from"`
	To   Coordinates `json:"to"`
}

// DistanceResult is the great-circle distance between two points.
type DistanceResult struct {
	DistanceKm    float64 `json:"distance_km"`
	DistanceMiles float64 `json:"distance_miles"`
	Coordinates   Route   `json:"coordinates"`
}

// Distance computes the Haversine great-circle distance between two points.
// Both figures are rounded to two decimals; miles are derived from the
// unrounded kilometer value.
func Distance(from, to Coordinates) DistanceResult {
	km := haversine(from, to)
	return DistanceResult{
		DistanceKm:    round2(km),
		DistanceMiles: round2(km * MilesPerKm),
		Coordinates:   Route{From: from, To: to},
	}
}

func haversine(from, to Coordinates) float64 {
	dLat := radians(to.Lat - from.Lat)
	dLon := radians(to.Lon - from.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(from.Lat))*math.Cos(radians(to.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
