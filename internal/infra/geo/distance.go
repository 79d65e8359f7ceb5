package geo

import "math"

const earthRadiusKm = 6371.0

// Haversine computes great-circle distances. It implements the
// DistanceEstimator port: the serving layer pre-computes distances so the
// engine never has to.
type Haversine struct{}

func (Haversine) DistanceKm(originLat, originLon, lat, lon float64) float64 {
	dLat := radians(lat - originLat)
	dLon := radians(lon - originLon)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(originLat))*math.Cos(radians(lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
