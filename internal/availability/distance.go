package availability

import "math"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers. Used for "radius" eligibility; driving distances come from an
// external provider.
func HaversineKm(a, b Coordinates) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// WithinRadius applies the delivery-radius threshold to an already computed
// distance. The distance figure itself is the caller's responsibility:
// straight-line for "radius" settings, external provider for "driving".
func WithinRadius(settings DeliverySettings, distanceKm float64) bool {
	return distanceKm <= settings.RadiusKm
}
