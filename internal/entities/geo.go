package entities

import "math"

// Coordinates is a [lat, lng] pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// GeoPoint holds optional coordinates as they arrive from residents.
type GeoPoint struct {
	Latitude  *float64
	Longitude *float64
}

// Resolve returns the point when both parts are finite numbers within geographic range, otherwise [0,0].
func (g GeoPoint) Resolve() Coordinates {
	if !g.IsValid() {
		return Coordinates{}
	}
	return Coordinates{Latitude: *g.Latitude, Longitude: *g.Longitude}
}

func (g GeoPoint) IsValid() bool {
	if g.Latitude == nil || g.Longitude == nil {
		return false
	}
	lat, lng := *g.Latitude, *g.Longitude
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

type Address struct {
	Line       string
	Street     string
	City       string
	PostalCode string
}

type Location struct {
	Coordinates Coordinates
	Address     string
}
