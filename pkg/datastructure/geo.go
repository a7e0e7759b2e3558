package datastructure

import (
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/util"
)

// GeoPoint. one position sample of a tracked aerial object. Altitude (meters) is optional.
type GeoPoint struct {
	Lat    float64
	Lon    float64
	Alt    float64
	HasAlt bool
}

func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Lat: lat, Lon: lon}
}

func NewGeoPointWithAltitude(lat, lon, alt float64) GeoPoint {
	return GeoPoint{Lat: lat, Lon: lon, Alt: alt, HasAlt: true}
}

// IsValid. every present field is finite.
func (p GeoPoint) IsValid() bool {
	if !util.IsFinite(p.Lat, p.Lon) {
		return false
	}
	return !p.HasAlt || util.IsFinite(p.Alt)
}

func (p GeoPoint) Coordinate() geo.Coordinate {
	return geo.NewCoordinate(p.Lat, p.Lon)
}

func Coordinates(points []GeoPoint) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(points))
	for i, p := range points {
		coords[i] = p.Coordinate()
	}
	return coords
}
