package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

// Less. lexicographic order on (lat, lon), used to pin tie-breaks.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Lat != o.Lat {
		return c.Lat < o.Lat
	}
	return c.Lon < o.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

const (
	earthRadiusM = 6371008.8
)

// GeodesicDistanceMeters. great-circle distance between two lat/lon points on the mean earth sphere, in meters.
// It differs from the WGS-84 ellipsoidal geodesic by at most about 0.5%.
func GeodesicDistanceMeters(latOne, lonOne, latTwo, lonTwo float64) float64 {
	if latOne == latTwo && lonOne == lonTwo {
		return 0
	}
	a := s2.LatLngFromDegrees(latOne, lonOne)
	b := s2.LatLngFromDegrees(latTwo, lonTwo)
	return a.Distance(b).Radians() * earthRadiusM
}

func CoordinateDistanceMeters(a, b Coordinate) float64 {
	return GeodesicDistanceMeters(a.Lat, a.Lon, b.Lat, b.Lon)
}

// L1DegreeDistance. summed absolute latitude + longitude difference, no antimeridian wrap.
func L1DegreeDistance(a, b Coordinate) float64 {
	return math.Abs(a.Lat-b.Lat) + math.Abs(a.Lon-b.Lon)
}
