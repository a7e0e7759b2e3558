package geo

import (
	"math"

	"github.com/lintang-b-s/Windnav/pkg/util"
)

/*
Azimuth. planar heading of the displacement (p1 -> p2) in coordinate space, radians,
atan2(dLon, dLat): 0 points north, pi/2 points east. Zero displacement gives 0.
*/
func Azimuth(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {
	dLat := p2Lat - p1Lat
	dLon := p2Lon - p1Lon
	if dLat == 0 && dLon == 0 {
		return 0
	}
	return math.Atan2(dLon, dLat)
}

// DirectionDegrees. compass direction of an (east, north) vector in [0, 360), clockwise from north.
// atan2 takes the east component first so that 0 degrees is north and 90 degrees is east.
func DirectionDegrees(east, north float64) float64 {
	if east == 0 && north == 0 {
		return 0
	}
	dir := math.Mod(util.RadiansToDegree(math.Atan2(east, north))+360, 360.0)
	if dir >= 360.0 {
		dir = 0
	}
	return dir
}
