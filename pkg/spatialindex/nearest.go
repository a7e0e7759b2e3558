package spatialindex

import (
	"errors"

	"github.com/lintang-b-s/Windnav/pkg/geo"
)

var ErrNoCandidates = errors.New("no candidate points to resolve against")

// NearestPoint. linear scan for the candidate with the smallest geodesic distance to query.
// Ties go to the earliest candidate. Returns its position in candidates.
func NearestPoint(query geo.Coordinate, candidates []geo.Coordinate) (int, geo.Coordinate, error) {
	if len(candidates) == 0 {
		return -1, geo.Coordinate{}, ErrNoCandidates
	}

	best := 0
	bestDist := geo.CoordinateDistanceMeters(query, candidates[0])
	for i := 1; i < len(candidates); i++ {
		d := geo.CoordinateDistanceMeters(query, candidates[i])
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, candidates[best], nil
}
