package costfunction

import (
	"errors"
	"fmt"
	"math"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/util"
)

const (
	// DefaultWindInfluence. how strongly the wind effect scales the geodesic distance.
	DefaultWindInfluence = 0.2
	// minWeightFraction. weight never drops below this fraction of the geodesic distance.
	minWeightFraction = 0.1
)

var ErrInvalidWindInfluence = errors.New("wind influence must be a finite number")

/*
WindFunction. tailwind-discounted, headwind-penalised geodesic distance:

	unit        = normalize(head.lon - tail.lon, head.lat - tail.lat)
	windEffect  = dot(wind, unit) * |wind|
	adjusted    = dist * (1 - k * windEffect)
	weight      = max(0.1 * dist, adjusted)

wind is the vector tagged on the tail vertex.
*/
type WindFunction struct {
	k float64
}

func NewWindCostFunction(windInfluence float64) (*WindFunction, error) {
	if !util.IsFinite(windInfluence) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidWindInfluence, windInfluence)
	}
	return &WindFunction{k: windInfluence}, nil
}

func (wf *WindFunction) WindInfluence() float64 {
	return wf.k
}

func (wf *WindFunction) GetWeight(tail, head geo.Coordinate, tailWind da.WindVector) (float64, float64) {
	dist := geo.CoordinateDistanceMeters(tail, head)
	adjusted := dist * (1 - wf.k*WindEffect(tail, head, tailWind))
	return math.Max(minWeightFraction*dist, adjusted), dist
}

// WindEffect. signed alignment of the wind with the direction of travel tail -> head, scaled by
// wind speed. Positive is a tailwind. Zero-length movement or calm wind has no effect.
func WindEffect(tail, head geo.Coordinate, wind da.WindVector) float64 {
	east := head.Lon - tail.Lon
	north := head.Lat - tail.Lat
	norm := math.Hypot(east, north)
	if norm == 0 {
		return 0
	}
	magnitude := wind.Magnitude()
	if magnitude == 0 {
		return 0
	}
	return wind.Dot(east/norm, north/norm) * magnitude
}
