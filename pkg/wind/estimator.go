package wind

import (
	"errors"
	"fmt"
	"math"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/util"
)

// DefaultSamplingInterval. assumed time between the previous and current snapshot, seconds.
// It is the snapshot cadence of the upstream feed, not something measured from the data.
const DefaultSamplingInterval = 3600.0

var (
	ErrSequenceLengthMismatch  = errors.New("previous and current sequences differ in length")
	ErrInvalidSamplingInterval = errors.New("sampling interval must be a positive finite number of seconds")
)

// Estimator. derives a wind vector per tracked object from its displacement between two
// positionally aligned samples: index i of previous and current is the same object.
type Estimator struct {
	dt float64
}

func NewEstimator(samplingIntervalSeconds float64) (*Estimator, error) {
	if !util.IsFinite(samplingIntervalSeconds) || samplingIntervalSeconds <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSamplingInterval, samplingIntervalSeconds)
	}
	return &Estimator{dt: samplingIntervalSeconds}, nil
}

func (e *Estimator) SamplingInterval() float64 {
	return e.dt
}

// Estimate. one wind vector per pair, same order as the input.
func (e *Estimator) Estimate(previous, current []da.GeoPoint) ([]da.WindVector, error) {
	if len(previous) != len(current) {
		return nil, fmt.Errorf("%w: previous=%d current=%d", ErrSequenceLengthMismatch, len(previous), len(current))
	}

	winds := make([]da.WindVector, len(previous))
	for i := range previous {
		winds[i] = e.vector(previous[i], current[i])
	}
	return winds, nil
}

/*
vector. u = (d/dt) sin(azimuth), v = (d/dt) cos(azimuth), where d is the geodesic horizontal
distance and azimuth = atan2(dLon, dLat). w = dAlt/dt when both samples carry an altitude.
*/
func (e *Estimator) vector(prev, curr da.GeoPoint) da.WindVector {
	d := geo.GeodesicDistanceMeters(prev.Lat, prev.Lon, curr.Lat, curr.Lon)
	azimuth := geo.Azimuth(prev.Lat, prev.Lon, curr.Lat, curr.Lon)

	speed := d / e.dt
	u := speed * math.Sin(azimuth)
	v := speed * math.Cos(azimuth)

	if prev.HasAlt && curr.HasAlt {
		return da.NewWindVector3(u, v, (curr.Alt-prev.Alt)/e.dt)
	}
	return da.NewWindVector(u, v)
}

// ComputeSpeedDirection. speed = |(u, v)|, direction = (degrees(atan2(u, v)) + 360) mod 360, i.e. the
// heading the tracked object drifts towards, measured clockwise from north.
func ComputeSpeedDirection(winds []da.WindVector) []da.SpeedDirection {
	out := make([]da.SpeedDirection, len(winds))
	for i, w := range winds {
		out[i] = da.SpeedDirection{
			Speed:         w.Magnitude(),
			Direction:     geo.DirectionDegrees(w.U, w.V),
			VerticalSpeed: w.W,
			HasVertical:   w.HasW,
		}
	}
	return out
}
