package wind

import (
	"math"
	"testing"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewEstimatorRejectsBadInterval(t *testing.T) {
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewEstimator(dt)
		assert.ErrorIs(t, err, ErrInvalidSamplingInterval)
	}
}

func TestEstimateEastwardDrift(t *testing.T) {
	est, err := NewEstimator(DefaultSamplingInterval)
	require.NoError(t, err)

	prev := []da.GeoPoint{da.NewGeoPointWithAltitude(0, 0, 0)}
	curr := []da.GeoPoint{da.NewGeoPointWithAltitude(0, 0.01, 0)}

	winds, err := est.Estimate(prev, curr)
	require.NoError(t, err)
	require.Len(t, winds, 1)

	wantU := geo.GeodesicDistanceMeters(0, 0, 0, 0.01) / 3600
	assert.InDelta(t, 0.0, winds[0].V, 1e-9)
	assert.InDelta(t, wantU, math.Abs(winds[0].U), 1e-9)
	assert.Greater(t, winds[0].U, 0.0)
	assert.True(t, winds[0].HasW)
	assert.Equal(t, 0.0, winds[0].W)
}

func TestEstimateVerticalComponent(t *testing.T) {
	est, err := NewEstimator(100)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		prev     da.GeoPoint
		curr     da.GeoPoint
		wantHasW bool
		wantW    float64
	}{
		{
			name:     "climbing",
			prev:     da.NewGeoPointWithAltitude(10, 10, 1000),
			curr:     da.NewGeoPointWithAltitude(10.1, 10, 1500),
			wantHasW: true,
			wantW:    5,
		},
		{
			name:     "altitude missing on one side",
			prev:     da.NewGeoPoint(10, 10),
			curr:     da.NewGeoPointWithAltitude(10.1, 10, 1500),
			wantHasW: false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			winds, err := est.Estimate([]da.GeoPoint{tt.prev}, []da.GeoPoint{tt.curr})
			require.NoError(t, err)
			assert.Equal(t, tt.wantHasW, winds[0].HasW)
			assert.InDelta(t, tt.wantW, winds[0].W, 1e-12)
			assert.Greater(t, winds[0].V, 0.0, "northward drift")
		})
	}
}

func TestEstimateLengthMismatch(t *testing.T) {
	est, err := NewEstimator(DefaultSamplingInterval)
	require.NoError(t, err)

	_, err = est.Estimate([]da.GeoPoint{da.NewGeoPoint(0, 0)}, nil)
	assert.ErrorIs(t, err, ErrSequenceLengthMismatch)
}

func TestStationaryObjectsHaveCalmWind(t *testing.T) {
	est, err := NewEstimator(DefaultSamplingInterval)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	points := make([]da.GeoPoint, 50)
	for i := range points {
		points[i] = da.NewGeoPointWithAltitude(rng.Float64()*180-90, rng.Float64()*360-180, rng.Float64()*20000)
	}

	winds, err := est.Estimate(points, points)
	require.NoError(t, err)

	for i, sd := range ComputeSpeedDirection(winds) {
		assert.Equal(t, 0.0, sd.Speed, "index %d", i)
		assert.Equal(t, 0.0, sd.Direction, "index %d", i)
		assert.False(t, math.IsNaN(sd.VerticalSpeed) || math.IsInf(sd.VerticalSpeed, 0))
	}
}

func TestComputeSpeedDirectionRange(t *testing.T) {
	est, err := NewEstimator(DefaultSamplingInterval)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	prev := make([]da.GeoPoint, 200)
	curr := make([]da.GeoPoint, 200)
	for i := range prev {
		lat, lon := rng.Float64()*160-80, rng.Float64()*340-170
		prev[i] = da.NewGeoPoint(lat, lon)
		curr[i] = da.NewGeoPoint(lat+rng.Float64()*2-1, lon+rng.Float64()*2-1)
	}

	winds, err := est.Estimate(prev, curr)
	require.NoError(t, err)

	for _, sd := range ComputeSpeedDirection(winds) {
		assert.GreaterOrEqual(t, sd.Direction, 0.0)
		assert.Less(t, sd.Direction, 360.0)
		assert.GreaterOrEqual(t, sd.Speed, 0.0)
	}
}

func TestComputeSpeedDirectionCardinal(t *testing.T) {
	sds := ComputeSpeedDirection([]da.WindVector{
		da.NewWindVector(0, 10),
		da.NewWindVector(10, 0),
		da.NewWindVector(0, -10),
		da.NewWindVector3(-10, 0, 2),
	})

	wantDirections := []float64{0, 90, 180, 270}
	for i, sd := range sds {
		assert.InDelta(t, 10.0, sd.Speed, 1e-12)
		assert.InDelta(t, wantDirections[i], sd.Direction, 1e-9)
	}
	assert.True(t, sds[3].HasVertical)
	assert.Equal(t, 2.0, sds[3].VerticalSpeed)
}
