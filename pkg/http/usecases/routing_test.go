package usecases

import (
	"sync/atomic"
	"testing"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/engine"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"github.com/lintang-b-s/Windnav/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// lineEngine. routes along the straight segment origin -> destination, fails for negative latitudes.
// The current snapshot version advances on every LatestPair call.
type lineEngine struct {
	version atomic.Uint64
}

func (le *lineEngine) LatestPair() (*snapshot.Pair, error) {
	return &snapshot.Pair{Version: le.version.Add(1)}, nil
}

func (le *lineEngine) ShortestPath(origin, destination geo.Coordinate, connectivity string) (engine.RouteResult, error) {
	pair, _ := le.LatestPair()
	return le.ShortestPathOn(pair, origin, destination, connectivity)
}

func (le *lineEngine) ShortestPathOn(pair *snapshot.Pair, origin, destination geo.Coordinate,
	connectivity string) (engine.RouteResult, error) {
	if origin.Lat < 0 {
		return engine.RouteResult{}, util.WrapErrorf(nil, util.ErrBadParamInput, "negative latitude")
	}
	if connectivity == "proximity" {
		return engine.RouteResult{Route: da.NoRoute(), Origin: origin, Destination: destination,
			SnapshotVersion: pair.Version}, nil
	}
	path := []geo.Coordinate{origin, destination}
	return engine.RouteResult{
		Route:           da.NewRoute(path, geo.CoordinateDistanceMeters(origin, destination)),
		Origin:          origin,
		Destination:     destination,
		SnapshotVersion: pair.Version,
	}, nil
}

func TestShortestPathPolyline(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), &lineEngine{}, 2)

	answer, err := rs.ShortestPath(RouteQuery{Origin: geo.NewCoordinate(38.5, -120.2), Destination: geo.NewCoordinate(40.7, -120.95)})
	require.NoError(t, err)
	assert.True(t, answer.Route.Found)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC", answer.Polyline)

	answer, err = rs.ShortestPath(RouteQuery{Origin: geo.NewCoordinate(1, 1), Destination: geo.NewCoordinate(2, 2), Connectivity: "proximity"})
	require.NoError(t, err)
	assert.False(t, answer.Route.Found)
	assert.Empty(t, answer.Polyline)
}

func TestBatchShortestPathKeepsOrder(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), &lineEngine{}, 3)

	queries := make([]RouteQuery, 10)
	for i := range queries {
		queries[i] = RouteQuery{Origin: geo.NewCoordinate(float64(i), 0), Destination: geo.NewCoordinate(float64(i), 1)}
	}
	queries[4].Origin.Lat = -1

	answers := rs.BatchShortestPath(queries)
	require.Len(t, answers, len(queries))
	for i, a := range answers {
		if i == 4 {
			assert.Error(t, a.Err)
			continue
		}
		require.NoError(t, a.Err)
		assert.Equal(t, queries[i].Origin, a.Answer.Origin)
		assert.True(t, a.Answer.Route.Found)
		assert.Equal(t, uint64(1), a.Answer.SnapshotVersion)
	}
}

type unavailableEngine struct {
	lineEngine
}

func (*unavailableEngine) LatestPair() (*snapshot.Pair, error) {
	return nil, util.WrapErrorf(snapshot.ErrDataUnavailable, util.ErrServiceUnavailable, "wind data unavailable")
}

func TestBatchShortestPathNoData(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), &unavailableEngine{}, 2)

	answers := rs.BatchShortestPath(make([]RouteQuery, 3))
	require.Len(t, answers, 3)
	for _, a := range answers {
		assert.ErrorIs(t, a.Err, snapshot.ErrDataUnavailable)
	}
}
