package spatialindex

import (
	"testing"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

func TestNearestPoint(t *testing.T) {
	candidates := []geo.Coordinate{
		geo.NewCoordinate(10, 10),
		geo.NewCoordinate(0, 1),
		geo.NewCoordinate(0, -1),
		geo.NewCoordinate(-5, 3),
	}

	testCases := []struct {
		name    string
		query   geo.Coordinate
		wantIdx int
	}{
		{name: "exact match", query: geo.NewCoordinate(10, 10), wantIdx: 0},
		{name: "closest to the east", query: geo.NewCoordinate(0.1, 0.8), wantIdx: 1},
		{name: "equidistant picks first occurrence", query: geo.NewCoordinate(0, 0), wantIdx: 1},
		{name: "far south", query: geo.NewCoordinate(-20, 3), wantIdx: 3},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			idx, coord, err := NearestPoint(tt.query, candidates)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIdx, idx)
			assert.Equal(t, candidates[tt.wantIdx], coord)
		})
	}
}

func TestNearestPointNoCandidates(t *testing.T) {
	_, _, err := NearestPoint(geo.NewCoordinate(0, 0), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRtreeSearchWithinL1MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	g := da.NewGraph(300)
	for i := 0; i < 300; i++ {
		g.AddVertex(geo.NewCoordinate(rng.Float64()*20-10, rng.Float64()*20-10), da.WindVector{})
	}

	rt := NewRtree()
	rt.Build(g, zap.NewNop())
	require.Equal(t, g.NumberOfVertices(), rt.Len())

	const radius = 2.5
	g.ForVertices(func(v *da.Vertex) {
		want := make([]da.Index, 0)
		g.ForVertices(func(o *da.Vertex) {
			if geo.L1DegreeDistance(v.GetCoordinate(), o.GetCoordinate()) <= radius {
				want = append(want, o.GetID())
			}
		})
		got := rt.SearchWithinL1(v.GetLat(), v.GetLon(), radius)
		assert.Equal(t, want, got)
	})
}
