package datastructure

import (
	"math"
	"testing"

	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddVertexDeduplicatesCoordinates(t *testing.T) {
	g := NewGraph(3)
	a := g.AddVertex(geo.NewCoordinate(1, 1), NewWindVector(1, 0))
	b := g.AddVertex(geo.NewCoordinate(2, 2), NewWindVector(0, 1))
	c := g.AddVertex(geo.NewCoordinate(1, 1), NewWindVector(3, 3))

	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, g.NumberOfVertices())
	assert.Equal(t, NewWindVector(3, 3), g.GetVertex(a).GetWind(), "later record re-tags the vertex")

	id, ok := g.GetVertexID(geo.NewCoordinate(2, 2))
	require.True(t, ok)
	assert.Equal(t, b, id)

	_, ok = g.GetVertexID(geo.NewCoordinate(2, 2.0000001))
	assert.False(t, ok)
}

func TestGraphAddEdge(t *testing.T) {
	g := NewGraph(2)
	a := g.AddVertex(geo.NewCoordinate(0, 0), WindVector{})
	b := g.AddVertex(geo.NewCoordinate(0, 1), WindVector{})

	assert.True(t, g.AddEdge(a, b, 10, 10))
	assert.True(t, g.AddEdge(b, a, 12, 10), "reverse direction is a distinct edge")
	assert.False(t, g.AddEdge(a, b, 7, 10), "duplicate ordered pair")
	assert.False(t, g.AddEdge(a, a, 0, 0), "self loop")

	assert.Equal(t, 2, g.NumberOfEdges())
	assert.True(t, g.HasEdge(a, b))
	assert.True(t, g.HasEdge(b, a))

	g.ForOutEdgesOf(a, func(e *OutEdge) {
		assert.Equal(t, b, e.GetHead())
		assert.Equal(t, 10.0, e.GetWeight())
	})
}

func TestWindVector(t *testing.T) {
	w := NewWindVector3(3, 4, -1)
	assert.InDelta(t, 5.0, w.Magnitude(), 1e-12)
	assert.InDelta(t, 3.0, w.Dot(1, 0), 1e-12)
	assert.InDelta(t, 4.0, w.Dot(0, 1), 1e-12)
}

func TestGeoPointIsValid(t *testing.T) {
	testCases := []struct {
		name  string
		point GeoPoint
		want  bool
	}{
		{"finite without altitude", NewGeoPoint(1, 2), true},
		{"finite with altitude", NewGeoPointWithAltitude(1, 2, 3), true},
		{"nan latitude", NewGeoPoint(math.NaN(), 2), false},
		{"infinite longitude", NewGeoPoint(1, math.Inf(1)), false},
		{"infinite altitude", NewGeoPointWithAltitude(1, 2, math.Inf(-1)), false},
		{"nan altitude ignored when absent", GeoPoint{Lat: 1, Lon: 2, Alt: math.NaN()}, true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.IsValid())
		})
	}
}
