package datastructure

import (
	"github.com/lintang-b-s/Windnav/pkg/geo"
)

type Index uint32

const INVALID_VERTEX_ID Index = ^Index(0)

// Vertex. a waypoint of the airspace graph tagged with the wind vector observed there.
type Vertex struct {
	coord geo.Coordinate
	wind  WindVector
	id    Index
}

func NewVertex(coord geo.Coordinate, wind WindVector, id Index) *Vertex {
	return &Vertex{
		coord: coord,
		wind:  wind,
		id:    id,
	}
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetCoordinate() geo.Coordinate {
	return v.coord
}

func (v *Vertex) GetLat() float64 {
	return v.coord.Lat
}

func (v *Vertex) GetLon() float64 {
	return v.coord.Lon
}

func (v *Vertex) GetWind() WindVector {
	return v.wind
}

// OutEdge. directed edge tail -> head, weight is the wind-adjusted cost evaluated at the tail.
type OutEdge struct {
	head   Index
	weight float64
	dist   float64
}

func NewOutEdge(head Index, weight, dist float64) OutEdge {
	return OutEdge{
		head:   head,
		weight: weight,
		dist:   dist,
	}
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetWeight() float64 {
	return e.weight
}

// GetLength. geodesic length of the edge in meters.
func (e *OutEdge) GetLength() float64 {
	return e.dist
}

/*
Graph. directed weighted airspace graph keyed by exact coordinates.
A Graph is populated once by the graph builder and is read-only afterwards, so a built
graph can be shared by concurrent path queries. Rebuilding always starts from NewGraph.
*/
type Graph struct {
	vertices []*Vertex
	outEdges [][]OutEdge
	index    map[geo.Coordinate]Index
	edgeSet  map[uint64]struct{}
	numEdges int
}

func NewGraph(sizeHint int) *Graph {
	return &Graph{
		vertices: make([]*Vertex, 0, sizeHint),
		outEdges: make([][]OutEdge, 0, sizeHint),
		index:    make(map[geo.Coordinate]Index, sizeHint),
		edgeSet:  make(map[uint64]struct{}),
	}
}

// AddVertex. adds a vertex at coord, or re-tags the existing vertex at exactly the same coordinate
// with wind (the later record wins). returns the vertex id.
func (g *Graph) AddVertex(coord geo.Coordinate, wind WindVector) Index {
	if id, ok := g.index[coord]; ok {
		g.vertices[id].wind = wind
		return id
	}
	id := Index(len(g.vertices))
	g.vertices = append(g.vertices, NewVertex(coord, wind, id))
	g.outEdges = append(g.outEdges, nil)
	g.index[coord] = id
	return id
}

func edgeKey(tail, head Index) uint64 {
	return uint64(tail)<<32 | uint64(head)
}

// AddEdge. adds the directed edge tail -> head. returns false when an edge for that ordered pair
// already exists or the edge is a self loop.
func (g *Graph) AddEdge(tail, head Index, weight, dist float64) bool {
	if tail == head {
		return false
	}
	key := edgeKey(tail, head)
	if _, ok := g.edgeSet[key]; ok {
		return false
	}
	g.edgeSet[key] = struct{}{}
	g.outEdges[tail] = append(g.outEdges[tail], NewOutEdge(head, weight, dist))
	g.numEdges++
	return true
}

func (g *Graph) HasEdge(tail, head Index) bool {
	_, ok := g.edgeSet[edgeKey(tail, head)]
	return ok
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

func (g *Graph) GetVertex(id Index) *Vertex {
	return g.vertices[id]
}

func (g *Graph) GetVertexCoordinates(id Index) (float64, float64) {
	v := g.vertices[id]
	return v.coord.Lat, v.coord.Lon
}

// GetVertexID. exact coordinate lookup.
func (g *Graph) GetVertexID(coord geo.Coordinate) (Index, bool) {
	id, ok := g.index[coord]
	return id, ok
}

func (g *Graph) GetOutDegree(id Index) int {
	return len(g.outEdges[id])
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge)) {
	for i := range g.outEdges[u] {
		handle(&g.outEdges[u][i])
	}
}

func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for _, v := range g.vertices {
		handle(v)
	}
}

func (g *Graph) ForEdges(handle func(tail Index, e *OutEdge)) {
	for u := range g.outEdges {
		for i := range g.outEdges[u] {
			handle(Index(u), &g.outEdges[u][i])
		}
	}
}
