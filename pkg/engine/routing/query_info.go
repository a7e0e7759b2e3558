package routing

import (
	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
)

type VertexInfo[T comparable] struct {
	dist     float64
	parent   da.Index
	scanned  bool // dist is final, vertex is in the shortest path tree
	heapNode *da.PriorityQueueNode[T]
}

func NewVertexInfo[T comparable](dist float64, parent da.Index, hnode *da.PriorityQueueNode[T]) *VertexInfo[T] {
	return &VertexInfo[T]{
		dist:     dist,
		parent:   parent,
		heapNode: hnode,
	}
}

func (vi *VertexInfo[T]) GetDist() float64 {
	return vi.dist
}

func (vi *VertexInfo[T]) UpdateDist(d float64) {
	vi.dist = d
}

func (vi *VertexInfo[T]) UpdateParent(par da.Index) {
	vi.parent = par
}

func (vi *VertexInfo[T]) Scan() {
	vi.scanned = true
}

func (vi *VertexInfo[T]) IsScanned() bool {
	return vi.scanned
}

func (vi *VertexInfo[T]) GetParent() da.Index {
	return vi.parent
}

func (vi *VertexInfo[T]) GetHeapNode() *da.PriorityQueueNode[T] {
	return vi.heapNode
}

func (vi *VertexInfo[T]) SetHeapNode(hnode *da.PriorityQueueNode[T]) {
	vi.heapNode = hnode
}

func initInfWeightVertexInfo[T comparable](vs []*VertexInfo[T]) {
	for i := range vs {
		vs[i] = NewVertexInfo[T](INF_WEIGHT, da.INVALID_VERTEX_ID, nil)
	}
}
