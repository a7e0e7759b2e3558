package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	testCases := []struct {
		name  string
		d     int
		ranks []float64
	}{
		{name: "binary heap", d: 2, ranks: []float64{5, 3, 8, 1, 9, 2, 7}},
		{name: "four-ary heap", d: 4, ranks: []float64{10, 4, 6, 0.5, 3, 3.5, 11, 2, 1}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewdAryHeap[int](tt.d, nil)
			for i, r := range tt.ranks {
				h.Insert(NewPriorityQueueNode(r, i))
			}
			require.Equal(t, len(tt.ranks), h.Size())

			prev := -1.0
			for !h.IsEmpty() {
				node, err := h.ExtractMin()
				require.NoError(t, err)
				assert.GreaterOrEqual(t, node.GetRank(), prev)
				prev = node.GetRank()
			}
		})
	}
}

func TestMinHeapTieBreak(t *testing.T) {
	h := NewFourAryHeap[int](func(a, b int) bool { return a < b })
	for _, item := range []int{7, 3, 9, 1, 5} {
		h.Insert(NewPriorityQueueNode(1.0, item))
	}

	got := make([]int, 0, 5)
	for !h.IsEmpty() {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, node.GetItem())
	}
	assert.Equal(t, []int{1, 3, 5, 7, 9}, got)
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewBinaryHeap[string](nil)
	a := NewPriorityQueueNode(10, "a")
	b := NewPriorityQueueNode(5, "b")
	h.Insert(a)
	h.Insert(b)

	require.NoError(t, h.DecreaseKey(a, 1))
	min, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, "a", min.GetItem())

	assert.Error(t, h.DecreaseKey(b, 50), "increasing a key must be rejected")
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewBinaryHeap[int](nil)
	_, err := h.ExtractMin()
	assert.Error(t, err)
	_, err = h.GetMin()
	assert.Error(t, err)
}
