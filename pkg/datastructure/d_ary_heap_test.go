package datastructure

import (
	"testing"

	"github.com/lintang-b-s/routefinder/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	h := NewBinaryHeapWithTieBreak(func(a, b Index) bool { return a < b })

	nodes := map[Index]*PriorityQueueNode[Index]{}
	for i, rank := range []float64{5, 3, 3, 8, 1, 3} {
		n := NewPriorityQueueNode(rank, Index(i))
		nodes[Index(i)] = n
		h.Insert(n)
	}

	require.NoError(t, h.DecreaseKey(nodes[3], 3))

	got := []Index{}
	for !h.IsEmpty() {
		n, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, n.GetItem())
	}

	// rank 1, then all rank 3 by index, then 5
	assert.Equal(t, []Index{4, 1, 2, 3, 5, 0}, got)

	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
}

func TestMinHeapDecreaseKeyRejectsIncrease(t *testing.T) {
	h := NewFourAryHeap[Index]()
	n := NewPriorityQueueNode(2, Index(0))
	h.Insert(n)

	assert.Error(t, h.DecreaseKey(n, 10))

	_, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Error(t, h.DecreaseKey(n, 1), "extracted node can not be decreased")
}

func TestMinHeapGetMin(t *testing.T) {
	h := NewBinaryHeap[Index]()
	h.Preallocate(8)

	_, err := h.GetMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
	assert.Equal(t, 2*pkg.INF_WEIGHT, h.GetMinrank())

	h.Insert(NewPriorityQueueNode(7.5, Index(1)))
	h.Insert(NewPriorityQueueNode(2.5, Index(2)))

	root, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, Index(2), root.GetItem())
	assert.Equal(t, 2.5, h.GetMinrank())
	assert.Equal(t, 2, h.Size(), "GetMin does not remove the root")

	h.Clear()
	assert.True(t, h.IsEmpty())
}
