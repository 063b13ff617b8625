package rrb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegularCapacity(t *testing.T) {
	tests := []struct {
		name             string
		ownShift, branch int
		want             int
	}{
		{"leaf-level, branch32", 0, 5, 32},
		{"one-above-leaves, branch32", 5, 5, 1024},
		{"leaf-level, branch4", 0, 2, 4},
		{"one-above-leaves, branch4", 2, 2, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, regularCapacity(tt.ownShift, tt.branch))
		})
	}
}

func TestSizeTableSearch(t *testing.T) {
	sizes := []int{3, 7, 10, 15}
	tests := []struct {
		name string
		i    int
		want int
	}{
		{"first slot start", 0, 0},
		{"first slot end", 2, 0},
		{"second slot start", 3, 1},
		{"third slot", 8, 2},
		{"last slot", 14, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sizeTableSearch(sizes, tt.i))
		})
	}
}

func TestChildCountRegularAndRelaxed(t *testing.T) {
	policy := GCMemoryPolicy
	branchBits := 2 // branch 4

	leafA := newLeaf[int](policy, nil, []int{1, 2, 3, 4})
	leafB := newLeaf[int](policy, nil, []int{5, 6})
	regular := newInner[int](policy, nil, []*node[int]{leafA}, nil)
	require.Equal(t, 4, childCount(regular, branchBits, branchBits))

	relaxed := newInner[int](policy, nil, []*node[int]{leafA, leafB}, []int{4, 6})
	require.Equal(t, 6, childCount(relaxed, branchBits, branchBits))
}

func TestNodeAtAcrossLevels(t *testing.T) {
	policy := GCMemoryPolicy
	branchBits := 2 // branch 4
	leaf0 := newLeaf[int](policy, nil, []int{0, 1, 2, 3})
	leaf1 := newLeaf[int](policy, nil, []int{4, 5, 6, 7})
	root := newInner[int](policy, nil, []*node[int]{leaf0, leaf1}, nil)

	for i := 0; i < 8; i++ {
		require.Equal(t, i, root.at(i, branchBits, branchBits))
	}
}

func TestNodeIsLeafIsRelaxed(t *testing.T) {
	policy := GCMemoryPolicy
	leaf := newLeaf[int](policy, nil, []int{1})
	require.True(t, leaf.isLeaf())
	require.False(t, leaf.isRelaxed())

	regular := newInner[int](policy, nil, []*node[int]{leaf}, nil)
	require.False(t, regular.isLeaf())
	require.False(t, regular.isRelaxed())

	relaxed := newInner[int](policy, nil, []*node[int]{leaf}, []int{1})
	require.True(t, relaxed.isRelaxed())
}
