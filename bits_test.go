package rrb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		x    int
		want bool
	}{
		{0, false}, {1, true}, {2, true}, {3, false}, {32, true}, {48, false}, {-4, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, isPowerOfTwo(tt.x), "x=%d", tt.x)
	}
}

func TestLog2Floor(t *testing.T) {
	tests := []struct {
		x    int
		want int
	}{
		{1, 0}, {2, 1}, {3, 1}, {4, 2}, {32, 5}, {33, 5},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, log2Floor(tt.x), "x=%d", tt.x)
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{0, 4, 0}, {1, 4, 1}, {4, 4, 1}, {5, 4, 2}, {8, 4, 2},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ceilDiv(tt.a, tt.b), "a=%d b=%d", tt.a, tt.b)
	}
}

func TestWithBranch(t *testing.T) {
	v := V(10, WithBranch(4))
	require.Equal(t, 2, v.branchBits)

	require.Panics(t, func() { New[int](WithBranch(6)) })
}
