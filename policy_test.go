package rrb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoRefcountAlwaysUnique(t *testing.T) {
	var h RefHandle
	rc := noRefcount{}
	rc.Retain(&h)
	require.True(t, rc.IsUnique(&h))
	require.True(t, rc.Atomic())
}

func TestAtomicRefcounterTracksSharing(t *testing.T) {
	var h RefHandle
	rc := AtomicRefcounter{}
	rc.Retain(&h)
	require.True(t, rc.IsUnique(&h))

	rc.Retain(&h)
	require.False(t, rc.IsUnique(&h), "two retains means two owners")

	zero := rc.Release(&h)
	require.False(t, zero)
	require.True(t, rc.IsUnique(&h))

	zero = rc.Release(&h)
	require.True(t, zero)
}

func TestGCMemoryPolicyAllocatorIsNoop(t *testing.T) {
	require.NotPanics(t, func() {
		GCMemoryPolicy.Allocator.Allocate(KindLeaf, 4)
		GCMemoryPolicy.Allocator.Deallocate(KindLeaf, 4)
	})
}

func TestEditTokenIdentity(t *testing.T) {
	policy := AtomicRefcountPolicy
	tokA := newEditToken()
	tokB := newEditToken()
	require.NotSame(t, tokA, tokB)

	n := newLeaf[int](policy, tokA, []int{1})
	require.True(t, n.ownedBy(tokA, policy.Refcounter))
	require.False(t, n.ownedBy(tokB, policy.Refcounter))
	require.False(t, n.ownedBy(nil, policy.Refcounter))

	policy.Refcounter.Retain(&n.ref)
	require.False(t, n.ownedBy(tokA, policy.Refcounter), "a second retain means no longer uniquely owned")
}
