package rrb

// build.go holds small tree-construction helpers shared by push.go,
// slice.go and concat.go: deciding whether a freshly assembled list of
// children can stay regular or needs a relaxed size table, and building a
// single-child spine down to a leaf.

// wrapChildren assembles an inner node from children, all of whose own
// shift is childOwnShift, choosing a regular (no table) representation
// when every child but the last is exactly full (spec.md I2) and a
// relaxed one (explicit cumulative table, spec.md I3) otherwise. A
// single child is always regular (spec.md I6 forbids a single-child node
// from carrying a relaxed table).
func wrapChildren[T any](policy MemoryPolicy, edit *editToken, children []*node[T], childOwnShift, branchBits int) *node[T] {
	if len(children) <= 1 {
		return newInner(policy, edit, children, nil)
	}
	capacity := regularCapacity(childOwnShift, branchBits)
	regular := true
	for i := 0; i < len(children)-1; i++ {
		if childCount(children[i], childOwnShift, branchBits) != capacity {
			regular = false
			break
		}
	}
	if regular {
		return newInner(policy, edit, children, nil)
	}
	sizes := make([]int, len(children))
	sum := 0
	for i, c := range children {
		sum += childCount(c, childOwnShift, branchBits)
		sizes[i] = sum
	}
	return newInner(policy, edit, children, sizes)
}

// newPath builds a single-child spine of inner nodes from targetShift
// (the own shift the resulting subtree must present to its future
// parent) down to leaf. targetShift == 0 returns leaf itself. Every node
// built has exactly one child, so it is regular (spec.md I6).
func newPath[T any](policy MemoryPolicy, leaf *node[T], targetShift, branchBits int) *node[T] {
	if targetShift <= 0 {
		return leaf
	}
	child := newPath(policy, leaf, targetShift-branchBits, branchBits)
	return newInner(policy, nil, []*node[T]{child}, nil)
}

// reduceRoot unwraps a root that has been left with a single child after
// a boundary operation (take, drop, concat), per spec.md I6 ("No
// reachable inner node has a single child AND a relaxed table") and
// spec.md §4.4 ("while the root is an inner node with a single child,
// unwrap it and decrement shift by B"). It keeps unwrapping until the
// root either has more than one child or is a leaf.
func reduceRoot[T any](root *node[T], shift, branchBits int) (*node[T], int) {
	for !root.isLeaf() && root.nChildren() == 1 && shift > 0 {
		root = root.children[0]
		shift -= branchBits
	}
	return root, shift
}
