package rrb

// update.go implements Set, the point-update operation (spec.md §4.3):
// clone the spine from root down to the leaf holding index i, replace
// the one element, and share everything else. Grounded on
// toddgaunt-persistent's Assoc/doAssoc (clone-path-to-leaf) and ART's
// copyIfNeeded/copy() COW idiom from txn.go/node4.go.

// Set returns a new Vector with the element at index i replaced by x.
// Precondition: 0 <= i < Len(); a violation is a contract failure
// (spec.md §6, §7) and panics.
func (v Vector[T]) Set(i int, x T) Vector[T] {
	if i < 0 || i >= v.size {
		contractViolation("index out of range")
	}
	h := v.headLen()
	if i < h {
		values := append([]T{}, v.head.values...)
		values[i] = x
		v.head = newLeaf(v.policy, nil, values)
		return v
	}
	tailStart := v.size - v.tailLen()
	if i >= tailStart {
		values := append([]T{}, v.tail.values...)
		values[i-tailStart] = x
		v.tail = newLeaf(v.policy, nil, values)
		return v
	}
	v.root = setAt(v.policy, v.root, i-h, v.shift, v.branchBits, x)
	return v
}

// setAt clones the spine from n down to the leaf holding index i,
// writing x at the bottom, and returns the replacement for n. Sharing
// happens automatically: every sibling subtree not on the spine is
// carried over untouched in the cloned slice.
func setAt[T any](policy MemoryPolicy, n *node[T], i, shift, branchBits int, x T) *node[T] {
	if shift == 0 {
		values := append([]T{}, n.values...)
		values[i&mask1(branchBits)] = x
		return newLeaf(policy, nil, values)
	}
	var slot int
	childI := i
	if n.isRelaxed() {
		slot = sizeTableSearch(n.sizes, i)
		if slot > 0 {
			childI = i - n.sizes[slot-1]
		}
	} else {
		slot = (i >> shift) & mask1(branchBits)
		childI = i & ((1 << shift) - 1)
	}
	children := append([]*node[T]{}, n.children...)
	children[slot] = setAt(policy, n.children[slot], childI, shift-branchBits, branchBits, x)
	return newInner(policy, nil, children, n.sizes)
}
