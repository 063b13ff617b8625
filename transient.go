package rrb

// transient.go implements the batch-mutation mode (spec.md §4.9).
// Grounded on txn.go's Txn (Insert/Commit/CommitOnly/discard — the
// overall transaction shape: a single mutable handle that amortizes
// cloning across many writes, then freezes back into an immutable
// value) and toddgaunt-persistent's TransientVector.invalid flag for the
// use-after-Persistent contract violation (spec.md §7).

// Transient is a single-owner, in-place-when-safe batch-mutation handle
// over a Vector (spec.md §4.9). It is not safe for concurrent use by
// multiple goroutines (spec.md §5): a Transient is meant to be built,
// mutated, and converted back to a Vector within one goroutine.
type Transient[T any] struct {
	v     Vector[T]
	tok   *editToken
	valid bool
}

// Transient returns a Transient seeded from v. O(1): no node is cloned
// until the first write touches it (spec.md §4.9).
func (v Vector[T]) Transient() *Transient[T] {
	return &Transient[T]{v: v, tok: newEditToken(), valid: true}
}

func (t *Transient[T]) ensureValid() {
	if !t.valid {
		contractViolation("use of transient after Persistent")
	}
}

// Persistent freezes the Transient back into an ordinary Vector and
// invalidates the handle (spec.md §4.9: "persistent() ... the transient
// handle is left unusable"). Calling any method on t afterward panics.
func (t *Transient[T]) Persistent() Vector[T] {
	t.ensureValid()
	t.valid = false
	return t.v
}

// Append adds values, in order, to the end of the sequence. Two fast
// paths share the work: whenever there is no partial tail in the way and
// at least branch values remain, a whole leaf is built directly from the
// next branch-sized slice and demoted straight into the tree — the same
// single push pushBackOwned would eventually trigger, but reached in one
// step per branch elements instead of one step per element (spec.md
// §4.9's "supplemented feature", see SPEC_FULL.md §4.12). Once fewer
// than branch values remain, or a partial tail is already in progress,
// the remainder falls back to pushBackOwned's per-element path, which
// itself amortizes in-place growth of that partial tail via the edit
// token.
func (t *Transient[T]) Append(values ...T) {
	t.ensureValid()
	branch := t.v.branch()
	for len(values) >= branch && t.v.tailLen() == 0 {
		v := t.v
		chunk := newLeaf(v.policy, nil, append([]T{}, values[:branch]...))
		newRoot, newShift := pushLeafRight(v.policy, v.root, chunk, v.shift, v.branchBits, v.sizeOfRoot())
		v.root = newRoot
		v.shift = newShift
		v.size += branch
		t.v = v
		values = values[branch:]
	}
	for _, x := range values {
		t.pushBackOwned(x)
	}
}

// pushBackOwned is PushBack's logic, specialized to mutate the tail leaf
// in place when this transient already owns it outright.
func (t *Transient[T]) pushBackOwned(x T) {
	v := t.v
	if v.tail.ownedBy(t.tok, v.policy.Refcounter) && v.tailLen() < v.branch() {
		v.tail.values = append(v.tail.values, x)
		v.size++
		t.v = v
		return
	}
	if v.tailLen() < v.branch() {
		values := make([]T, v.tailLen(), v.branch())
		copy(values, v.tail.values)
		values = append(values, x)
		v.tail = newLeaf(v.policy, t.tok, values)
		v.size++
		t.v = v
		return
	}
	newRoot, newShift := pushLeafRight(v.policy, v.root, v.tail, v.shift, v.branchBits, v.sizeOfRoot())
	v.root = newRoot
	v.shift = newShift
	v.tail = newLeaf(v.policy, t.tok, []T{x})
	v.size++
	t.v = v
}

// Set mutates the element at index i. Delegates to Vector.Set; the
// transient's edit token does not currently enable in-place spine
// mutation for point updates (only the amortized-append fast path
// above does), so this still allocates a fresh spine per call, same as
// the immutable Set — still correct, just without the extra sharing a
// fully transient-aware update path would add.
func (t *Transient[T]) Set(i int, x T) {
	t.ensureValid()
	t.v = t.v.Set(i, x)
}

// Take truncates to the first n elements in place (handle-wise).
func (t *Transient[T]) Take(n int) {
	t.ensureValid()
	t.v = t.v.Take(n)
}

// Drop removes the first n elements in place (handle-wise).
func (t *Transient[T]) Drop(n int) {
	t.ensureValid()
	t.v = t.v.Drop(n)
}

// Concat appends other's elements onto t in place (handle-wise).
func (t *Transient[T]) Concat(other Vector[T]) {
	t.ensureValid()
	t.v = Concat(t.v, other)
}

// Len reports the current element count.
func (t *Transient[T]) Len() int {
	t.ensureValid()
	return t.v.Len()
}

// At returns the element at index i.
func (t *Transient[T]) At(i int) T {
	t.ensureValid()
	return t.v.At(i)
}
