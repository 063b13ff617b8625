package rrb

import "sync/atomic"

// NodeKind distinguishes the two node shapes spec.md §1 names: a leaf
// holds no interior references and can be allocated from a non-scanning
// (no-refs) arena; an inner node holds references to other nodes.
type NodeKind uint8

const (
	// KindLeaf marks a leaf-of-T allocation (spec.md: "leaf-of-T (no
	// interior references)").
	KindLeaf NodeKind = iota
	// KindInner marks an inner node allocation.
	KindInner
)

// Allocator is the memory substrate the core consumes (spec.md §1, §6).
// It is advisory: every real allocation in this package still goes
// through Go's own new/make, so a custom Allocator cannot change where
// bytes come from, only observe allocation/deallocation traffic — which
// is enough to back a pool, an arena, or instrumentation, the same role
// immer/heap/gc_heap.hpp's allocate/deallocate pair plays for the C++
// library, adapted to a language with no manual storage control.
type Allocator interface {
	// Allocate is called once per node construction, before the node is
	// populated, with the kind of node about to be built. Implementations
	// must not retain size beyond the call.
	Allocate(kind NodeKind, size int)
	// Deallocate reports that a node of the given kind has been freed.
	// The core in this package never calls it: it never releases nodes,
	// so it never learns that one has become unreachable.
	Deallocate(kind NodeKind, size int)
}

// noopAllocator is the default Allocator: Go's garbage collector already
// owns allocation and reclamation, so there is nothing to do. This is the
// gc_heap.hpp analogue — "it is not needed to call deallocate() in order
// to release memory" because a tracing collector is underneath.
type noopAllocator struct{}

func (noopAllocator) Allocate(NodeKind, int)   {}
func (noopAllocator) Deallocate(NodeKind, int) {}

// RefHandle is the small mutable counter a Refcounter operates on. Each
// node embeds exactly one. It carries no behavior of its own; all policy
// lives in the Refcounter implementation, matching spec.md §6's
// description of Refcount as a policy supplying retain/release/is_unique
// over an opaque node handle.
type RefHandle struct {
	n int32
}

// Refcounter supplies retain/release/is_unique over a RefHandle
// (spec.md §1, §6). The core retains each node once, when it builds it;
// it does not retain a node again when another Vector comes to share it,
// and it never calls Release. IsUnique is the second half of the
// transient ownership test (editor.go's ownedBy): a node is mutated in
// place only if it carries the transient's edit token AND IsUnique
// reports true, so a Refcounter can veto an in-place write but cannot
// allow one for a node the current transient did not create.
type Refcounter interface {
	Retain(h *RefHandle)
	// Release decrements the count and reports whether it reached zero.
	Release(h *RefHandle) bool
	IsUnique(h *RefHandle) bool
	// Atomic reports whether concurrent Retain/Release from multiple
	// goroutines is safe. spec.md §5: immutable values may be freely read
	// from many threads concurrently iff this is true.
	Atomic() bool
}

// noRefcount is the tracing-collector policy: retain/release are no-ops
// (nothing to count, the GC finds garbage by reachability) and IsUnique
// always reports true, because under this policy the edit-token check is
// the only evidence of ownership the core ever uses or needs.
type noRefcount struct{}

func (noRefcount) Retain(*RefHandle)      {}
func (noRefcount) Release(*RefHandle) bool { return false }
func (noRefcount) IsUnique(*RefHandle) bool { return true }
func (noRefcount) Atomic() bool             { return true }

// AtomicRefcounter is a real atomic reference count. Because the core
// retains a node only when it builds it (see Refcounter), the count of a
// node built by the core stays at one however many Vectors share it; the
// counter reports sharing only for retains made outside the core.
// Grounded on
// original_source/immer/memory_policy.hpp's refcount_policy /
// unsafe_refcount_policy split; sync/atomic is the unavoidable stdlib
// primitive here (see DESIGN.md).
type AtomicRefcounter struct{}

func (AtomicRefcounter) Retain(h *RefHandle) {
	atomic.AddInt32(&h.n, 1)
}

func (AtomicRefcounter) Release(h *RefHandle) bool {
	return atomic.AddInt32(&h.n, -1) == 0
}

func (AtomicRefcounter) IsUnique(h *RefHandle) bool {
	return atomic.LoadInt32(&h.n) <= 1
}

func (AtomicRefcounter) Atomic() bool { return true }

// MemoryPolicy bundles the allocator and refcount substrates a Vector
// uses, mirroring immer's memory_policy<HeapPolicy, RefcountPolicy, ...>
// bundle (original_source/immer/memory_policy.hpp). It carries no type
// parameter of its own: Allocator and Refcounter are themselves
// non-generic, so one MemoryPolicy value can back Vector[T] for any T.
type MemoryPolicy struct {
	Allocator  Allocator
	Refcounter Refcounter
}

// GCMemoryPolicy is the default: Go's garbage collector is the substrate,
// exactly as immer/heap/gc_heap.hpp describes for a tracing-collector
// configuration.
var GCMemoryPolicy = MemoryPolicy{
	Allocator:  noopAllocator{},
	Refcounter: noRefcount{},
}

// AtomicRefcountPolicy pairs the no-op allocator with a real atomic
// refcount, for callers who need spec.md §5's concurrent-read guarantee
// to not depend on incidental GC timing.
var AtomicRefcountPolicy = MemoryPolicy{
	Allocator:  noopAllocator{},
	Refcounter: AtomicRefcounter{},
}
