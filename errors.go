package rrb

import "errors"

// Sentinel errors for the recoverable failures named in spec.md §7. These
// are returned, never panicked, so callers can use errors.Is against them.
var (
	// ErrIndexOutOfRange is returned by TryAt, the checked counterpart to
	// At, when the index falls outside [0, size). At itself panics
	// instead (see contractViolation below) because spec.md §7 classifies
	// out-of-range access as a contract violation by default; TryAt exists
	// for callers holding an untrusted index who would rather not wrap
	// every call in recover().
	ErrIndexOutOfRange = errors.New("rrb: index out of range")

	// ErrSizeLimitExceeded is returned when an operation's result would
	// overflow the representable index range (spec.md §7, "Arithmetic
	// overflow on size").
	ErrSizeLimitExceeded = errors.New("rrb: size limit exceeded")
)

// contractViolation panics to signal a programmer error: an out-of-range
// At, a reuse of an already-persisted Transient, or calling Persistent
// twice. spec.md §7 classifies these as undefined behavior at the contract
// level and recommends fail-fast; Go's idiomatic fail-fast is a panic
// carrying a descriptive string, matching toddgaunt-persistent's
// `panic(fmt.Sprintf("index out of range ..."))` convention.
func contractViolation(msg string) {
	panic("rrb: " + msg)
}
