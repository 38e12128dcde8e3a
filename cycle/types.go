// File: types.go
// Role: visitation-state constants and sentinel errors shared by path.go
// and depth.go.
package cycle

import "errors"

// Vertex visitation states of a standard three-color scheme
// (White/Gray/Black). The walks in path.go and depth.go do not use them:
// PathExists tracks a visited set, and LongestChainFrom/To rely on the
// graph being acyclic and on their maxDepth bound.
const (
	White = iota
	Gray
	Black
)

var (
	// ErrMaxDepthExceeded is returned when a bounded walk exceeds its
	// maxDepth parameter (default 256, via config.Propagation.MaxDepth).
	ErrMaxDepthExceeded = errors.New("cycle: max depth exceeded")

	// ErrCycleFound names a cycle found in a graph presumed acyclic. No walk
	// in this package returns it.
	ErrCycleFound = errors.New("cycle: cycle found in graph presumed acyclic")
)
