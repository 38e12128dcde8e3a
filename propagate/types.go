// File: types.go
// Role: the propagator's shared types: score direction, the update
// accumulator returned to callers, and the Propagator itself.
package propagate

import (
	"context"
	"errors"

	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/cycle"
	"github.com/opendebate/argraph/graph"
)

// Direction distinguishes which of a node's two child aggregates (and,
// downstream, which of its two displayed scores) a propagation step targets.
type Direction int

const (
	// DirPositive targets child_positive / positive_score.
	DirPositive Direction = iota
	// DirNegative targets child_negative / negative_score.
	DirNegative
)

// Update records the displayed scores that changed on one opinion during a
// single propagation run, the accumulator every mutating operation returns
// to the caller as the authoritative diff for cache invalidation.
type Update struct {
	Positive *arith.Score
	Negative *arith.Score
}

func markPositive(updated map[string]*Update, id string, v arith.Score) {
	u := updated[id]
	if u == nil {
		u = &Update{}
		updated[id] = u
	}
	cp := v
	u.Positive = &cp
}

func markNegative(updated map[string]*Update, id string, v arith.Score) {
	u := updated[id]
	if u == nil {
		u = &Update{}
		updated[id] = u
	}
	cp := v
	u.Negative = &cp
}

// ErrPropagationInvariant names an internal invariant breach of the score
// algebra. No function in this package returns it: a refresh recomputes an
// aggregate without checking it for consistency.
var ErrPropagationInvariant = errors.New("propagate: internal invariant breach")

// Propagator runs positive and negative propagation over a graph store.
// MaxDepth bounds recursion; it is carried on the Propagator value rather
// than a package global so callers can vary the budget (e.g. in tests)
// without shared state.
type Propagator struct {
	Graph    *graph.Graph
	MaxDepth int
}

// New returns a Propagator bound to g with the given recursion-depth cap.
// maxDepth<=0 disables the cap.
func New(g *graph.Graph, maxDepth int) *Propagator {
	return &Propagator{Graph: g, MaxDepth: maxDepth}
}

func depthGuard(ctx context.Context, depth, maxDepth int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if maxDepth > 0 && depth > maxDepth {
		return cycle.ErrMaxDepthExceeded
	}

	return nil
}
