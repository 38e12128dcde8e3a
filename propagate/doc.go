// Package propagate implements the argument graph's score algebra: the
// mutual recursion that keeps every opinion's positive_score, negative_score,
// child_positive, and child_negative consistent after a leaf's score
// changes or an edge is created, deleted, or retyped.
//
// A Propagator is bound to one graph.Graph and a recursion-depth cap
// (a configurable resource budget, 256-deep by default). Three entry points drive it:
//
//   - Positive walks forward from a node whose displayed positive_score just
//     changed, admitting that value into each outgoing target's child
//     aggregate, recomputing the target's own positive_score, and recursing
//     onward — then, at each node it touches, stepping sideways into
//     negative propagation via the unexported negativeStep.
//   - NegativeFrom walks forward from a node's outgoing edges the same way,
//     for callers (linkop) that need to push a retraction ({absent}) through
//     an edge that no longer exists rather than through a score change.
//   - RetractNegative forces a single node to re-derive its own
//     negative_score from its current outgoing edges and cascade the result,
//     for callers (opinionop) that just severed one of that node's outgoing
//     edges by deleting its target outright rather than the edge alone.
//
// Both directions share the "refresh" escape hatch: when an incoming value
// is itself absent, or a caller explicitly requests it (after a structural
// change rather than a simple score update), the target recomputes its
// child aggregate from scratch over all its current incoming edges instead
// of admitting a single candidate. This is what makes edge deletion and
// AND-node minimum-supporter replacement correct: admission alone can only
// ever make an aggregate more extreme, never walk it back.
package propagate
