// File: positive.go
// Role: forward (positive) propagation — a node's displayed positive_score
// pushed through its outgoing edges, admitted into each target's child
// aggregate, and recomputed into that target's own positive_score before
// recursing further.
//
// The admission rules, the is_refresh forwarding test, and the AND-node
// revert subtlety follow one exact recursive shape throughout, rather than
// an approximation reconstructed independently at each call site.
package propagate

import (
	"context"

	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/graph"
)

// Positive runs positive propagation from id: it reads id's current
// positive_score and pushes it to every outgoing SUPPORT target (as a
// positive contribution) and every outgoing OPPOSE target (as a negative
// contribution). isRefresh forces every descendant to recompute its child
// aggregate from scratch rather than admit the single new value (used after
// a leaf retraction, edge deletion, or retype).
func (p *Propagator) Positive(ctx context.Context, id string, isRefresh bool, updated map[string]*Update) error {
	return p.positiveFrom(ctx, 0, id, isRefresh, updated)
}

// RefreshAt forces id to recompute its child_d aggregate (d selected by dir)
// from its current incoming edges and cascade the result onward, without a
// single new contribution to admit. Callers use this after removing an
// edge into id (linkop.DeleteLink, linkop.PatchLink's delete+create) to
// declare "the contribution this edge used to carry is now absent" — the
// same effect as positive-recursive receiving an absent v with is_refresh
// set.
func (p *Propagator) RefreshAt(ctx context.Context, id string, dir Direction, updated map[string]*Update) error {
	return p.positiveRecursive(ctx, 0, id, arith.Absent, dir, true, updated)
}

func (p *Propagator) positiveFrom(ctx context.Context, depth int, id string, isRefresh bool, updated map[string]*Update) error {
	if err := depthGuard(ctx, depth, p.MaxDepth); err != nil {
		return err
	}

	node, err := p.Graph.Opinion(id)
	if err != nil {
		return err
	}
	v := node.Positive

	for _, l := range p.Graph.OutgoingOfType(id, graph.LinkSupport) {
		if err := p.positiveRecursive(ctx, depth+1, l.To, v, DirPositive, isRefresh, updated); err != nil {
			return err
		}
	}
	for _, l := range p.Graph.OutgoingOfType(id, graph.LinkOppose) {
		if err := p.positiveRecursive(ctx, depth+1, l.To, v, DirNegative, isRefresh, updated); err != nil {
			return err
		}
	}

	return nil
}

// positiveRecursive admits incoming value v (direction dir) into node id's
// child aggregate, then — if that aggregate changed — recomputes the node's
// displayed positive_score and recurses onward.
func (p *Propagator) positiveRecursive(ctx context.Context, depth int, id string, v arith.Score, dir Direction, isRefresh bool, updated map[string]*Update) error {
	if err := depthGuard(ctx, depth, p.MaxDepth); err != nil {
		return err
	}

	node, err := p.Graph.Opinion(id)
	if err != nil {
		return err
	}

	childBefore, otherBefore := node.ChildPositive, node.ChildNegative
	if dir == DirNegative {
		childBefore, otherBefore = node.ChildNegative, node.ChildPositive
	}

	// Early exit: nothing present anywhere that this update could touch.
	if !v.Present && !childBefore.Present && !otherBefore.Present {
		return nil
	}

	childChanged := false

	switch {
	case isRefresh || !v.Present:
		changed, err := p.refreshChild(ctx, depth, id, dir, updated)
		if err != nil {
			return err
		}
		childChanged = changed

	case admits(node.Logic, dir, v, childBefore):
		if dir == DirPositive && node.Logic == graph.LogicAND && childBefore.Present {
			if err := p.revertANDMinimum(ctx, depth, id, childBefore, v, updated); err != nil {
				return err
			}
		}
		if err := p.Graph.MutateOpinion(id, func(o *graph.Opinion) {
			if dir == DirPositive {
				o.ChildPositive = v
			} else {
				o.ChildNegative = v
			}
		}); err != nil {
			return err
		}
		childChanged = true
	}

	if !childChanged {
		return nil
	}

	return p.recomputeAndCascade(ctx, depth, id, updated)
}

// admits reports whether v should replace a node's current child aggregate
// for direction dir, per the "admits" rule:
//   - positive at OR: admit if absent or v is the new strict max candidate.
//   - positive at AND: admit if absent or v is the new strict min candidate.
//   - negative at any node: admit if absent or v is the new strict max candidate.
func admits(logic graph.LogicType, dir Direction, v, childBefore arith.Score) bool {
	if !childBefore.Present {
		return true
	}
	if dir == DirPositive && logic == graph.LogicAND {
		return v.Present && v.Value < childBefore.Value
	}

	return v.Present && v.Value > childBefore.Value
}

// recomputeAndCascade recomputes id's displayed positive_score from its
// (just-updated) child aggregates, records the change, recurses onward
// through id's outgoing edges, and finally runs negative propagation
// sideways from id.
func (p *Propagator) recomputeAndCascade(ctx context.Context, depth int, id string, updated map[string]*Update) error {
	before, err := p.Graph.Opinion(id)
	if err != nil {
		return err
	}
	oldPositive := before.Positive

	var newPositive arith.Score
	if err := p.Graph.MutateOpinion(id, func(o *graph.Opinion) {
		newPositive = arith.Avg(o.ChildPositive, arith.Revert(o.ChildNegative))
		o.Positive = newPositive
	}); err != nil {
		return err
	}

	if !arith.Equal(oldPositive, newPositive) {
		markPositive(updated, id, newPositive)
	}

	for _, l := range p.Graph.OutgoingOfType(id, graph.LinkSupport) {
		target, err := p.Graph.Opinion(l.To)
		if err != nil {
			return err
		}
		nextRefresh := arith.Equal(oldPositive, target.ChildPositive)
		if err := p.positiveRecursive(ctx, depth+1, l.To, newPositive, DirPositive, nextRefresh, updated); err != nil {
			return err
		}
	}
	for _, l := range p.Graph.OutgoingOfType(id, graph.LinkOppose) {
		target, err := p.Graph.Opinion(l.To)
		if err != nil {
			return err
		}
		nextRefresh := arith.Equal(oldPositive, target.ChildNegative)
		if err := p.positiveRecursive(ctx, depth+1, l.To, newPositive, DirNegative, nextRefresh, updated); err != nil {
			return err
		}
	}

	return p.negativeStep(ctx, depth+1, id, updated)
}

// refreshChild recomputes node id's child aggregate for dir from its current
// incoming edges (rule 6 for positive, rule 7 for negative) rather than
// absorbing a single new value. For the positive direction at an AND node,
// an aggregate that rises (its former minimum supporter is gone) still
// needs the old minimum's negative contribution retracted, mirroring the
// non-refresh admission path.
func (p *Propagator) refreshChild(ctx context.Context, depth int, id string, dir Direction, updated map[string]*Update) (bool, error) {
	node, err := p.Graph.Opinion(id)
	if err != nil {
		return false, err
	}

	var fresh arith.Score
	var before arith.Score
	if dir == DirPositive {
		before = node.ChildPositive
		vals, err := p.supportScores(id)
		if err != nil {
			return false, err
		}
		if node.Logic == graph.LogicAND {
			fresh = arith.Min(vals...)
		} else {
			fresh = arith.Max(vals...)
		}
	} else {
		before = node.ChildNegative
		vals, err := p.opposeScores(id)
		if err != nil {
			return false, err
		}
		fresh = arith.Max(vals...)
	}

	if arith.Equal(before, fresh) {
		return false, nil
	}

	if dir == DirPositive && node.Logic == graph.LogicAND && before.Present && fresh.Present && fresh.Value > before.Value {
		if err := p.revertANDMinimum(ctx, depth, id, before, fresh, updated); err != nil {
			return false, err
		}
	}

	if err := p.Graph.MutateOpinion(id, func(o *graph.Opinion) {
		if dir == DirPositive {
			o.ChildPositive = fresh
		} else {
			o.ChildNegative = fresh
		}
	}); err != nil {
		return false, err
	}

	return true, nil
}

func (p *Propagator) supportScores(id string) ([]arith.Score, error) {
	links := p.Graph.IncomingOfType(id, graph.LinkSupport)
	vals := make([]arith.Score, 0, len(links))
	for _, l := range links {
		s, err := p.Graph.Opinion(l.From)
		if err != nil {
			return nil, err
		}
		vals = append(vals, s.Positive)
	}

	return vals, nil
}

func (p *Propagator) opposeScores(id string) ([]arith.Score, error) {
	links := p.Graph.IncomingOfType(id, graph.LinkOppose)
	vals := make([]arith.Score, 0, len(links))
	for _, l := range links {
		s, err := p.Graph.Opinion(l.From)
		if err != nil {
			return nil, err
		}
		vals = append(vals, s.Positive)
	}

	return vals, nil
}

// revertANDMinimum handles a tricky subtlety: and.ID's child_positive is about to move from
// oldMin to newMin. Supporters whose positive_score equalled oldMin were the
// previous bottleneck and may have had a negative contribution pushed
// through and.ID on their behalf; that contribution is retracted (refresh
// with absent). Supporters now equal to newMin become the new bottleneck and
// inherit and.ID's current displayed negative_score as their own negative
// contribution.
func (p *Propagator) revertANDMinimum(ctx context.Context, depth int, andID string, oldMin, newMin arith.Score, updated map[string]*Update) error {
	node, err := p.Graph.Opinion(andID)
	if err != nil {
		return err
	}
	ownNegative := node.Negative

	for _, l := range p.Graph.IncomingOfType(andID, graph.LinkSupport) {
		supporter, err := p.Graph.Opinion(l.From)
		if err != nil {
			return err
		}
		if arith.Equal(supporter.Positive, oldMin) {
			if err := p.negativeRecursive(ctx, depth+1, l.From, arith.Absent, updated); err != nil {
				return err
			}
		}
	}

	for _, l := range p.Graph.IncomingOfType(andID, graph.LinkSupport) {
		supporter, err := p.Graph.Opinion(l.From)
		if err != nil {
			return err
		}
		if arith.Equal(supporter.Positive, newMin) {
			if err := p.negativeRecursive(ctx, depth+1, l.From, ownNegative, updated); err != nil {
				return err
			}
		}
	}

	return nil
}
