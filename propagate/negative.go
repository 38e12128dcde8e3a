// File: negative.go
// Role: sideways (negative) propagation — a node's *child* aggregates (not
// its displayed scores) pushed back into its own supporters/attackers, and
// the re-derivation walk that recomputes a node's negative_score from its
// outgoing edges after one of its neighbours changes.
//
// The single-node step reads ChildNegative/ChildPositive off the SAME node
// it is stepping from, not its displayed Negative/Positive — there is no
// need for the "_from" variant here, which is why positiveRecursive's tail
// call lands here directly rather than through NegativeFrom.
package propagate

import (
	"context"

	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/graph"
)

// NegativeFrom runs negative propagation starting at node id's outgoing
// targets: it reads id's current negative_score and pushes it (reverted) as
// a negative contribution to whatever id opposes, and forwards id's
// positive_score sideways through the link-retract paths that call this
// directly (linkop's delete_link). External callers use this
// entry point; the propagator's own recursion uses the unexported
// node-local negativeStep instead (see package doc).
func (p *Propagator) NegativeFrom(ctx context.Context, id string, updated map[string]*Update) error {
	return p.negativeFrom(ctx, 0, id, updated)
}

// RetractNegative forces id's own negative_score to be re-derived from its
// current outgoing edges rather than admitting a single candidate, then
// cascades the result to id's incoming neighbours. Callers use this when one
// of id's outgoing edges has just vanished because its target was deleted
// outright (opinionop.DeleteOpinion), so id's previous negative_score may no
// longer be the true minimum.
func (p *Propagator) RetractNegative(ctx context.Context, id string, updated map[string]*Update) error {
	return p.negativeRecursive(ctx, 0, id, arith.Absent, updated)
}

func (p *Propagator) negativeFrom(ctx context.Context, depth int, id string, updated map[string]*Update) error {
	if err := depthGuard(ctx, depth, p.MaxDepth); err != nil {
		return err
	}

	node, err := p.Graph.Opinion(id)
	if err != nil {
		return err
	}

	if node.Logic == graph.LogicOR {
		contribution := arith.Revert(node.ChildNegative)
		for _, l := range p.Graph.IncomingOfType(id, graph.LinkSupport) {
			if err := p.negativeRecursive(ctx, depth+1, l.From, contribution, updated); err != nil {
				return err
			}
		}
	}

	attack := node.ChildPositive
	for _, l := range p.Graph.IncomingOfType(id, graph.LinkOppose) {
		if err := p.negativeRecursive(ctx, depth+1, l.From, attack, updated); err != nil {
			return err
		}
	}

	return nil
}

// negativeStep is the node-local sideways step run at the tail of every
// positiveRecursive call on the same node: id's current child aggregates
// (just recomputed by the positive side) are pushed to id's own
// supporters/attackers. An OR node reverts its child_negative to its
// SUPPORT-in neighbours (a disjunctive node whose best attack sharpens makes
// its supporters look a little less convincing); an AND node never does this
// (its supporters are operands of a conjunction, not independently
// attackable through it). Every node, OR or AND, always reverts its
// child_positive to its OPPOSE-in neighbours — an argument that opposes a
// strengthening target is itself weakened regardless of the target's logic.
func (p *Propagator) negativeStep(ctx context.Context, depth int, id string, updated map[string]*Update) error {
	if err := depthGuard(ctx, depth, p.MaxDepth); err != nil {
		return err
	}

	node, err := p.Graph.Opinion(id)
	if err != nil {
		return err
	}

	if node.Logic == graph.LogicOR {
		contribution := arith.Revert(node.ChildNegative)
		for _, l := range p.Graph.IncomingOfType(id, graph.LinkSupport) {
			if err := p.negativeRecursive(ctx, depth+1, l.From, contribution, updated); err != nil {
				return err
			}
		}
	}

	attack := arith.Revert(node.ChildPositive)
	for _, l := range p.Graph.IncomingOfType(id, graph.LinkOppose) {
		if err := p.negativeRecursive(ctx, depth+1, l.From, attack, updated); err != nil {
			return err
		}
	}

	return nil
}

// negativeRecursive admits candidate s as node id's negative_score if the
// current value is absent or numerically larger than s: negative_score is
// min-dominated, so a larger candidate never replaces a smaller one. An
// absent s is a retraction: it is first replaced by a re-derivation from
// id's outgoing edges (rederiveNegative), and the same test then applies,
// except that an absent result replaces any current value. A changed value
// is recorded in updated and negativeFrom runs from id; an unchanged value
// stops the walk.
func (p *Propagator) negativeRecursive(ctx context.Context, depth int, id string, s arith.Score, updated map[string]*Update) error {
	if err := depthGuard(ctx, depth, p.MaxDepth); err != nil {
		return err
	}

	node, err := p.Graph.Opinion(id)
	if err != nil {
		return err
	}

	if !s.Present {
		fresh, err := p.rederiveNegative(id)
		if err != nil {
			return err
		}
		s = fresh
	}

	current := node.Negative
	if arith.Equal(current, s) {
		return nil
	}
	if current.Present && s.Present && current.Value <= s.Value {
		return nil
	}

	if err := p.Graph.MutateOpinion(id, func(o *graph.Opinion) {
		o.Negative = s
	}); err != nil {
		return err
	}
	markNegative(updated, id, s)

	return p.negativeFrom(ctx, depth+1, id, updated)
}

// rederiveNegative recomputes id's true negative_score from its outgoing
// edges, scanning the opposite direction from refreshChild's positive case:
// refreshChild looks at what feeds id (incoming); this looks at what id
// feeds into (outgoing), since negative_score measures attacks absorbed
// through id's own participation as a supporter or attacker elsewhere.
func (p *Propagator) rederiveNegative(id string) (arith.Score, error) {
	vals := make([]arith.Score, 0, 4)

	for _, l := range p.Graph.OutgoingOfType(id, graph.LinkSupport) {
		target, err := p.Graph.Opinion(l.To)
		if err != nil {
			return arith.Absent, err
		}
		if target.Logic != graph.LogicOR {
			continue
		}
		vals = append(vals, target.Negative, arith.Revert(target.ChildNegative))
	}

	for _, l := range p.Graph.OutgoingOfType(id, graph.LinkOppose) {
		target, err := p.Graph.Opinion(l.To)
		if err != nil {
			return arith.Absent, err
		}
		vals = append(vals, arith.Revert(target.Negative), target.ChildPositive)
	}

	return arith.Min(vals...), nil
}
