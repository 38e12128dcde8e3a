package propagate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/graph"
)

// TestNegativeStepPushesOpposeAttack: when target's ChildPositive is set via
// an OPPOSE-in attacker's positive propagation, the attacker's own
// negative_score absorbs revert(target.ChildPositive).
func TestNegativeStepPushesOpposeAttack(t *testing.T) {
	g := graph.NewGraph()
	newOpinion(g, "target", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "attacker", graph.LogicOR, graph.NodeSolid)
	link(t, g, "l1", "attacker", "target", graph.LinkOppose)

	p := New(g, 256)
	patchLeaf(t, p, g, "target", arith.Of(0.8))
	patchLeaf(t, p, g, "attacker", arith.Of(0.1))

	attacker, err := g.Opinion("attacker")
	require.NoError(t, err)
	require.True(t, attacker.Negative.Present)
	require.InDelta(t, 1-0.8, attacker.Negative.Value, 1e-9)
}

// TestNegativeRecursiveDominanceKeepsStrongerAttack: a smaller candidate
// (the stronger attack, since negative_score is compared numerically and
// the weakest-surviving-attack convention means a smaller value always
// wins) replaces a larger current value; a larger candidate never
// overwrites a smaller (already-stronger) recorded attack.
func TestNegativeRecursiveDominanceKeepsStrongerAttack(t *testing.T) {
	g := graph.NewGraph()
	newOpinion(g, "n", graph.LogicOR, graph.NodeSolid)

	p := New(g, 256)
	ctx := context.Background()
	updated := map[string]*Update{}

	require.NoError(t, p.negativeRecursive(ctx, 0, "n", arith.Of(0.5), updated))
	n, err := g.Opinion("n")
	require.NoError(t, err)
	require.InDelta(t, 0.5, n.Negative.Value, 1e-9)

	// A larger (weaker) candidate does not overwrite the stronger 0.5.
	require.NoError(t, p.negativeRecursive(ctx, 0, "n", arith.Of(0.9), updated))
	n, err = g.Opinion("n")
	require.NoError(t, err)
	require.InDelta(t, 0.5, n.Negative.Value, 1e-9)

	// A smaller (stronger) candidate does overwrite it.
	require.NoError(t, p.negativeRecursive(ctx, 0, "n", arith.Of(0.2), updated))
	n, err = g.Opinion("n")
	require.NoError(t, err)
	require.InDelta(t, 0.2, n.Negative.Value, 1e-9)
}

// TestRetractNegativeRederivesAfterOutgoingEdgeGone: "supporter" attacks
// "victim" (OPPOSE), absorbing revert(victim.child_positive) as its own
// negative_score. Once the link to victim is gone (victim deleted outright
// rather than just the edge), RetractNegative must re-derive supporter's
// negative_score from its remaining outgoing edges rather than leave the
// stale value in place.
func TestRetractNegativeRederivesAfterOutgoingEdgeGone(t *testing.T) {
	g := graph.NewGraph()
	newOpinion(g, "victim", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "supporter", graph.LogicOR, graph.NodeSolid)
	link(t, g, "l1", "supporter", "victim", graph.LinkOppose)

	p := New(g, 256)
	patchLeaf(t, p, g, "victim", arith.Of(0.9))
	// Patching the attacking leaf refreshes victim, whose negative step then
	// pushes revert(0.9) to supporter.
	patchLeaf(t, p, g, "supporter", arith.Of(0.5))

	supporter, err := g.Opinion("supporter")
	require.NoError(t, err)
	require.True(t, supporter.Negative.Present)
	require.InDelta(t, 1-0.9, supporter.Negative.Value, 1e-9)

	require.NoError(t, g.RemoveLink("l1"))

	ctx := context.Background()
	updated := map[string]*Update{}
	require.NoError(t, p.RetractNegative(ctx, "supporter", updated))

	supporter, err = g.Opinion("supporter")
	require.NoError(t, err)
	require.False(t, supporter.Negative.Present)
}

// TestDepthGuardRejectsOversizedRecursion exercises the resource budget:
// a propagator with a tiny MaxDepth aborts before runaway
// recursion rather than walking the whole chain.
func TestDepthGuardRejectsOversizedRecursion(t *testing.T) {
	g := graph.NewGraph()
	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		newOpinion(g, id, graph.LogicOR, graph.NodeSolid)
	}
	for i := 0; i < len(ids)-1; i++ {
		link(t, g, "l"+ids[i], ids[i], ids[i+1], graph.LinkSupport)
	}

	// A scored head, so the walk is not cut short by the absent-value exit.
	require.NoError(t, g.MutateOpinion("a", func(o *graph.Opinion) {
		o.Positive = arith.Of(0.5)
		o.ChildPositive = arith.Of(0.5)
	}))

	p := New(g, 2)
	err := p.Positive(context.Background(), "a", true, map[string]*Update{})
	require.Error(t, err)
}
