package propagate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/graph"
)

func newOpinion(g *graph.Graph, id string, logic graph.LogicType, node graph.NodeType) {
	if err := g.AddOpinion(&graph.Opinion{ID: id, Content: id, Logic: logic, Node: node}); err != nil {
		panic(err)
	}
}

func link(t *testing.T, g *graph.Graph, id, from, to string, typ graph.LinkType) {
	t.Helper()
	require.NoError(t, g.AddLink(id, from, to, typ))
}

// patchLeaf simulates opinionop.PatchOpinion setting a leaf's displayed
// score and re-running propagation as a refresh (the leaf's value already
// existed, so descendants must recompute their aggregates from scratch
// rather than merely admit the new value; see propagate/doc.go).
func patchLeaf(t *testing.T, p *Propagator, g *graph.Graph, id string, v arith.Score) {
	t.Helper()
	require.NoError(t, g.MutateOpinion(id, func(o *graph.Opinion) {
		o.Positive = v
		o.ChildPositive = v
	}))
	require.NoError(t, p.Positive(context.Background(), id, true, map[string]*Update{}))
}

// TestORSupportAggregation: an OR parent with two SUPPORT-in leaves takes
// the max of their positive_score as child_positive.
func TestORSupportAggregation(t *testing.T) {
	g := graph.NewGraph()
	newOpinion(g, "leaf1", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "leaf2", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "parent", graph.LogicOR, graph.NodeSolid)
	link(t, g, "l1", "leaf1", "parent", graph.LinkSupport)
	link(t, g, "l2", "leaf2", "parent", graph.LinkSupport)

	p := New(g, 256)

	patchLeaf(t, p, g, "leaf1", arith.Of(0.3))
	patchLeaf(t, p, g, "leaf2", arith.Of(0.7))

	parent, err := g.Opinion("parent")
	require.NoError(t, err)
	require.True(t, parent.ChildPositive.Present)
	require.InDelta(t, 0.7, parent.ChildPositive.Value, 1e-9)
	require.InDelta(t, 0.7, parent.Positive.Value, 1e-9)
}

// TestANDMinRule: an AND parent's child_positive is the min of its SUPPORT-in
// operands.
func TestANDMinRule(t *testing.T) {
	g := graph.NewGraph()
	newOpinion(g, "op1", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "op2", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "and", graph.LogicAND, graph.NodeEmpty)
	link(t, g, "l1", "op1", "and", graph.LinkSupport)
	link(t, g, "l2", "op2", "and", graph.LinkSupport)

	p := New(g, 256)

	patchLeaf(t, p, g, "op1", arith.Of(0.9))
	patchLeaf(t, p, g, "op2", arith.Of(0.4))

	and, err := g.Opinion("and")
	require.NoError(t, err)
	require.InDelta(t, 0.4, and.ChildPositive.Value, 1e-9)
	require.InDelta(t, 0.4, and.Positive.Value, 1e-9)
}

// TestOROpposeAggregation: an OPPOSE-in leaf's positive_score becomes the
// target's child_negative, regardless of the target's logic type, and
// positive_score averages in revert(child_negative).
func TestOROpposeAggregation(t *testing.T) {
	g := graph.NewGraph()
	newOpinion(g, "support", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "attacker", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "target", graph.LogicOR, graph.NodeSolid)
	link(t, g, "l1", "support", "target", graph.LinkSupport)
	link(t, g, "l2", "attacker", "target", graph.LinkOppose)

	p := New(g, 256)

	patchLeaf(t, p, g, "support", arith.Of(1.0))
	patchLeaf(t, p, g, "attacker", arith.Of(0.6))

	target, err := g.Opinion("target")
	require.NoError(t, err)
	require.InDelta(t, 0.6, target.ChildNegative.Value, 1e-9)
	// positive_score = avg(child_positive=1.0, revert(child_negative)=0.4) = 0.7
	require.InDelta(t, 0.7, target.Positive.Value, 1e-9)
}

// TestANDMinShrinkRecomputesOnRefresh covers the AND-revert subtlety from
// the child-aggregate side: when the former bottleneck
// supporter rises past the other operand, a refresh recomputes child_positive
// from scratch rather than leaving it stuck at the old (now stale) minimum —
// the admission path alone cannot walk an aggregate back up, only refresh can.
func TestANDMinShrinkRecomputesOnRefresh(t *testing.T) {
	g := graph.NewGraph()
	newOpinion(g, "op1", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "op2", graph.LogicOR, graph.NodeSolid)
	newOpinion(g, "and", graph.LogicAND, graph.NodeEmpty)
	link(t, g, "l1", "op1", "and", graph.LinkSupport)
	link(t, g, "l2", "op2", "and", graph.LinkSupport)

	p := New(g, 256)

	// op1 is the bottleneck (lower) at 0.3; op2 sits at 0.8.
	patchLeaf(t, p, g, "op1", arith.Of(0.3))
	patchLeaf(t, p, g, "op2", arith.Of(0.8))

	and, err := g.Opinion("and")
	require.NoError(t, err)
	require.InDelta(t, 0.3, and.ChildPositive.Value, 1e-9)

	// op1 rises above op2: op2 becomes the new bottleneck.
	patchLeaf(t, p, g, "op1", arith.Of(0.95))

	and, err = g.Opinion("and")
	require.NoError(t, err)
	require.InDelta(t, 0.8, and.ChildPositive.Value, 1e-9)
	require.InDelta(t, 0.8, and.Positive.Value, 1e-9)
}

func TestAdmitsPositiveAtOR(t *testing.T) {
	require.True(t, admits(graph.LogicOR, DirPositive, arith.Of(0.5), arith.Absent))
	require.True(t, admits(graph.LogicOR, DirPositive, arith.Of(0.5), arith.Of(0.3)))
	require.False(t, admits(graph.LogicOR, DirPositive, arith.Of(0.2), arith.Of(0.3)))
}

func TestAdmitsPositiveAtAND(t *testing.T) {
	require.True(t, admits(graph.LogicAND, DirPositive, arith.Of(0.2), arith.Of(0.3)))
	require.False(t, admits(graph.LogicAND, DirPositive, arith.Of(0.5), arith.Of(0.3)))
}

func TestAdmitsNegative(t *testing.T) {
	require.True(t, admits(graph.LogicOR, DirNegative, arith.Of(0.5), arith.Of(0.3)))
	require.False(t, admits(graph.LogicOR, DirNegative, arith.Of(0.2), arith.Of(0.3)))
}
