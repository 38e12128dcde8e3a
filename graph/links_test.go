package graph

import "testing"

func mustAddOpinions(t *testing.T, g *Graph, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := g.AddOpinion(&Opinion{ID: id, Logic: LogicOR, Node: NodeSolid}); err != nil {
			t.Fatalf("AddOpinion(%s): %v", id, err)
		}
	}
}

func TestAddLinkRejectsSelfLoop(t *testing.T) {
	g := NewGraph()
	mustAddOpinions(t, g, "a")
	if err := g.AddLink("l1", "a", "a", LinkSupport); err != ErrSelfLoop {
		t.Fatalf("AddLink(self-loop) = %v, want ErrSelfLoop", err)
	}
}

func TestAddLinkRejectsMissingEndpoints(t *testing.T) {
	g := NewGraph()
	mustAddOpinions(t, g, "a")
	if err := g.AddLink("l1", "a", "ghost", LinkSupport); err != ErrOpinionNotFound {
		t.Fatalf("AddLink(missing to) = %v, want ErrOpinionNotFound", err)
	}
	if err := g.AddLink("l1", "ghost", "a", LinkSupport); err != ErrOpinionNotFound {
		t.Fatalf("AddLink(missing from) = %v, want ErrOpinionNotFound", err)
	}
}

func TestAddLinkRejectsDuplicatePair(t *testing.T) {
	g := NewGraph()
	mustAddOpinions(t, g, "a", "b")
	if err := g.AddLink("l1", "a", "b", LinkSupport); err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	if err := g.AddLink("l2", "a", "b", LinkSupport); err != ErrLinkExists {
		t.Fatalf("AddLink(duplicate pair+type) = %v, want ErrLinkExists", err)
	}
	// Same pair but a different type is allowed.
	if err := g.AddLink("l3", "a", "b", LinkOppose); err != nil {
		t.Fatalf("AddLink(same pair, different type): %v", err)
	}
}

func TestLinkBetweenIsIdempotentLookup(t *testing.T) {
	g := NewGraph()
	mustAddOpinions(t, g, "a", "b")
	if err := g.AddLink("l1", "a", "b", LinkSupport); err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	id, ok := g.LinkBetween("a", "b", LinkSupport)
	if !ok || id != "l1" {
		t.Fatalf("LinkBetween = (%q,%v), want (l1,true)", id, ok)
	}
	if _, ok := g.LinkBetween("b", "a", LinkSupport); ok {
		t.Fatalf("LinkBetween should not find the reverse direction")
	}
}

func TestRemoveLinkCleansAdjacency(t *testing.T) {
	g := NewGraph()
	mustAddOpinions(t, g, "a", "b")
	if err := g.AddLink("l1", "a", "b", LinkSupport); err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	if err := g.RemoveLink("l1"); err != nil {
		t.Fatalf("RemoveLink: %v", err)
	}
	if g.HasLink("l1") {
		t.Fatalf("link still present after RemoveLink")
	}
	if len(g.Outgoing("a")) != 0 {
		t.Fatalf("Outgoing(a) not cleaned up after RemoveLink")
	}
	if len(g.Incoming("b")) != 0 {
		t.Fatalf("Incoming(b) not cleaned up after RemoveLink")
	}
	if _, ok := g.LinkBetween("a", "b", LinkSupport); ok {
		t.Fatalf("pair index not cleaned up after RemoveLink")
	}
}

func TestOutgoingIncomingSortedAndFiltered(t *testing.T) {
	g := NewGraph()
	mustAddOpinions(t, g, "a", "b", "c")
	if err := g.AddLink("l2", "a", "b", LinkSupport); err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	if err := g.AddLink("l1", "a", "c", LinkOppose); err != nil {
		t.Fatalf("AddLink: %v", err)
	}

	out := g.Outgoing("a")
	if len(out) != 2 || out[0].ID != "l1" || out[1].ID != "l2" {
		t.Fatalf("Outgoing(a) = %+v, want [l1,l2] sorted", out)
	}

	supportOnly := g.OutgoingOfType("a", LinkSupport)
	if len(supportOnly) != 1 || supportOnly[0].ID != "l2" {
		t.Fatalf("OutgoingOfType(a,SUPPORT) = %+v, want [l2]", supportOnly)
	}

	in := g.Incoming("b")
	if len(in) != 1 || in[0].ID != "l2" {
		t.Fatalf("Incoming(b) = %+v, want [l2]", in)
	}

	if g.InDegree("b") != 1 || g.OutDegree("a") != 2 {
		t.Fatalf("degree mismatch: InDegree(b)=%d OutDegree(a)=%d", g.InDegree("b"), g.OutDegree("a"))
	}
}

func TestLinkNotFound(t *testing.T) {
	g := NewGraph()
	if _, err := g.Link("ghost"); err != ErrLinkNotFound {
		t.Fatalf("Link(ghost) = %v, want ErrLinkNotFound", err)
	}
	if err := g.RemoveLink("ghost"); err != ErrLinkNotFound {
		t.Fatalf("RemoveLink(ghost) = %v, want ErrLinkNotFound", err)
	}
}
