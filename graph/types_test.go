package graph

import "testing"

func TestNewGraphEmpty(t *testing.T) {
	g := NewGraph()
	if g.OpinionCount() != 0 {
		t.Fatalf("new graph should have zero opinions")
	}
	if len(g.Links()) != 0 {
		t.Fatalf("new graph should have zero links")
	}
}

func TestOpinionCloneIsIndependent(t *testing.T) {
	g := NewGraph()
	if err := g.AddOpinion(&Opinion{ID: "a", Content: "x", Logic: LogicOR, Node: NodeSolid}); err != nil {
		t.Fatalf("AddOpinion: %v", err)
	}
	op, err := g.Opinion("a")
	if err != nil {
		t.Fatalf("Opinion: %v", err)
	}
	op.Content = "mutated"

	fresh, err := g.Opinion("a")
	if err != nil {
		t.Fatalf("Opinion: %v", err)
	}
	if fresh.Content != "x" {
		t.Fatalf("mutating a returned clone leaked into the store: got %q", fresh.Content)
	}
}
