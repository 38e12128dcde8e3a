// Package opinionop is the Opinion Engine: creation, deletion, leaf
// patching, and read-side query/info/head enumeration for opinions. It
// sits above graph.Graph (topology and scores) and debate.Index
// (membership), driving propagate.Propagator for every mutation that can
// change a displayed score.
//
// Split one concern per file: a thin Engine type wraps a *graph.Graph plus
// whatever auxiliary stores an operation needs, rather than free functions
// taking the graph as a parameter.
package opinionop

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/opendebate/argraph/apierr"
	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/debate"
	"github.com/opendebate/argraph/graph"
	"github.com/opendebate/argraph/propagate"
	"github.com/opendebate/argraph/store"
)

// ErrNotLeaf indicates PatchOpinion was called against a node with
// incoming edges.
var ErrNotLeaf = errors.New("opinionop: opinion is not a leaf")

// ErrNotOR indicates an operation that requires an OR node (create_and's
// parent) was given an AND node instead.
var ErrNotOR = errors.New("opinionop: opinion is not an OR node")

// MetadataStore is the narrow slice of *store.Store the Opinion Engine
// needs, the same interface-inversion debate.MetadataStore applies — tests
// substitute an in-memory fake instead of a live database.
type MetadataStore interface {
	InsertOpinion(ctx context.Context, rec store.OpinionRecord) error
	UpdateOpinionContent(ctx context.Context, id, content string) error
	DeleteOpinion(ctx context.Context, id string) error
	InsertLink(ctx context.Context, rec store.LinkRecord) error
}

var _ MetadataStore = (*store.Store)(nil)

// Engine is the Opinion Engine: graph topology/scores, durable metadata,
// debate membership, and the score propagator, wired together behind the
// operation surface it exposes.
type Engine struct {
	Graph    *graph.Graph
	Metadata MetadataStore
	Debates  *debate.Index
	Prop     *propagate.Propagator
}

// New builds an Engine bound to the given graph, metadata store, debate
// index, and propagator (all constructed and owned by engine.Engine, the
// top-level facade).
func New(g *graph.Graph, metadata MetadataStore, debates *debate.Index, prop *propagate.Propagator) *Engine {
	return &Engine{Graph: g, Metadata: metadata, Debates: debates, Prop: prop}
}

// CreateOR allocates a new OR/solid opinion, records it in debateID and the
// global debate, and optionally seeds it with a leaf positive_score
// No propagation runs: a freshly created node has no edges yet.
func (e *Engine) CreateOR(ctx context.Context, content, creator, debateID string, seed *arith.Score, createdAt int64) (string, error) {
	if content == "" {
		return "", apierr.New(apierr.KindValidation, "opinionop.CreateOR", errors.New("content is empty"))
	}

	id := uuid.New().String()
	op := &graph.Opinion{
		ID:      id,
		Content: content,
		Logic:   graph.LogicOR,
		Node:    graph.NodeSolid,
		Creator: creator,
	}
	if seed != nil {
		op.Positive = *seed
		op.ChildPositive = *seed
	}

	if err := e.Graph.AddOpinion(op); err != nil {
		return "", apierr.Wrapf(apierr.KindStorage, "opinionop.CreateOR", err, "adding opinion %s", id)
	}

	if err := e.Metadata.InsertOpinion(ctx, store.OpinionRecord{
		ID: id, Content: content, LogicType: string(graph.LogicOR), NodeType: string(graph.NodeSolid),
		Creator: creator, CreatedAt: createdAt,
	}); err != nil {
		return "", apierr.Wrapf(apierr.KindStorage, "opinionop.CreateOR", err, "inserting opinion %s", id)
	}

	if err := e.joinDebates(ctx, id, debateID); err != nil {
		return "", err
	}

	return id, nil
}

// joinDebates records membership of id in debateID and, if distinct, the
// global debate: every node created is a member of both its home debate and
// the global debate.
func (e *Engine) joinDebates(ctx context.Context, id, debateID string) error {
	if err := e.Debates.CiteInDebate(ctx, id, debateID); err != nil {
		return err
	}
	globalID, err := e.Debates.GlobalDebateID(ctx)
	if err != nil {
		return err
	}
	if globalID != "" && globalID != debateID {
		if err := e.Debates.CiteInDebate(ctx, id, globalID); err != nil {
			return err
		}
	}
	return nil
}

// PatchOpinion updates a leaf's content and/or positive_score. score is nil
// to leave the score unchanged, or a pointer to an arith.Score (itself
// possibly Absent) to set it explicitly. Rejects with ErrNotLeaf if the
// node has incoming
// edges.
func (e *Engine) PatchOpinion(ctx context.Context, id string, content *string, score *arith.Score, updated map[string]*propagate.Update) error {
	if e.Graph.InDegree(id) != 0 {
		return apierr.New(apierr.KindValidation, "opinionop.PatchOpinion", ErrNotLeaf)
	}

	if content != nil {
		if err := e.Metadata.UpdateOpinionContent(ctx, id, *content); err != nil {
			return apierr.Wrapf(apierr.KindStorage, "opinionop.PatchOpinion", err, "updating content of %s", id)
		}
		if err := e.Graph.MutateOpinion(id, func(o *graph.Opinion) { o.Content = *content }); err != nil {
			return apierr.Wrapf(apierr.KindStorage, "opinionop.PatchOpinion", err, "updating content of %s", id)
		}
	}

	if score == nil {
		return nil
	}

	if err := e.Graph.MutateOpinion(id, func(o *graph.Opinion) {
		o.Positive = *score
		o.ChildPositive = *score
	}); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "opinionop.PatchOpinion", err, "setting score of %s", id)
	}

	if err := e.Prop.Positive(ctx, id, true, updated); err != nil {
		return apierr.Wrapf(apierr.KindPropagation, "opinionop.PatchOpinion", err, "propagating from %s", id)
	}
	return nil
}

// DeleteOpinion removes id from debateID's membership. If debateID is the
// global debate, the node itself (and all its edges) is destroyed: its
// positive_score is first set absent and propagated forward so whatever it
// supported or opposed forgets its contribution, then its edges are removed
// from the graph store and the node from both stores (the edges' link rows
// in the metadata store are not deleted), and finally every former supporter or
// attacker (an incoming neighbour, which just lost one of its own outgoing
// edges) has its negative score re-derived from scratch.
func (e *Engine) DeleteOpinion(ctx context.Context, id, debateID string, updated map[string]*propagate.Update) error {
	global, err := e.Debates.IsGlobal(ctx, debateID)
	if err != nil {
		return err
	}

	if !global {
		if err := e.Metadata.DeleteOpinion(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
			return apierr.Wrapf(apierr.KindStorage, "opinionop.DeleteOpinion", err, "retracting %s from %s", id, debateID)
		}
		return nil
	}

	outgoing := e.Graph.Outgoing(id)
	incoming := e.Graph.Incoming(id)

	if err := e.Graph.MutateOpinion(id, func(o *graph.Opinion) { o.Positive = arith.Absent }); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "opinionop.DeleteOpinion", err, "clearing score of %s", id)
	}
	if err := e.Prop.Positive(ctx, id, true, updated); err != nil {
		return apierr.Wrapf(apierr.KindPropagation, "opinionop.DeleteOpinion", err, "propagating absence from %s", id)
	}

	for _, l := range outgoing {
		if err := e.Graph.RemoveLink(l.ID); err != nil {
			return apierr.Wrapf(apierr.KindStorage, "opinionop.DeleteOpinion", err, "removing link %s", l.ID)
		}
	}
	for _, l := range incoming {
		if err := e.Graph.RemoveLink(l.ID); err != nil {
			return apierr.Wrapf(apierr.KindStorage, "opinionop.DeleteOpinion", err, "removing link %s", l.ID)
		}
	}

	if err := e.Graph.RemoveOpinion(id); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "opinionop.DeleteOpinion", err, "removing opinion %s", id)
	}
	if err := e.Metadata.DeleteOpinion(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return apierr.Wrapf(apierr.KindStorage, "opinionop.DeleteOpinion", err, "deleting opinion %s", id)
	}

	for _, l := range incoming {
		if err := e.Prop.RetractNegative(ctx, l.From, updated); err != nil {
			return apierr.Wrapf(apierr.KindPropagation, "opinionop.DeleteOpinion", err, "retracting negative at %s", l.From)
		}
	}

	return nil
}
