// Package linkop is the Link Engine: edge creation, deletion, retyping, and
// the "attack" operation that materializes a reasoning step as its own
// attackable proposition. Every mutation drives propagate.Propagator so
// displayed scores never lag the topology.
//
// Split across linkop.go (create/delete/retype) and attack.go, the same
// one-concern-per-file structure opinionop uses.
package linkop

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/opendebate/argraph/apierr"
	"github.com/opendebate/argraph/cycle"
	"github.com/opendebate/argraph/debate"
	"github.com/opendebate/argraph/graph"
	"github.com/opendebate/argraph/propagate"
	"github.com/opendebate/argraph/store"
)

// ErrSameEndpoint indicates CreateLink was called with from == to.
var ErrSameEndpoint = errors.New("linkop: from and to must differ")

// ErrANDEndpoint indicates CreateLink referenced an AND node; ANDs are
// wired only by opinionop.CreateAND.
var ErrANDEndpoint = errors.New("linkop: AND nodes cannot be linked directly")

// ErrCycle indicates the prospective edge would close a directed cycle.
var ErrCycle = errors.New("linkop: edge would close a cycle")

// ErrNotOR indicates AttackLink's target (the edge's "to" endpoint) is not
// an OR node; only OR nodes can host a materialized AND challenge.
var ErrNotOR = errors.New("linkop: opinion is not an OR node")

// MetadataStore is the narrow slice of *store.Store the Link Engine needs,
// the same interface-inversion opinionop.MetadataStore and
// debate.MetadataStore apply.
type MetadataStore interface {
	InsertLink(ctx context.Context, rec store.LinkRecord) error
	DeleteLink(ctx context.Context, id string) error
	GetLink(ctx context.Context, id string) (store.LinkRecord, error)
	InsertOpinion(ctx context.Context, rec store.OpinionRecord) error
}

var _ MetadataStore = (*store.Store)(nil)

// Engine is the Link Engine: graph topology, durable metadata, debate
// membership (needed by AttackLink's materialized OR node), and the score
// propagator.
type Engine struct {
	Graph    *graph.Graph
	Metadata MetadataStore
	Debates  *debate.Index
	Prop     *propagate.Propagator
}

// New builds an Engine bound to the given graph, metadata store, debate
// index, and propagator (all constructed and owned by engine.Engine).
func New(g *graph.Graph, metadata MetadataStore, debates *debate.Index, prop *propagate.Propagator) *Engine {
	return &Engine{Graph: g, Metadata: metadata, Debates: debates, Prop: prop}
}

// joinDebates records membership of id in debateID and, if distinct, the
// global debate, mirroring opinionop.Engine.joinDebates — the
// same rule applies to the OR node AttackLink materializes.
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

// CreateLink creates a directed from->to edge of the given type. If the
// edge already exists, its UID is returned idempotently with no further
// effect. Otherwise: neither endpoint may be an AND node, from must differ
// from to, no path from to back to from may already exist (the cycle
// guard), and the prospective edge's longest chain must not exceed the
// propagator's recursion-depth budget. On success, positive propagation
// runs from fromID.
func (e *Engine) CreateLink(ctx context.Context, fromID, toID string, typ graph.LinkType, creator string, createdAt int64, updated map[string]*propagate.Update) (string, error) {
	if fromID == toID {
		return "", apierr.New(apierr.KindValidation, "linkop.CreateLink", ErrSameEndpoint)
	}

	if id, ok := e.Graph.LinkBetween(fromID, toID, typ); ok {
		return id, nil
	}

	from, err := e.Graph.Opinion(fromID)
	if err != nil {
		return "", apierr.Wrapf(apierr.KindNotFound, "linkop.CreateLink", err, "looking up %s", fromID)
	}
	to, err := e.Graph.Opinion(toID)
	if err != nil {
		return "", apierr.Wrapf(apierr.KindNotFound, "linkop.CreateLink", err, "looking up %s", toID)
	}
	if from.Logic == graph.LogicAND || to.Logic == graph.LogicAND {
		return "", apierr.New(apierr.KindValidation, "linkop.CreateLink", ErrANDEndpoint)
	}

	exists, err := cycle.PathExists(ctx, e.Graph, toID, fromID, e.Prop.MaxDepth)
	if err != nil {
		return "", apierr.Wrapf(apierr.KindPropagation, "linkop.CreateLink", err, "cycle check %s->%s", fromID, toID)
	}
	if exists {
		return "", apierr.New(apierr.KindConflict, "linkop.CreateLink", ErrCycle)
	}

	if e.Prop.MaxDepth > 0 {
		chainTo, err := cycle.LongestChainTo(ctx, e.Graph, fromID, e.Prop.MaxDepth)
		if err != nil {
			return "", apierr.Wrapf(apierr.KindPropagation, "linkop.CreateLink", err, "measuring chain into %s", fromID)
		}
		chainFrom, err := cycle.LongestChainFrom(ctx, e.Graph, toID, e.Prop.MaxDepth)
		if err != nil {
			return "", apierr.Wrapf(apierr.KindPropagation, "linkop.CreateLink", err, "measuring chain out of %s", toID)
		}
		if chainTo+1+chainFrom > e.Prop.MaxDepth {
			return "", apierr.New(apierr.KindPropagation, "linkop.CreateLink", cycle.ErrMaxDepthExceeded)
		}
	}

	id := uuid.New().String()
	if err := e.createLinkRecord(ctx, id, fromID, toID, typ, creator, createdAt); err != nil {
		return "", err
	}

	if err := e.Prop.Positive(ctx, fromID, false, updated); err != nil {
		return "", apierr.Wrapf(apierr.KindPropagation, "linkop.CreateLink", err, "propagating from %s", fromID)
	}

	return id, nil
}

func (e *Engine) createLinkRecord(ctx context.Context, id, from, to string, typ graph.LinkType, creator string, createdAt int64) error {
	if err := e.Graph.AddLink(id, from, to, typ); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "linkop.createLinkRecord", err, "adding link %s", id)
	}
	if err := e.Metadata.InsertLink(ctx, store.LinkRecord{
		ID: id, From: from, To: to, LinkType: string(typ), Creator: creator, CreatedAt: createdAt,
	}); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "linkop.createLinkRecord", err, "inserting link %s", id)
	}
	return nil
}

// DeleteLink removes a link. The target recomputes the aggregate the
// removed edge used to feed (child_positive if it was SUPPORT,
// child_negative if OPPOSE) from its remaining incoming edges, then the
// source's outgoing OPPOSE-derived negative contributions are retracted
// recursively.
func (e *Engine) DeleteLink(ctx context.Context, id string, updated map[string]*propagate.Update) error {
	l, err := e.Graph.Link(id)
	if err != nil {
		return apierr.Wrapf(apierr.KindNotFound, "linkop.DeleteLink", err, "looking up link %s", id)
	}

	if err := e.Graph.RemoveLink(id); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "linkop.DeleteLink", err, "removing link %s", id)
	}
	if err := e.Metadata.DeleteLink(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return apierr.Wrapf(apierr.KindStorage, "linkop.DeleteLink", err, "deleting link %s", id)
	}

	dir := propagate.DirPositive
	if l.Type == graph.LinkOppose {
		dir = propagate.DirNegative
	}
	if err := e.Prop.RefreshAt(ctx, l.To, dir, updated); err != nil {
		return apierr.Wrapf(apierr.KindPropagation, "linkop.DeleteLink", err, "refreshing %s", l.To)
	}

	if err := e.Prop.NegativeFrom(ctx, l.From, updated); err != nil {
		return apierr.Wrapf(apierr.KindPropagation, "linkop.DeleteLink", err, "retracting negative from %s", l.From)
	}

	return nil
}

// PatchLink retypes a link, preserving its UID. A no-op if newType equals
// the link's current type. Otherwise: delete the old edge (retracting its
// contribution the same way DeleteLink does, but without touching
// negative-from-source, since the new edge from the same source replaces
// it immediately), recreate it with newType under the same UID, then run
// positive propagation from fromID with isRefresh=true.
func (e *Engine) PatchLink(ctx context.Context, id string, newType graph.LinkType, updated map[string]*propagate.Update) error {
	l, err := e.Graph.Link(id)
	if err != nil {
		return apierr.Wrapf(apierr.KindNotFound, "linkop.PatchLink", err, "looking up link %s", id)
	}
	if l.Type == newType {
		return nil
	}

	rec, err := e.Metadata.GetLink(ctx, id)
	if err != nil {
		return apierr.Wrapf(apierr.KindStorage, "linkop.PatchLink", err, "loading link record %s", id)
	}

	if err := e.Graph.RemoveLink(id); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "linkop.PatchLink", err, "removing link %s", id)
	}
	if err := e.Metadata.DeleteLink(ctx, id); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "linkop.PatchLink", err, "deleting link record %s", id)
	}

	oldDir := propagate.DirPositive
	if l.Type == graph.LinkOppose {
		oldDir = propagate.DirNegative
	}
	if err := e.Prop.RefreshAt(ctx, l.To, oldDir, updated); err != nil {
		return apierr.Wrapf(apierr.KindPropagation, "linkop.PatchLink", err, "refreshing %s", l.To)
	}

	if err := e.Graph.AddLink(id, l.From, l.To, newType); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "linkop.PatchLink", err, "recreating link %s", id)
	}
	rec.LinkType = string(newType)
	if err := e.Metadata.InsertLink(ctx, rec); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "linkop.PatchLink", err, "recording retyped link %s", id)
	}

	if err := e.Prop.Positive(ctx, l.From, true, updated); err != nil {
		return apierr.Wrapf(apierr.KindPropagation, "linkop.PatchLink", err, "propagating retype from %s", l.From)
	}

	return nil
}
