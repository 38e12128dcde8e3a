// Package engine is the composition root: it wires graph.Graph,
// store.Store, debate.Index, opinionop.Engine, linkop.Engine, and
// propagate.Propagator into a single operation surface, and owns the
// single-writer lock serializing every mutating call.
//
// A thin public type with no algorithmic logic of its own, only delegation
// to the packages it holds, plus the lock every mutating call takes before
// delegating.
package engine

import (
	"context"
	"sync"

	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/config"
	"github.com/opendebate/argraph/debate"
	"github.com/opendebate/argraph/graph"
	"github.com/opendebate/argraph/linkop"
	"github.com/opendebate/argraph/opinionop"
	"github.com/opendebate/argraph/propagate"
	"github.com/opendebate/argraph/store"
)

// MetadataStore is the union of every narrow store interface the wired
// sub-engines need. *store.Store satisfies it; tests substitute an
// in-memory fake the same way debate_test.go/opinionop_test.go/
// linkop_test.go do for their own packages, rather than requiring a live
// database to exercise the facade.
type MetadataStore interface {
	debate.MetadataStore
	opinionop.MetadataStore
	linkop.MetadataStore
}

var _ MetadataStore = (*store.Store)(nil)

// Engine is the embeddable facade: every mutating operation takes mu before
// delegating, so no two mutations interleave their propagation.
// Read-only operations (Info/Query/Head, debate Get/Query) skip the lock,
// relying on graph.Graph's own internal per-concern RWMutex, so they can
// observe a propagation that is still in progress.
type Engine struct {
	mu sync.Mutex

	graph    *graph.Graph
	metadata MetadataStore
	debates  *debate.Index
	opinions *opinionop.Engine
	links    *linkop.Engine
	prop     *propagate.Propagator
}

// New wires an Engine atop an already-open metadata store and the
// propagation depth budget from cfg.
func New(metadata MetadataStore, cfg config.Propagation) *Engine {
	g := graph.NewGraph()
	prop := propagate.New(g, cfg.MaxDepth)
	debates := debate.New(metadata)

	return &Engine{
		graph:    g,
		metadata: metadata,
		debates:  debates,
		opinions: opinionop.New(g, metadata, debates, prop),
		links:    linkop.New(g, metadata, debates, prop),
		prop:     prop,
	}
}

// Debates exposes the underlying debate.Index. Calls made through it take
// no engine lock; the Engine's own CreateDebate, DeleteDebate, PatchDebate
// and CiteInDebate wrappers below do.
func (e *Engine) Debates() *debate.Index { return e.debates }

// newUpdates allocates the per-call accumulator every mutating operation
// returns to the caller.
func newUpdates() map[string]*propagate.Update {
	return make(map[string]*propagate.Update)
}

// CreateDebate allocates a new debate, the first one in a process also
// becoming the global debate.
func (e *Engine) CreateDebate(ctx context.Context, name, creator string, createdAt int64) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debates.CreateDebate(ctx, name, creator, createdAt)
}

// DeleteDebate removes a non-global debate and its membership rows.
func (e *Engine) DeleteDebate(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debates.DeleteDebate(ctx, id)
}

// PatchDebate renames a debate, the global debate included.
func (e *Engine) PatchDebate(ctx context.Context, id, newName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debates.PatchDebate(ctx, id, newName)
}

// QueryDebate substring-matches debate names, bounded by limit.
func (e *Engine) QueryDebate(ctx context.Context, substr string, limit int) ([]debate.Info, error) {
	return e.debates.QueryDebate(ctx, substr, limit)
}

// GetDebate returns a single debate's attributes.
func (e *Engine) GetDebate(ctx context.Context, id string) (debate.Info, error) {
	return e.debates.GetDebate(ctx, id)
}

// CiteInDebate adds an existing opinion to a debate's membership.
func (e *Engine) CiteInDebate(ctx context.Context, opinionID, debateID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debates.CiteInDebate(ctx, opinionID, debateID)
}

// CreateOR allocates a new OR/solid opinion.
func (e *Engine) CreateOR(ctx context.Context, content, creator, debateID string, seed *arith.Score, createdAt int64) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opinions.CreateOR(ctx, content, creator, debateID, seed, createdAt)
}

// CreateAND builds an AND-group node under parentID from sonIDs, returning
// its UID, the created edge UIDs, and the updated diff.
func (e *Engine) CreateAND(ctx context.Context, parentID string, sonIDs []string, edgeType graph.LinkType, creator, debateID string, createdAt int64) (string, []string, map[string]*propagate.Update, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	updated := newUpdates()
	id, edges, err := e.opinions.CreateAND(ctx, parentID, sonIDs, edgeType, creator, debateID, createdAt, updated)
	return id, edges, updated, err
}

// PatchOpinion updates a leaf's content and/or score.
func (e *Engine) PatchOpinion(ctx context.Context, id string, content *string, score *arith.Score) (map[string]*propagate.Update, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	updated := newUpdates()
	err := e.opinions.PatchOpinion(ctx, id, content, score, updated)
	return updated, err
}

// DeleteOpinion retracts id from debateID's membership, destroying it
// entirely if debateID is the global debate.
func (e *Engine) DeleteOpinion(ctx context.Context, id, debateID string) (map[string]*propagate.Update, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	updated := newUpdates()
	err := e.opinions.DeleteOpinion(ctx, id, debateID, updated)
	return updated, err
}

// InfoOpinion, QueryOpinion, and HeadOpinion are read-only; they run
// without the write lock.
func (e *Engine) InfoOpinion(ctx context.Context, id, debateID string, withEdges bool) (opinionop.Attributes, *opinionop.Edges, error) {
	return e.opinions.InfoOpinion(ctx, id, debateID, withEdges)
}

func (e *Engine) QueryOpinion(ctx context.Context, substring, debateID string, minScore, maxScore *float64, order opinionop.QueryOrder, limit int) ([]opinionop.Attributes, error) {
	return e.opinions.QueryOpinion(ctx, substring, debateID, minScore, maxScore, order, limit)
}

func (e *Engine) HeadOpinion(ctx context.Context, debateID string, isRoot bool) ([]string, error) {
	return e.opinions.HeadOpinion(ctx, debateID, isRoot)
}

// CreateLink creates a directed edge between two existing opinions.
func (e *Engine) CreateLink(ctx context.Context, fromID, toID string, typ graph.LinkType, creator string, createdAt int64) (string, map[string]*propagate.Update, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	updated := newUpdates()
	id, err := e.links.CreateLink(ctx, fromID, toID, typ, creator, createdAt, updated)
	return id, updated, err
}

// DeleteLink removes an edge and retracts its contribution.
func (e *Engine) DeleteLink(ctx context.Context, id string) (map[string]*propagate.Update, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	updated := newUpdates()
	err := e.links.DeleteLink(ctx, id, updated)
	return updated, err
}

// PatchLink retypes an edge in place.
func (e *Engine) PatchLink(ctx context.Context, id string, newType graph.LinkType) (map[string]*propagate.Update, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	updated := newUpdates()
	err := e.links.PatchLink(ctx, id, newType, updated)
	return updated, err
}

// AttackLink materializes edge id as its own attackable proposition,
// returning the new OR node's UID, the new AND node's UID, and the updated
// diff.
func (e *Engine) AttackLink(ctx context.Context, id, debateID, creator string, createdAt int64) (string, string, map[string]*propagate.Update, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	updated := newUpdates()
	reasonID, andID, err := e.links.AttackLink(ctx, id, debateID, creator, createdAt, updated)
	return reasonID, andID, updated, err
}
