// File: andgroup.go
// Role: create_and_opinion — building an AND-group node.
package opinionop

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/opendebate/argraph/apierr"
	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/graph"
	"github.com/opendebate/argraph/propagate"
	"github.com/opendebate/argraph/store"
)

// ErrEmptySons indicates CreateAND was called with no son IDs.
var ErrEmptySons = errors.New("opinionop: son_ids must be non-empty")

// CreateAND builds an AND-group node A wired as `A -edgeType-> parentID`
// and `son -SUPPORT-> A` for every son, then seeds A's aggregate from its
// sons and runs positive propagation from A. Preconditions:
// parentID and every son must already exist and be solid; parentID must be
// an OR node (ANDs cannot nest directly under ANDs).
func (e *Engine) CreateAND(ctx context.Context, parentID string, sonIDs []string, edgeType graph.LinkType, creator, debateID string, createdAt int64, updated map[string]*propagate.Update) (string, []string, error) {
	if len(sonIDs) == 0 {
		return "", nil, apierr.New(apierr.KindValidation, "opinionop.CreateAND", ErrEmptySons)
	}
	if edgeType != graph.LinkSupport && edgeType != graph.LinkOppose {
		return "", nil, apierr.New(apierr.KindValidation, "opinionop.CreateAND", errors.New("edge_type must be SUPPORT or OPPOSE"))
	}

	parent, err := e.Graph.Opinion(parentID)
	if err != nil {
		return "", nil, apierr.Wrapf(apierr.KindNotFound, "opinionop.CreateAND", err, "looking up parent %s", parentID)
	}
	if parent.Logic != graph.LogicOR {
		return "", nil, apierr.New(apierr.KindValidation, "opinionop.CreateAND", ErrNotOR)
	}
	if parent.Node != graph.NodeSolid {
		return "", nil, apierr.New(apierr.KindValidation, "opinionop.CreateAND", errors.New("parent must be solid"))
	}

	sons := make([]*graph.Opinion, 0, len(sonIDs))
	for _, sid := range sonIDs {
		son, err := e.Graph.Opinion(sid)
		if err != nil {
			return "", nil, apierr.Wrapf(apierr.KindNotFound, "opinionop.CreateAND", err, "looking up son %s", sid)
		}
		if son.Node != graph.NodeSolid {
			return "", nil, apierr.New(apierr.KindValidation, "opinionop.CreateAND", errors.New("son must be solid"))
		}
		sons = append(sons, son)
	}

	content := "&"
	if edgeType == graph.LinkOppose {
		content = "&¬"
	}

	andID := uuid.New().String()
	andOp := &graph.Opinion{
		ID:      andID,
		Content: content,
		Logic:   graph.LogicAND,
		Node:    graph.NodeEmpty,
		Creator: creator,
	}
	if err := e.Graph.AddOpinion(andOp); err != nil {
		return "", nil, apierr.Wrapf(apierr.KindStorage, "opinionop.CreateAND", err, "adding AND node %s", andID)
	}
	if err := e.Metadata.InsertOpinion(ctx, store.OpinionRecord{
		ID: andID, Content: content, LogicType: string(graph.LogicAND), NodeType: string(graph.NodeEmpty),
		Creator: creator, CreatedAt: createdAt,
	}); err != nil {
		return "", nil, apierr.Wrapf(apierr.KindStorage, "opinionop.CreateAND", err, "inserting AND node %s", andID)
	}
	if err := e.joinDebates(ctx, andID, debateID); err != nil {
		return "", nil, err
	}

	var edgeIDs []string

	parentLinkID := uuid.New().String()
	if err := e.createLinkRecord(ctx, parentLinkID, andID, parentID, edgeType, creator, createdAt); err != nil {
		return "", nil, err
	}
	edgeIDs = append(edgeIDs, parentLinkID)

	for _, sid := range sonIDs {
		sonLinkID := uuid.New().String()
		if err := e.createLinkRecord(ctx, sonLinkID, sid, andID, graph.LinkSupport, creator, createdAt); err != nil {
			return "", nil, err
		}
		edgeIDs = append(edgeIDs, sonLinkID)
	}

	positives := make([]arith.Score, 0, len(sons))
	for _, son := range sons {
		positives = append(positives, son.Positive)
	}
	childPositive := arith.Min(positives...)

	if err := e.Graph.MutateOpinion(andID, func(o *graph.Opinion) {
		o.ChildPositive = childPositive
		o.Positive = childPositive
	}); err != nil {
		return "", nil, apierr.Wrapf(apierr.KindStorage, "opinionop.CreateAND", err, "seeding AND node %s", andID)
	}

	if err := e.Prop.Positive(ctx, andID, false, updated); err != nil {
		return "", nil, apierr.Wrapf(apierr.KindPropagation, "opinionop.CreateAND", err, "propagating from %s", andID)
	}

	return andID, edgeIDs, nil
}

// createLinkRecord writes a link into both the graph store and the
// metadata store, the shared step every edge-creating operation
// (CreateAND, linkop.CreateLink) needs.
func (e *Engine) createLinkRecord(ctx context.Context, id, from, to string, typ graph.LinkType, creator string, createdAt int64) error {
	if err := e.Graph.AddLink(id, from, to, typ); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "opinionop.createLinkRecord", err, "adding link %s", id)
	}
	if err := e.Metadata.InsertLink(ctx, store.LinkRecord{
		ID: id, From: from, To: to, LinkType: string(typ), Creator: creator, CreatedAt: createdAt,
	}); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "opinionop.createLinkRecord", err, "inserting link %s", id)
	}
	return nil
}
