// File: attack.go
// Role: attack_link — materializes a SUPPORT
// or OPPOSE edge as its own attackable proposition, by inserting an OR+AND
// pair in its place.
package linkop

import (
	"context"

	"github.com/google/uuid"

	"github.com/opendebate/argraph/apierr"
	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/graph"
	"github.com/opendebate/argraph/propagate"
	"github.com/opendebate/argraph/store"
)

// AttackLink materializes edge id (from->to, with to an OR node) as a
// contestable proposition: it disconnects the edge, creates a new OR node R
// with content "<from.content> → <to.content>" and positive_score=1.0 (the
// reasoning step is presumed valid until attacked), then an AND group with
// parent to and sons [R, from] of the edge's original type, copying from's
// positive_score/child_positive/negative_score onto the AND node so the
// displayed score at to is unchanged by the materialization itself. Returns
// (R's UID, AND's UID).
func (e *Engine) AttackLink(ctx context.Context, id, debateID string, creator string, createdAt int64, updated map[string]*propagate.Update) (string, string, error) {
	l, err := e.Graph.Link(id)
	if err != nil {
		return "", "", apierr.Wrapf(apierr.KindNotFound, "linkop.AttackLink", err, "looking up link %s", id)
	}

	from, err := e.Graph.Opinion(l.From)
	if err != nil {
		return "", "", apierr.Wrapf(apierr.KindNotFound, "linkop.AttackLink", err, "looking up %s", l.From)
	}
	to, err := e.Graph.Opinion(l.To)
	if err != nil {
		return "", "", apierr.Wrapf(apierr.KindNotFound, "linkop.AttackLink", err, "looking up %s", l.To)
	}
	if to.Logic != graph.LogicOR {
		return "", "", apierr.New(apierr.KindValidation, "linkop.AttackLink", ErrNotOR)
	}

	if err := e.Graph.RemoveLink(id); err != nil {
		return "", "", apierr.Wrapf(apierr.KindStorage, "linkop.AttackLink", err, "removing link %s", id)
	}
	if err := e.Metadata.DeleteLink(ctx, id); err != nil {
		return "", "", apierr.Wrapf(apierr.KindStorage, "linkop.AttackLink", err, "deleting link record %s", id)
	}

	reasonID := uuid.New().String()
	reasonContent := from.Content + " → " + to.Content
	reason := &graph.Opinion{
		ID:       reasonID,
		Content:  reasonContent,
		Logic:    graph.LogicOR,
		Node:     graph.NodeSolid,
		Positive: arith.Of(1.0),
		Creator:  creator,
	}
	if err := e.Graph.AddOpinion(reason); err != nil {
		return "", "", apierr.Wrapf(apierr.KindStorage, "linkop.AttackLink", err, "adding reason node %s", reasonID)
	}
	if err := e.Metadata.InsertOpinion(ctx, store.OpinionRecord{
		ID: reasonID, Content: reasonContent, LogicType: string(graph.LogicOR), NodeType: string(graph.NodeSolid),
		Creator: creator, CreatedAt: createdAt,
	}); err != nil {
		return "", "", apierr.Wrapf(apierr.KindStorage, "linkop.AttackLink", err, "inserting reason node %s", reasonID)
	}
	if err := e.joinDebates(ctx, reasonID, debateID); err != nil {
		return "", "", err
	}

	andID := uuid.New().String()
	andContent := "&"
	if l.Type == graph.LinkOppose {
		andContent = "&¬"
	}
	andOp := &graph.Opinion{
		ID:            andID,
		Content:       andContent,
		Logic:         graph.LogicAND,
		Node:          graph.NodeEmpty,
		Positive:      from.Positive,
		ChildPositive: from.ChildPositive,
		Negative:      from.Negative,
		Creator:       creator,
	}
	if err := e.Graph.AddOpinion(andOp); err != nil {
		return "", "", apierr.Wrapf(apierr.KindStorage, "linkop.AttackLink", err, "adding AND node %s", andID)
	}
	if err := e.Metadata.InsertOpinion(ctx, store.OpinionRecord{
		ID: andID, Content: andContent, LogicType: string(graph.LogicAND), NodeType: string(graph.NodeEmpty),
		Creator: creator, CreatedAt: createdAt,
	}); err != nil {
		return "", "", apierr.Wrapf(apierr.KindStorage, "linkop.AttackLink", err, "inserting AND node %s", andID)
	}
	if err := e.joinDebates(ctx, andID, debateID); err != nil {
		return "", "", err
	}

	parentLinkID := uuid.New().String()
	if err := e.createLinkRecord(ctx, parentLinkID, andID, l.To, l.Type, creator, createdAt); err != nil {
		return "", "", err
	}
	reasonLinkID := uuid.New().String()
	if err := e.createLinkRecord(ctx, reasonLinkID, reasonID, andID, graph.LinkSupport, creator, createdAt); err != nil {
		return "", "", err
	}
	fromLinkID := uuid.New().String()
	if err := e.createLinkRecord(ctx, fromLinkID, l.From, andID, graph.LinkSupport, creator, createdAt); err != nil {
		return "", "", err
	}

	if err := e.Prop.Positive(ctx, andID, false, updated); err != nil {
		return "", "", apierr.Wrapf(apierr.KindPropagation, "linkop.AttackLink", err, "propagating from %s", andID)
	}

	return reasonID, andID, nil
}
