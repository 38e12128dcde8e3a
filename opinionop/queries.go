// File: queries.go
// Role: read-side operations — info_opinion, query_opinion, head_opinion.
// None of these take a write lock beyond graph.Graph's own internal
// RWMutex-per-concern.
package opinionop

import (
	"context"
	"sort"
	"strings"

	"github.com/opendebate/argraph/apierr"
	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/graph"
)

// Attributes is the attribute set a caller sees for an opinion, without
// edge information (see Edges for that).
type Attributes struct {
	ID            string
	Content       string
	Logic         graph.LogicType
	Node          graph.NodeType
	Positive      arith.Score
	Negative      arith.Score
	ChildPositive arith.Score
	ChildNegative arith.Score
	Creator       string
	CreatedAt     int64
}

// Edges groups an opinion's incident links by its four relations.
type Edges struct {
	Supports    []string // outgoing SUPPORT targets
	Opposes     []string // outgoing OPPOSE targets
	SupportedBy []string // incoming SUPPORT sources
	OpposedBy   []string // incoming OPPOSE sources
}

func attributesOf(o *graph.Opinion) Attributes {
	return Attributes{
		ID: o.ID, Content: o.Content, Logic: o.Logic, Node: o.Node,
		Positive: o.Positive, Negative: o.Negative,
		ChildPositive: o.ChildPositive, ChildNegative: o.ChildNegative,
		Creator: o.Creator, CreatedAt: o.CreatedAt,
	}
}

// InfoOpinion returns id's attributes, and if withEdges is set, its
// incident edges grouped by relation. If debateID is non-empty, edge
// endpoints are filtered to members of debateID.
func (e *Engine) InfoOpinion(ctx context.Context, id string, debateID string, withEdges bool) (Attributes, *Edges, error) {
	op, err := e.Graph.Opinion(id)
	if err != nil {
		return Attributes{}, nil, apierr.Wrapf(apierr.KindNotFound, "opinionop.InfoOpinion", err, "looking up %s", id)
	}
	attrs := attributesOf(op)

	if !withEdges {
		return attrs, nil, nil
	}

	member := func(otherID string) (bool, error) {
		if debateID == "" {
			return true, nil
		}
		return e.Debates.IsMember(ctx, otherID, debateID)
	}

	edges := &Edges{}
	for _, l := range e.Graph.OutgoingOfType(id, graph.LinkSupport) {
		ok, err := member(l.To)
		if err != nil {
			return Attributes{}, nil, err
		}
		if ok {
			edges.Supports = append(edges.Supports, l.To)
		}
	}
	for _, l := range e.Graph.OutgoingOfType(id, graph.LinkOppose) {
		ok, err := member(l.To)
		if err != nil {
			return Attributes{}, nil, err
		}
		if ok {
			edges.Opposes = append(edges.Opposes, l.To)
		}
	}
	for _, l := range e.Graph.IncomingOfType(id, graph.LinkSupport) {
		ok, err := member(l.From)
		if err != nil {
			return Attributes{}, nil, err
		}
		if ok {
			edges.SupportedBy = append(edges.SupportedBy, l.From)
		}
	}
	for _, l := range e.Graph.IncomingOfType(id, graph.LinkOppose) {
		ok, err := member(l.From)
		if err != nil {
			return Attributes{}, nil, err
		}
		if ok {
			edges.OpposedBy = append(edges.OpposedBy, l.From)
		}
	}

	return attrs, edges, nil
}

// QueryOrder selects QueryOpinion's sort key.
type QueryOrder string

const (
	// OrderRecent sorts by CreatedAt descending (most recent first).
	OrderRecent QueryOrder = "recent"
	// OrderScore sorts by Positive descending (absent scores sort last).
	OrderScore QueryOrder = "score"
)

// QueryOpinion filters opinions by a content substring, optional debate
// membership, and an optional [minScore, maxScore] range on Positive
// (absent scores are excluded from range filtering when a range is given),
// then orders and truncates the result.
func (e *Engine) QueryOpinion(ctx context.Context, substring, debateID string, minScore, maxScore *float64, order QueryOrder, limit int) ([]Attributes, error) {
	var ids []string
	if debateID != "" {
		members, err := e.Debates.MembersOf(ctx, debateID)
		if err != nil {
			return nil, err
		}
		ids = members
	} else {
		ids = e.Graph.Opinions()
	}

	var out []Attributes
	for _, id := range ids {
		op, err := e.Graph.Opinion(id)
		if err != nil {
			continue // membership/topology race: opinion removed between listing and lookup
		}
		if substring != "" && !strings.Contains(op.Content, substring) {
			continue
		}
		if (minScore != nil || maxScore != nil) && !op.Positive.Present {
			continue
		}
		if minScore != nil && op.Positive.Value < *minScore {
			continue
		}
		if maxScore != nil && op.Positive.Value > *maxScore {
			continue
		}
		out = append(out, attributesOf(op))
	}

	sortAttributes(out, order)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortAttributes(attrs []Attributes, order QueryOrder) {
	switch order {
	case OrderScore:
		sort.SliceStable(attrs, func(i, j int) bool {
			a, b := attrs[i].Positive, attrs[j].Positive
			if a.Present != b.Present {
				return a.Present // present scores sort before absent
			}
			if !a.Present {
				return false
			}
			return a.Value > b.Value
		})
	default: // OrderRecent
		sort.SliceStable(attrs, func(i, j int) bool {
			return attrs[i].CreatedAt > attrs[j].CreatedAt
		})
	}
}

// HeadOpinion enumerates debateID's members with no outgoing edges
// (isRoot=true, "Root") or no incoming edges (isRoot=false, "Leaf").
func (e *Engine) HeadOpinion(ctx context.Context, debateID string, isRoot bool) ([]string, error) {
	members, err := e.Debates.MembersOf(ctx, debateID)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, id := range members {
		degree := e.Graph.InDegree(id)
		if isRoot {
			degree = e.Graph.OutDegree(id)
		}
		if degree == 0 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}
