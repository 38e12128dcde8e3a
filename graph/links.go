// File: links.go
// Role: Link lifecycle & adjacency queries: AddLink/RemoveLink/HasLink/
//       Link/Links/Outgoing/Incoming/LinkBetween.
//
// Determinism:
//   - Links() and Outgoing()/Incoming() return links sorted by Link.ID asc.
//
// Concurrency:
//   - Link catalog and both adjacency indexes are protected by muLinks.
//   - AddLink validates opinion existence via muNodes first, then takes
//     muLinks for the topology write, the muNodes -> muLinks lock order
//     used throughout this package.
package graph

import "sort"

// AddLink creates a directed, typed edge from -> to. It enforces:
//   - both endpoints exist (ErrOpinionNotFound)
//   - no self-loops (ErrSelfLoop, invariant 1)
//   - at most one edge per (from, to, type) (ErrLinkExists; linkop.CreateLink
//     treats this as the idempotent "return existing UID" case rather than a
//     hard failure)
//
// Higher invariants (AND-target protection, cycle-freedom) are the Link
// Engine's job (linkop), since they require knowledge of logic types and
// full-graph reachability that this layer deliberately does not have.
func (g *Graph) AddLink(id, from, to string, typ LinkType) error {
	if id == "" {
		return ErrEmptyID
	}
	if from == to {
		return ErrSelfLoop
	}

	g.muNodes.RLock()
	_, fromOK := g.nodes[from]
	_, toOK := g.nodes[to]
	g.muNodes.RUnlock()
	if !fromOK || !toOK {
		return ErrOpinionNotFound
	}

	g.muLinks.Lock()
	defer g.muLinks.Unlock()

	key := pairKey{from: from, to: to, typ: typ}
	if _, exists := g.pairs[key]; exists {
		return ErrLinkExists
	}

	g.links[id] = &Link{ID: id, From: from, To: to, Type: typ}
	g.pairs[key] = id
	ensureSet(g.out, from)[id] = struct{}{}
	ensureSet(g.in, to)[id] = struct{}{}

	return nil
}

// RemoveLink deletes the link with the given id.
func (g *Graph) RemoveLink(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	g.muLinks.Lock()
	defer g.muLinks.Unlock()

	l, ok := g.links[id]
	if !ok {
		return ErrLinkNotFound
	}

	delete(g.links, id)
	delete(g.pairs, pairKey{from: l.From, to: l.To, typ: l.Type})
	if set := g.out[l.From]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(g.out, l.From)
		}
	}
	if set := g.in[l.To]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(g.in, l.To)
		}
	}

	return nil
}

// HasLink reports whether id is a known link.
func (g *Graph) HasLink(id string) bool {
	g.muLinks.RLock()
	defer g.muLinks.RUnlock()
	_, ok := g.links[id]

	return ok
}

// Link returns a copy of the link record for id, or ErrLinkNotFound.
func (g *Graph) Link(id string) (*Link, error) {
	g.muLinks.RLock()
	defer g.muLinks.RUnlock()

	l, ok := g.links[id]
	if !ok {
		return nil, ErrLinkNotFound
	}

	return l.clone(), nil
}

// LinkBetween returns the link ID for (from, to, typ) if one exists, the
// idempotent-create check behind linkop.CreateLink.
func (g *Graph) LinkBetween(from, to string, typ LinkType) (string, bool) {
	g.muLinks.RLock()
	defer g.muLinks.RUnlock()

	id, ok := g.pairs[pairKey{from: from, to: to, typ: typ}]

	return id, ok
}

// Outgoing returns the links whose From == id, sorted by Link.ID asc.
func (g *Graph) Outgoing(id string) []*Link {
	g.muLinks.RLock()
	defer g.muLinks.RUnlock()

	return g.collect(g.out[id])
}

// Incoming returns the links whose To == id, sorted by Link.ID asc.
func (g *Graph) Incoming(id string) []*Link {
	g.muLinks.RLock()
	defer g.muLinks.RUnlock()

	return g.collect(g.in[id])
}

// OutgoingOfType filters Outgoing(id) to links of the given type.
func (g *Graph) OutgoingOfType(id string, typ LinkType) []*Link {
	out := g.Outgoing(id)
	filtered := out[:0:0]
	for _, l := range out {
		if l.Type == typ {
			filtered = append(filtered, l)
		}
	}

	return filtered
}

// IncomingOfType filters Incoming(id) to links of the given type.
func (g *Graph) IncomingOfType(id string, typ LinkType) []*Link {
	in := g.Incoming(id)
	filtered := in[:0:0]
	for _, l := range in {
		if l.Type == typ {
			filtered = append(filtered, l)
		}
	}

	return filtered
}

// InDegree returns the number of incoming links of id, regardless of type;
// zero for a leaf.
func (g *Graph) InDegree(id string) int {
	g.muLinks.RLock()
	defer g.muLinks.RUnlock()

	return len(g.in[id])
}

// OutDegree returns the number of outgoing links of id; zero for a root.
func (g *Graph) OutDegree(id string) int {
	g.muLinks.RLock()
	defer g.muLinks.RUnlock()

	return len(g.out[id])
}

// Links returns all links sorted by Link.ID asc.
func (g *Graph) Links() []*Link {
	g.muLinks.RLock()
	defer g.muLinks.RUnlock()

	ids := make([]string, 0, len(g.links))
	for id := range g.links {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Link, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.links[id].clone())
	}

	return out
}

// collect resolves a set of link IDs into sorted, cloned Link records.
// Must be called with muLinks already held (read or write).
func (g *Graph) collect(set map[string]struct{}) []*Link {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Link, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.links[id].clone())
	}

	return out
}

// ensureSet returns (creating if absent) the nested set for key k.
// Must be called under muLinks write lock.
func ensureSet(m map[string]map[string]struct{}, k string) map[string]struct{} {
	s := m[k]
	if s == nil {
		s = make(map[string]struct{})
		m[k] = s
	}

	return s
}
