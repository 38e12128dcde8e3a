// Package graph is the argument-graph store: opinions (nodes) and links
// (typed directed edges) held in a thread-safe, in-memory structure that the
// rest of the engine (cycle, propagate, opinionop, linkop) reads and mutates.
//
// It gives cheap neighbour queries by direction and type, cheap existence
// checks, and deterministic enumeration for anything that must be
// reproducible (query ordering, test fixtures). It knows nothing about
// debates, logic-type invariants beyond storage, or persistence — those are
// the concern of the debate, linkop/opinionop, and store packages
// respectively.
//
//	types.go — Opinion, Link, enums, sentinel errors, Graph, NewGraph.
//	nodes.go — Opinion lifecycle: AddOpinion, MutateOpinion, RemoveOpinion, ...
//	links.go — Link lifecycle: AddLink, RemoveLink, Outgoing, Incoming, ...
//
// Concurrency: two RWMutexes guard disjoint state (muNodes for the opinion
// catalog and its scores, muLinks for the link catalog and adjacency) so
// readers of one rarely block on readers of the other.
package graph
