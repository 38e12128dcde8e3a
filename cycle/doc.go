// Package cycle provides the directed-reachability checks the engine uses
// to keep an argument graph acyclic and within its recursion-depth budget.
//
// linkop.CreateLink calls PathExists before writing a new from->to link: if
// a path from to back to from already exists, adding the edge would close a
// cycle, so the write is rejected before it ever touches the graph store.
// LongestChainTo/LongestChainFrom back the recursion-depth resource budget:
// an edge whose addition would make some directed path exceed maxDepth
// edges is rejected the same way.
//
// Both walks are plain depth-first searches over graph.Graph's adjacency,
// carrying a context.Context for cancellation and a maxDepth bound threaded
// as a parameter rather than a package global, so callers (and tests) can
// vary the budget per call without shared state.
package cycle
