// Package argraph is an argument-graph scoring engine: opinions are nodes in
// a directed acyclic graph, connected by typed SUPPORT/OPPOSE links, and
// carry a positive/negative score pair kept consistent by propagation.
//
// The engine is organized as a set of subpackages rather than one flat
// package:
//
//	arith/      — absent-aware score arithmetic (avg, revert, min, max)
//	graph/      — the in-memory, thread-safe opinion/link store
//	cycle/      — path-existence and depth-bounded reachability checks
//	propagate/  — the positive/negative score propagation algebra
//	debate/     — debate membership and the global-debate singleton
//	store/      — the durable relational metadata store
//	opinionop/  — the Opinion Engine (create, patch, delete, query, head)
//	linkop/     — the Link Engine (create, delete, patch, attack)
//	apierr/     — tagged error kinds shared across the operation surface
//	config/     — process configuration
//	applog/     — structured logging setup
//	engine/     — the facade wiring every component into one operation surface
//	cmd/argraphctl/ — a command-line front-end over the engine facade
//
// Callers that want the whole system wired together should construct an
// engine.Engine rather than importing subpackages directly.
package argraph
