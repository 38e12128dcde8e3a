// File: depth.go
// Role: longest-chain measurement backing the recursion-depth resource
// budget. linkop.CreateLink computes, before writing a prospective from->to
// edge:
//
//	LongestChainTo(from) + 1 + LongestChainFrom(to)
//
// and rejects the edge if that sum would exceed the configured max depth,
// the same "rejected before any write" posture as the cycle guard.
package cycle

import (
	"context"

	"github.com/opendebate/argraph/graph"
)

// LongestChainFrom returns the length, in edges, of the longest directed
// path starting at id and following outgoing links, capped at maxDepth
// (maxDepth<=0 means unbounded). Exceeding the cap returns
// ErrMaxDepthExceeded instead of a truncated answer.
func LongestChainFrom(ctx context.Context, g *graph.Graph, id string, maxDepth int) (int, error) {
	return longestChain(ctx, g, id, true, make(map[string]int), 0, maxDepth)
}

// LongestChainTo returns the length, in edges, of the longest directed path
// ending at id, following links backwards (incoming), capped at maxDepth.
func LongestChainTo(ctx context.Context, g *graph.Graph, id string, maxDepth int) (int, error) {
	return longestChain(ctx, g, id, false, make(map[string]int), 0, maxDepth)
}

// longestChain is the shared recursive walk behind LongestChainFrom/To.
// forward selects Outgoing (true) vs Incoming (false) traversal. memo caches
// the longest chain already computed for a node so diamonds are not
// re-walked; depth tracks the current recursion depth against maxDepth.
func longestChain(ctx context.Context, g *graph.Graph, id string, forward bool, memo map[string]int, depth, maxDepth int) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	if maxDepth > 0 && depth > maxDepth {
		return 0, ErrMaxDepthExceeded
	}
	if v, ok := memo[id]; ok {
		return v, nil
	}

	var links []*graph.Link
	if forward {
		links = g.Outgoing(id)
	} else {
		links = g.Incoming(id)
	}

	best := 0
	for _, l := range links {
		next := l.To
		if !forward {
			next = l.From
		}
		sub, err := longestChain(ctx, g, next, forward, memo, depth+1, maxDepth)
		if err != nil {
			return 0, err
		}
		if sub+1 > best {
			best = sub + 1
		}
	}

	memo[id] = best

	return best, nil
}
