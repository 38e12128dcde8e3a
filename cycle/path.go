// File: path.go
// Role: directed-reachability check used to reject cycle-closing edges.
package cycle

import (
	"context"

	"github.com/opendebate/argraph/graph"
)

// PathExists reports whether a directed path from -> to already exists in g.
// maxDepth bounds the walk's recursion depth (edges traversed); maxDepth<=0
// means unbounded. A walk that exceeds maxDepth without reaching to returns
// ErrMaxDepthExceeded rather than a false negative, so callers never treat a
// budget overrun as "no path".
func PathExists(ctx context.Context, g *graph.Graph, from, to string, maxDepth int) (bool, error) {
	if from == to {
		return true, nil
	}

	visited := make(map[string]bool)

	return reaches(ctx, g, from, to, visited, 0, maxDepth)
}

// reaches performs the DFS walk behind PathExists. visited marks nodes whose
// entire reachable set has already been explored without finding to, so
// diamond-shaped graphs are not re-walked.
func reaches(ctx context.Context, g *graph.Graph, cur, target string, visited map[string]bool, depth, maxDepth int) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	if maxDepth > 0 && depth > maxDepth {
		return false, ErrMaxDepthExceeded
	}
	if visited[cur] {
		return false, nil
	}
	visited[cur] = true

	for _, l := range g.Outgoing(cur) {
		if l.To == target {
			return true, nil
		}
		found, err := reaches(ctx, g, l.To, target, visited, depth+1, maxDepth)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}

	return false, nil
}
