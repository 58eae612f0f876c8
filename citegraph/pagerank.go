package citegraph

const (
	dampingFactor = 0.85
	// A fixed iteration count (no convergence check) keeps the cost bounded
	// and the output deterministic for a given edge set.
	iterations = 20
)

// recomputeLocked runs power-iteration PageRank over the current graph.
// Caller must hold the write lock.
//
// Per iteration each node receives a teleportation share (1-d)/N, a share of
// the total dangling mass d·D/N (nodes without out-edges spread their rank
// uniformly, conserving total mass), and d·rank/outdegree from each inbound
// edge. The resulting vector sums to 1 for any non-empty graph.
func (g *Graph) recomputeLocked() {
	if !g.dirty {
		return
	}
	n := len(g.nodes)
	if n == 0 {
		g.ranks = make(map[string]float64)
		g.dirty = false
		return
	}

	inv := 1.0 / float64(n)
	ranks := make(map[string]float64, n)
	for node := range g.nodes {
		ranks[node] = inv
	}
	next := make(map[string]float64, n)

	for i := 0; i < iterations; i++ {
		var dangling float64
		for node := range g.nodes {
			if len(g.out[node]) == 0 {
				dangling += ranks[node]
			}
		}
		base := (1-dampingFactor)*inv + dampingFactor*dangling*inv
		for node := range g.nodes {
			next[node] = base
		}
		for from, targets := range g.out {
			share := dampingFactor * ranks[from] / float64(len(targets))
			for to := range targets {
				next[to] += share
			}
		}
		ranks, next = next, ranks
	}

	g.ranks = ranks
	g.dirty = false
}
