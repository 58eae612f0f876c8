// Package citegraph maintains the in-process citation graph between
// registrable domains and derives PageRank authority scores from it.
//
// Nodes are domains, edges are deduplicated "from cites to" pairs. The rank
// vector is ephemeral: it is recomputed after every graph mutation and never
// persisted. All methods are safe for concurrent use.
package citegraph

import (
	"sort"
	"sync"
)

// DomainRank pairs a domain with its current PageRank score.
type DomainRank struct {
	Domain string  `json:"domain"`
	Rank   float64 `json:"rank"`
}

// Stats summarizes the graph for introspection surfaces.
type Stats struct {
	Nodes     int          `json:"nodes"`
	Edges     int          `json:"edges"`
	TopRanked []DomainRank `json:"top_ranked"`
}

// Graph is the mutable citation graph. The zero value is not usable; use New.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]struct{}
	out   map[string]map[string]struct{}
	ranks map[string]float64
	dirty bool
}

// New returns an empty citation graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		out:   make(map[string]map[string]struct{}),
		ranks: make(map[string]float64),
	}
}

// AddCitation records a directed edge from → to. Both endpoints become graph
// nodes. The edge set is deduplicated and self-citations are ignored, so the
// call is idempotent. Returns true if the graph changed.
func (g *Graph) AddCitation(from, to string) bool {
	if from == "" || to == "" || from == to {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	changed := false
	if _, ok := g.nodes[from]; !ok {
		g.nodes[from] = struct{}{}
		changed = true
	}
	if _, ok := g.nodes[to]; !ok {
		g.nodes[to] = struct{}{}
		changed = true
	}
	targets, ok := g.out[from]
	if !ok {
		targets = make(map[string]struct{})
		g.out[from] = targets
	}
	if _, ok := targets[to]; !ok {
		targets[to] = struct{}{}
		changed = true
	}
	if changed {
		g.dirty = true
	}
	return changed
}

// PageRank returns the current authority score for domain and whether the
// domain is present in the graph. Absent domains score 0. If the graph
// changed since the last computation, the rank vector is recomputed first.
func (g *Graph) PageRank(domain string) (float64, bool) {
	g.mu.RLock()
	if !g.dirty {
		r, ok := g.ranks[domain]
		g.mu.RUnlock()
		return r, ok
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.recomputeLocked()
	r, ok := g.ranks[domain]
	return r, ok
}

// Recompute forces a synchronous rank computation. Callers normally rely on
// the lazy recompute in PageRank; Recompute exists so an assessment can pay
// the cost up front before reading several scores.
func (g *Graph) Recompute() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recomputeLocked()
}

// OutDegree returns the number of distinct domains cited by domain.
func (g *Graph) OutDegree(domain string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.out[domain])
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Stats returns node/edge counts and the top n ranked domains. topN <= 0
// means all domains.
func (g *Graph) Stats(topN int) Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recomputeLocked()

	edges := 0
	for _, targets := range g.out {
		edges += len(targets)
	}
	top := make([]DomainRank, 0, len(g.ranks))
	for d, r := range g.ranks {
		top = append(top, DomainRank{Domain: d, Rank: r})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Rank != top[j].Rank {
			return top[i].Rank > top[j].Rank
		}
		return top[i].Domain < top[j].Domain
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}
	return Stats{Nodes: len(g.nodes), Edges: edges, TopRanked: top}
}
