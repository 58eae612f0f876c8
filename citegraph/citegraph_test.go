package citegraph

import (
	"math"
	"testing"
)

func TestAddCitation_Idempotent(t *testing.T) {
	g := New()
	if !g.AddCitation("a.com", "b.com") {
		t.Fatal("first AddCitation: expected change")
	}
	if g.AddCitation("a.com", "b.com") {
		t.Fatal("second AddCitation: expected no change")
	}
	st := g.Stats(0)
	if st.Nodes != 2 || st.Edges != 1 {
		t.Fatalf("stats: got %d nodes / %d edges, want 2/1", st.Nodes, st.Edges)
	}
}

func TestAddCitation_RejectsSelfAndEmpty(t *testing.T) {
	g := New()
	if g.AddCitation("a.com", "a.com") {
		t.Fatal("self-citation: expected no change")
	}
	if g.AddCitation("", "b.com") || g.AddCitation("a.com", "") {
		t.Fatal("empty endpoint: expected no change")
	}
	if g.Len() != 0 {
		t.Fatalf("len: got %d, want 0", g.Len())
	}
}

// WHAT: Verifies the rank vector sums to 1 on a graph containing dangling nodes.
// WHY: Dangling nodes must redistribute their mass uniformly; losing it would
// let total rank decay and break every downstream comparison.
func TestPageRank_SumsToOne(t *testing.T) {
	g := New()
	g.AddCitation("a.com", "b.com")
	g.AddCitation("a.com", "c.com")
	g.AddCitation("d.com", "a.com")
	// b.com and c.com have no out-edges and are dangling.

	st := g.Stats(0)
	var sum float64
	for _, dr := range st.TopRanked {
		sum += dr.Rank
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("rank sum: got %.9f, want 1.0 ±1e-6", sum)
	}
}

func TestPageRank_AbsentDomain(t *testing.T) {
	g := New()
	g.AddCitation("a.com", "b.com")
	r, ok := g.PageRank("nowhere.example")
	if ok {
		t.Fatal("absent domain: expected ok=false")
	}
	if r != 0 {
		t.Fatalf("absent domain: got rank %v, want 0", r)
	}
}

// WHAT: A hub cited by three leaves must outrank every leaf.
// WHY: Inbound citations are the whole point of the authority score.
func TestPageRank_CitedDomainOutranksCiters(t *testing.T) {
	g := New()
	g.AddCitation("l1.com", "hub.org")
	g.AddCitation("l2.com", "hub.org")
	g.AddCitation("l3.com", "hub.org")

	hub, ok := g.PageRank("hub.org")
	if !ok {
		t.Fatal("hub.org missing from graph")
	}
	for _, leaf := range []string{"l1.com", "l2.com", "l3.com"} {
		lr, ok := g.PageRank(leaf)
		if !ok {
			t.Fatalf("%s missing from graph", leaf)
		}
		if hub <= lr {
			t.Fatalf("hub rank %.6f not greater than %s rank %.6f", hub, leaf, lr)
		}
	}
}

func TestPageRank_TwoNodeChain(t *testing.T) {
	g := New()
	g.AddCitation("a.com", "b.com")

	ra, _ := g.PageRank("a.com")
	rb, _ := g.PageRank("b.com")
	if rb <= ra {
		t.Fatalf("cited node should outrank citer: a=%.6f b=%.6f", ra, rb)
	}
	if math.Abs(ra+rb-1.0) > 1e-6 {
		t.Fatalf("rank sum: got %.9f", ra+rb)
	}
}

// WHAT: The same edge set produces the same ranks regardless of insertion order.
// WHY: Assessments must be reproducible within a process run.
func TestPageRank_InsertionOrderIndependent(t *testing.T) {
	g1 := New()
	g1.AddCitation("a.com", "b.com")
	g1.AddCitation("b.com", "c.com")
	g1.AddCitation("c.com", "a.com")

	g2 := New()
	g2.AddCitation("c.com", "a.com")
	g2.AddCitation("a.com", "b.com")
	g2.AddCitation("b.com", "c.com")

	for _, d := range []string{"a.com", "b.com", "c.com"} {
		r1, _ := g1.PageRank(d)
		r2, _ := g2.PageRank(d)
		if math.Abs(r1-r2) > 1e-9 {
			t.Fatalf("%s: g1=%.12f g2=%.12f", d, r1, r2)
		}
	}
}

func TestPageRank_SymmetricCycle(t *testing.T) {
	// In a 3-cycle every node is structurally identical, so ranks are equal.
	g := New()
	g.AddCitation("a.com", "b.com")
	g.AddCitation("b.com", "c.com")
	g.AddCitation("c.com", "a.com")

	ra, _ := g.PageRank("a.com")
	rb, _ := g.PageRank("b.com")
	rc, _ := g.PageRank("c.com")
	third := 1.0 / 3.0
	for name, r := range map[string]float64{"a.com": ra, "b.com": rb, "c.com": rc} {
		if math.Abs(r-third) > 1e-6 {
			t.Fatalf("%s: got %.9f, want 1/3", name, r)
		}
	}
}

func TestStats_TopRankedOrderAndTruncation(t *testing.T) {
	g := New()
	g.AddCitation("l1.com", "hub.org")
	g.AddCitation("l2.com", "hub.org")
	g.AddCitation("l3.com", "hub.org")

	st := g.Stats(2)
	if len(st.TopRanked) != 2 {
		t.Fatalf("topN: got %d entries, want 2", len(st.TopRanked))
	}
	if st.TopRanked[0].Domain != "hub.org" {
		t.Fatalf("top domain: got %q, want hub.org", st.TopRanked[0].Domain)
	}
	if st.TopRanked[0].Rank < st.TopRanked[1].Rank {
		t.Fatal("top ranked not sorted descending")
	}
}

func TestOutDegree(t *testing.T) {
	g := New()
	g.AddCitation("a.com", "b.com")
	g.AddCitation("a.com", "c.com")
	g.AddCitation("a.com", "c.com")
	if d := g.OutDegree("a.com"); d != 2 {
		t.Fatalf("out-degree: got %d, want 2", d)
	}
	if d := g.OutDegree("b.com"); d != 0 {
		t.Fatalf("dangling out-degree: got %d, want 0", d)
	}
}

func TestEmptyGraph(t *testing.T) {
	g := New()
	g.Recompute()
	if r, ok := g.PageRank("a.com"); ok || r != 0 {
		t.Fatalf("empty graph: got (%v, %v)", r, ok)
	}
	st := g.Stats(5)
	if st.Nodes != 0 || st.Edges != 0 || len(st.TopRanked) != 0 {
		t.Fatalf("empty stats: %+v", st)
	}
}
