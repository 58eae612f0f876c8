package credibility

import (
	"math"

	"github.com/hazyhaar/credence/credibility/internal/signals"
)

// signalShape weights a signal's push on the posterior odds: up applies
// above neutral, down below. Hygiene signals are asymmetric — a clean URL
// is weak evidence for credibility, a dirty one strong evidence against.
type signalShape struct {
	up   float64
	down float64
}

var (
	// majorShape: substantive evidence, full weight both ways.
	majorShape = signalShape{up: 1, down: 1}
	// penaltyShape: expected hygiene; near-free to satisfy, costly to violate.
	penaltyShape = signalShape{up: 0.15, down: 1}
	// minorShape: weak corroboration either way.
	minorShape = signalShape{up: 0.15, down: 0.5}
)

// signalShapes assigns every signal its fusion weight class.
var signalShapes = map[string]signalShape{
	"age_signal":        majorShape,
	"domain_reputation": majorShape,
	"https_secure":      penaltyShape,
	"hostname_entropy":  minorShape,
	"subdomain_depth":   minorShape,
	"path_depth":        minorShape,
	"url_cleanliness":   minorShape,
	"hostname_clean":    minorShape,
	"domain_length":     minorShape,

	"title_sentiment_neutrality": penaltyShape,
	"title_clickbait_free":       penaltyShape,
	"title_length_sanity":        minorShape,

	"formality":             majorShape,
	"specificity":           majorShape,
	"text_depth":            majorShape,
	"evidence_density":      majorShape,
	"reference_quality":     majorShape,
	"logical_coherence":     majorShape,
	"has_methodology":       majorShape,
	"has_results":           majorShape,
	"has_limitations":       majorShape,
	"readability":           minorShape,
	"lexical_diversity":     minorShape,
	"caps_discipline":       minorShape,
	"exclamation_restraint": minorShape,
	"structure_score":       minorShape,
	"word_sophistication":   minorShape,

	"recency":         majorShape,
	"peer_reviewed":   majorShape,
	"multi_author":    majorShape,
	"citation_impact": majorShape,
	"has_doi":         majorShape,
}

// fuse folds the signal vector into the prior via Bayes' rule in odds
// form. Each provided signal contributes an odds multiplier
// base^(w·(2s−1)); defaulted signals contribute nothing. Domains present
// in the citation graph with nonzero rank get the authority boost
// (1 + k·pagerank); absence is never a penalty. The posterior is clipped
// away from certainty.
func fuse(prior float64, vec signals.Vector, pagerank float64, inGraph bool, cfg FusionConfig) (score, lr float64) {
	lr = 1.0
	for _, name := range signals.Names {
		if !vec.Provided[name] {
			continue
		}
		x := 2*vec.Values[name] - 1
		shape, ok := signalShapes[name]
		if !ok {
			shape = majorShape
		}
		w := shape.up
		if x < 0 {
			w = shape.down
		}
		lr *= math.Pow(cfg.OddsBase, w*x)
	}

	boosted := inGraph && pagerank > 0 && !cfg.DisablePageRankBoost
	if lr == 1 && !boosted {
		// No informative evidence: the posterior is exactly the prior.
		return prior, 1
	}

	odds := prior / (1 - prior) * lr
	if boosted {
		odds *= 1 + cfg.PageRankBoostK*pagerank
	}
	return clampScore(odds / (1 + odds)), lr
}

// clampScore bounds a posterior away from certainty.
func clampScore(s float64) float64 {
	const lo, hi = 0.01, 0.99
	switch {
	case s < lo:
		return lo
	case s > hi:
		return hi
	default:
		return s
	}
}

// clampPrior bounds a bias-corrected prior to keep the odds form sound.
func clampPrior(p float64) float64 {
	const lo, hi = 0.05, 0.95
	switch {
	case p < lo:
		return lo
	case p > hi:
		return hi
	default:
		return p
	}
}
