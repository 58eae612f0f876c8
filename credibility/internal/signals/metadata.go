package signals

import (
	"math"
	"strings"
	"time"
)

// citationSaturation is the citation count that maxes citation_impact.
const citationSaturation = 10000

// authorSaturation is the author count that maxes multi_author.
const authorSaturation = 4

func metadataSignals(v *Vector, meta Meta, now time.Time) {
	v.set("recency", meta.Year > 0, func() float64 {
		stale := float64(now.Year() - meta.Year)
		if stale < 0 {
			stale = 0
		}
		return 1 - 0.1*stale
	})
	v.set("peer_reviewed", meta.IsPeerReviewed != nil, func() float64 {
		return boolSignal(*meta.IsPeerReviewed)
	})
	v.set("multi_author", len(meta.Authors) > 0, func() float64 {
		return float64(len(meta.Authors)) / authorSaturation
	})
	v.set("citation_impact", meta.Citations > 0, func() float64 {
		return math.Log1p(float64(meta.Citations)) / math.Log1p(citationSaturation)
	})
	v.set("has_doi", strings.TrimSpace(meta.DOI) != "", func() float64 {
		if strings.HasPrefix(strings.TrimSpace(meta.DOI), "10.") {
			return 1.0
		}
		return 0.2
	})
}
