// Package signals extracts normalized credibility features from source
// evidence.
//
// Every extraction produces the same fixed set of features in [0,1].
// Missing evidence degrades a feature to its neutral default rather than
// omitting it, so downstream fusion always sees full dimensionality. A
// feature whose computation panics is likewise defaulted; extraction
// never aborts.
package signals

import (
	"math"
	"net/url"
	"time"
)

// Neutral is the default for features whose evidence is absent.
const Neutral = 0.5

// Max is the fixed number of extracted features.
const Max = 32

// Names lists every feature in extraction order.
var Names = []string{
	// domain
	"age_signal", "domain_reputation", "https_secure", "hostname_entropy",
	"subdomain_depth", "path_depth", "url_cleanliness", "hostname_clean",
	"domain_length",
	// title
	"title_sentiment_neutrality", "title_clickbait_free", "title_length_sanity",
	// content
	"formality", "specificity", "text_depth", "evidence_density",
	"reference_quality", "logical_coherence", "has_methodology",
	"has_results", "has_limitations", "readability", "lexical_diversity",
	"caps_discipline", "exclamation_restraint", "structure_score",
	"word_sophistication",
	// metadata
	"recency", "peer_reviewed", "multi_author", "citation_impact", "has_doi",
}

// Meta is publication metadata. Zero values mean "not provided"; the
// IsPeerReviewed pointer lets an explicit false count as evidence.
type Meta struct {
	Year           int
	Authors        []string
	Citations      int
	DOI            string
	IsPeerReviewed *bool
}

// Source is the evidence bundle for one extraction.
type Source struct {
	URL      *url.URL // normalized; never nil
	Host     string   // lowercased hostname without port
	Domain   string   // registrable domain
	AgeYears float64  // resolved domain age
	Title    string
	Content  string
	Meta     Meta
	Now      time.Time // reference time for recency; zero means time.Now()
}

// Vector holds one extraction: every feature value, plus whether it was
// computed from real evidence or defaulted.
type Vector struct {
	Values   map[string]float64
	Provided map[string]bool
}

// ProvidedCount reports how many features came from real evidence.
func (v Vector) ProvidedCount() int {
	var n int
	for _, ok := range v.Provided {
		if ok {
			n++
		}
	}
	return n
}

// Extract computes the full feature vector for src.
func Extract(src Source) Vector {
	if src.Now.IsZero() {
		src.Now = time.Now()
	}
	v := Vector{
		Values:   make(map[string]float64, Max),
		Provided: make(map[string]bool, Max),
	}
	domainSignals(&v, src)
	titleSignals(&v, src.Title)
	contentSignals(&v, src.Content)
	metadataSignals(&v, src.Meta, src.Now)
	return v
}

// set records one feature. When ok is false or fn panics, the feature
// defaults to Neutral and counts as not provided.
func (v *Vector) set(name string, ok bool, fn func() float64) {
	defer func() {
		if r := recover(); r != nil {
			v.Values[name] = Neutral
			v.Provided[name] = false
		}
	}()
	if !ok {
		v.Values[name] = Neutral
		v.Provided[name] = false
		return
	}
	v.Values[name] = clamp01(fn())
	v.Provided[name] = true
}

// clamp01 bounds x to [0,1]; NaN collapses to Neutral.
func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return Neutral
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// boolSignal maps a flag to its extreme feature value.
func boolSignal(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
