// Package credibility assesses web-source credibility from sparse evidence.
//
// Evidence about a source (URL, title, content text, publication metadata,
// citation links) is fused into a posterior probability that the source is
// credible, with an uncertainty band. The pipeline:
//
//	resolve domain age → extract signals → classify category/prior
//	→ update citation graph → fuse (Bayes, odds form) → uncertainty
//
// Recorded ground-truth outcomes feed a per-domain belief store that
// corrects the category prior on later assessments. All state (age cache,
// citation graph, belief store, history) is in-process only.
//
// Usage:
//
//	eng, err := credibility.New(cfg, logger)
//	res, err := eng.Assess(ctx, &credibility.Input{URL: "https://arxiv.org/abs/2301.00234"})
//	eng.RegisterMCP(mcpServer)
package credibility

// Category buckets a source by its domain.
type Category string

const (
	CategoryAcademic   Category = "academic"
	CategoryGovernment Category = "government"
	CategoryCode       Category = "code"
	CategoryNews       Category = "news"
	CategoryForum      Category = "forum"
	CategoryBlog       Category = "blog"
	CategoryUnknown    Category = "unknown"
)

// Metadata carries publication metadata supplied by the caller. Zero
// values mean "not provided"; the corresponding signals fall back to
// their neutral defaults. IsPeerReviewed is a pointer so that an explicit
// false counts as evidence rather than absence.
type Metadata struct {
	Year           int      `json:"year,omitempty"`
	Authors        []string `json:"authors,omitempty"`
	Citations      int      `json:"citations,omitempty"`
	DOI            string   `json:"doi,omitempty"`
	IsPeerReviewed *bool    `json:"is_peer_reviewed,omitempty"`
}

// Input is the evidence for one assessment. Only URL is required.
// CitationsTo lists URLs this source cites; CitationsFrom lists URLs known
// to cite it. Both feed the citation graph. Outcome, when set, records a
// ground-truth credibility observation in [0,1] after the assessment.
type Input struct {
	URL           string    `json:"url"`
	Title         string    `json:"title,omitempty"`
	Content       string    `json:"content,omitempty"`
	Metadata      *Metadata `json:"metadata,omitempty"`
	CitationsTo   []string  `json:"citations_to,omitempty"`
	CitationsFrom []string  `json:"citations_from,omitempty"`
	Outcome       *float64  `json:"outcome,omitempty"`
}

// Result is one assessment record.
type Result struct {
	AssessmentID       string             `json:"assessment_id"`
	URL                string             `json:"url"`
	Domain             string             `json:"domain"`
	Category           Category           `json:"category"`
	CredibilityScore   float64            `json:"credibility_score"`
	ConfidenceInterval [2]float64         `json:"confidence_interval"`
	Uncertainty        float64            `json:"uncertainty"`
	Prior              float64            `json:"prior"`
	LikelihoodRatio    float64            `json:"likelihood_ratio"`
	PageRank           float64            `json:"pagerank"`
	Signals            map[string]float64 `json:"signals"`
	ProvidedSignals    int                `json:"provided_signals"`
	Recommendation     string             `json:"recommendation"`
	AssessedAt         int64              `json:"assessed_at"` // unix ms
	DurationMs         int64              `json:"duration_ms"`
}

// OutcomeReceipt reports the belief-store state after recording an outcome.
type OutcomeReceipt struct {
	Domain        string  `json:"domain"`
	Outcome       float64 `json:"outcome"`
	PreviousScore float64 `json:"previous_score"`
	Bias          float64 `json:"bias"`
	Observations  int     `json:"observations"`
}

// recommendation maps a posterior score to the advisory label.
func recommendation(score float64) string {
	switch {
	case score >= 0.85:
		return "excellent"
	case score >= 0.70:
		return "good"
	case score >= 0.50:
		return "caution"
	default:
		return "limited"
	}
}
