package credibility

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hazyhaar/credence/citegraph"
	"github.com/hazyhaar/credence/credibility/internal/signals"
	"github.com/hazyhaar/credence/domainage"
	"github.com/hazyhaar/credence/idgen"
	"github.com/hazyhaar/credence/webmeta"
)

// Engine is the credibility assessment service. All shared state (age
// cache, citation graph, belief store, history) lives on the instance;
// independent engines are fully isolated.
type Engine struct {
	cfg     *Config
	logger  *slog.Logger
	ages    *domainage.Resolver
	graph   *citegraph.Graph
	beliefs *beliefStore
	history *historyRing
	pages   *webmeta.Extractor
	now     func() time.Time
	newID   idgen.Generator

	ageLookup domainage.Lookup
}

// Option customizes an Engine.
type Option func(*Engine)

// WithAgeLookup installs a network age lookup (WHOIS). Without it the
// resolver runs on heuristics alone.
func WithAgeLookup(l domainage.Lookup) Option {
	return func(e *Engine) { e.ageLookup = l }
}

// WithClock overrides the engine clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine.
func New(cfg *Config, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	for i, r := range cfg.Rules {
		if r.Prior <= 0 || r.Prior >= 1 {
			return nil, fmt.Errorf("credibility: rule %d (%s) prior %v outside (0,1)", i, r.Category, r.Prior)
		}
	}

	e := &Engine{
		cfg:     cfg,
		logger:  logger,
		graph:   citegraph.New(),
		beliefs: newBeliefStore(cfg.Belief),
		history: newHistoryRing(cfg.HistorySize),
		pages:   webmeta.New(logger),
		now:     time.Now,
		newID:   idgen.Prefixed("asmt_", idgen.UUIDv7()),
	}
	for _, opt := range opts {
		opt(e)
	}

	ageOpts := []domainage.Option{domainage.WithNow(func() time.Time { return e.now() })}
	if e.ageLookup != nil {
		ageOpts = append(ageOpts, domainage.WithLookup(e.ageLookup))
	}
	e.ages = domainage.New(cfg.Age, logger, ageOpts...)
	return e, nil
}

// Assess runs the full pipeline on one input: resolve domain age, extract
// signals, classify, update the citation graph, fuse, band. The worst
// case for sparse evidence is a result built from defaults and the prior;
// only a bad URL or outcome refuses service.
func (e *Engine) Assess(ctx context.Context, in *Input) (*Result, error) {
	start := e.now()
	if err := validateInput(in); err != nil {
		return nil, err
	}
	u, err := NormalizeURL(in.URL)
	if err != nil {
		return nil, err
	}
	host := u.Hostname()
	domain := RegistrableDomain(host)

	ageYears := e.ages.Age(ctx, domain)

	var meta signals.Meta
	if in.Metadata != nil {
		meta = signals.Meta{
			Year:           in.Metadata.Year,
			Authors:        in.Metadata.Authors,
			Citations:      in.Metadata.Citations,
			DOI:            in.Metadata.DOI,
			IsPeerReviewed: in.Metadata.IsPeerReviewed,
		}
	}

	// Raw HTML content is distilled first: the signal extractor scores
	// prose, and the page's own metadata and outbound links fill whatever
	// the caller left blank.
	title := in.Title
	content := truncate(in.Content, maxContentLen)
	citationsTo := in.CitationsTo
	if webmeta.LooksLikeHTML(content) {
		if page, err := e.pages.Extract(content, u.String()); err == nil {
			if strings.TrimSpace(title) == "" {
				title = page.Title
			}
			content = page.Text
			if meta.Year == 0 {
				meta.Year = page.Year
			}
			if len(meta.Authors) == 0 {
				meta.Authors = page.Authors
			}
			if meta.DOI == "" {
				meta.DOI = page.DOI
			}
			if len(page.Links) > 0 {
				citationsTo = append(append([]string(nil), citationsTo...), page.Links...)
			}
			e.logger.Debug("credibility: html content distilled",
				"domain", domain, "links", len(page.Links), "title_found", title != "")
		} else {
			e.logger.Debug("credibility: html extraction failed, scoring raw content",
				"domain", domain, "error", err)
		}
	}

	vec := signals.Extract(signals.Source{
		URL:      u,
		Host:     host,
		Domain:   domain,
		AgeYears: ageYears,
		Title:    truncate(title, maxTitleLen),
		Content:  truncate(content, maxContentLen),
		Meta:     meta,
		Now:      start,
	})

	category, prior := classify(host, e.cfg.Rules)
	prior = clampPrior(prior + e.beliefs.bias(domain))

	e.updateGraph(domain, citationsTo, in.CitationsFrom)
	pagerank, inGraph := e.graph.PageRank(domain)

	score, lr := fuse(prior, vec, pagerank, inGraph, e.cfg.Fusion)
	uncertainty := uncertaintyBand(vec, e.cfg.UncertaintyCeiling)

	res := &Result{
		AssessmentID:       e.newID(),
		URL:                u.String(),
		Domain:             domain,
		Category:           category,
		CredibilityScore:   score,
		ConfidenceInterval: interval(score, uncertainty),
		Uncertainty:        uncertainty,
		Prior:              prior,
		LikelihoodRatio:    lr,
		PageRank:           pagerank,
		Signals:            vec.Values,
		ProvidedSignals:    vec.ProvidedCount(),
		Recommendation:     recommendation(score),
		AssessedAt:         start.UnixMilli(),
		DurationMs:         e.now().Sub(start).Milliseconds(),
	}

	e.beliefs.observe(domain, score)
	if in.Outcome != nil {
		bias, _, _ := e.beliefs.update(domain, *in.Outcome, score)
		e.logger.Debug("credibility: outcome recorded",
			"domain", domain, "outcome", *in.Outcome, "bias", bias)
	}
	e.history.add(res)

	e.logger.Debug("credibility: assessed",
		"domain", domain, "category", category, "score", score,
		"provided", res.ProvidedSignals, "duration_ms", res.DurationMs)
	return res, nil
}

// updateGraph adds the input's citation edges. Links that cannot name a
// graph node are dropped; the assessment proceeds regardless.
func (e *Engine) updateGraph(domain string, to, from []string) {
	for _, link := range capLinks(to) {
		target, ok := citationDomain(link)
		if !ok {
			e.logger.Debug("credibility: citation dropped", "link", link)
			continue
		}
		e.graph.AddCitation(domain, target)
	}
	for _, link := range capLinks(from) {
		source, ok := citationDomain(link)
		if !ok {
			e.logger.Debug("credibility: citation dropped", "link", link)
			continue
		}
		e.graph.AddCitation(source, domain)
	}
}

// RecordOutcome registers a ground-truth credibility observation for the
// domain of rawURL. The accumulated bias corrects the category prior on
// later assessments of that domain.
func (e *Engine) RecordOutcome(rawURL string, outcome float64) (*OutcomeReceipt, error) {
	if outcome < 0 || outcome > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidOutcome, outcome)
	}
	u, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	host := u.Hostname()
	domain := RegistrableDomain(host)

	// Domains never assessed fall back to their corrected category prior.
	_, prior := classify(host, e.cfg.Rules)
	fallback := clampPrior(prior + e.beliefs.bias(domain))

	bias, previous, n := e.beliefs.update(domain, outcome, fallback)
	e.logger.Info("credibility: outcome recorded",
		"domain", domain, "outcome", outcome, "bias", bias, "observations", n)
	return &OutcomeReceipt{
		Domain:        domain,
		Outcome:       outcome,
		PreviousScore: previous,
		Bias:          bias,
		Observations:  n,
	}, nil
}

// GraphStats reports citation-graph statistics.
func (e *Engine) GraphStats() citegraph.Stats {
	return e.graph.Stats(e.cfg.GraphTopN)
}

// DomainAge resolves a domain's age estimate and how it was derived.
func (e *Engine) DomainAge(ctx context.Context, domain string) domainage.Report {
	return e.ages.Resolve(ctx, RegistrableDomain(domain))
}

// Recent returns up to limit recent assessments, newest first.
func (e *Engine) Recent(limit int) []*Result {
	return e.history.recent(limit)
}

// Graph exposes the citation graph for direct seeding (testing, admin).
func (e *Engine) Graph() *citegraph.Graph {
	return e.graph
}
