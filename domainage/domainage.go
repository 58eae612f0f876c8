// Package domainage resolves a registrable domain to an age estimate in
// years, the strongest single predictor available to the credibility engine.
//
// Resolution order: process-lifetime cache → one time-bounded WHOIS lookup →
// static well-known-domain table → generic-TLD estimate. Only values obtained
// from a real lookup are cached; heuristic answers are recomputed on every
// call so a later request may still win a network-resolved value. The
// resolver never returns an error: a missing or failing lookup capability
// degrades to heuristics.
package domainage

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Source identifies how an age estimate was obtained.
type Source string

const (
	SourceCache  Source = "cache"
	SourceLookup Source = "whois"
	SourceStatic Source = "static"
	SourceTLD    Source = "tld"
)

// Report is the full resolution result, exposed for introspection surfaces.
type Report struct {
	Domain     string    `json:"domain"`
	Years      float64   `json:"years"`
	Source     Source    `json:"source"`
	ResolvedAt time.Time `json:"resolved_at"`
}

type cacheEntry struct {
	years      float64
	resolvedAt time.Time
}

// Resolver resolves domain ages. Safe for concurrent use. Concurrent calls
// for the same uncached domain may each perform a lookup; the last write
// wins, which is harmless because both observed the same registry data.
type Resolver struct {
	cfg    Config
	logger *slog.Logger
	lookup Lookup
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup installs a network lookup capability. Without it the resolver
// runs on heuristics alone.
func WithLookup(l Lookup) Option {
	return func(r *Resolver) { r.lookup = l }
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// New creates a Resolver. A nil logger falls back to slog.Default().
func New(cfg Config, logger *slog.Logger, opts ...Option) *Resolver {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		cfg:    cfg,
		logger: logger,
		lookup: NoopLookup{},
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Age returns the age estimate in years for domain.
func (r *Resolver) Age(ctx context.Context, domain string) float64 {
	return r.Resolve(ctx, domain).Years
}

// Resolve returns the full resolution report for domain.
func (r *Resolver) Resolve(ctx context.Context, domain string) Report {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return Report{Domain: domain, Years: r.cfg.DefaultAgeYears, Source: SourceTLD, ResolvedAt: r.now()}
	}

	r.mu.RLock()
	entry, ok := r.cache[domain]
	r.mu.RUnlock()
	if ok {
		return Report{Domain: domain, Years: r.ageAsOfNow(entry), Source: SourceCache, ResolvedAt: entry.resolvedAt}
	}

	if years, err := r.lookupAge(ctx, domain); err == nil {
		resolved := r.now()
		r.mu.Lock()
		r.cache[domain] = cacheEntry{years: years, resolvedAt: resolved}
		r.mu.Unlock()
		return Report{Domain: domain, Years: years, Source: SourceLookup, ResolvedAt: resolved}
	} else if !errors.Is(err, ErrUnavailable) {
		r.logger.Debug("domainage: lookup failed, falling back", "domain", domain, "error", err)
	}

	if years, ok := r.staticAge(domain); ok {
		return Report{Domain: domain, Years: years, Source: SourceStatic, ResolvedAt: r.now()}
	}
	return Report{Domain: domain, Years: r.tldAge(domain), Source: SourceTLD, ResolvedAt: r.now()}
}

// lookupAge performs the single bounded network attempt.
func (r *Resolver) lookupAge(ctx context.Context, domain string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.LookupTimeout)
	defer cancel()

	created, err := r.lookup.CreationDate(ctx, domain)
	if err != nil {
		return 0, err
	}
	years := r.now().Sub(created).Hours() / (24 * 365.25)
	if years < 0 {
		years = 0
	}
	return years, nil
}

// ageAsOfNow re-derives the age from the cached value so long-lived processes
// do not report stale ages.
func (r *Resolver) ageAsOfNow(e cacheEntry) float64 {
	return e.years + r.now().Sub(e.resolvedAt).Hours()/(24*365.25)
}

// staticAge consults the well-known-domain table, exact match first, then a
// dot-boundary suffix match so stray subdomains still hit.
func (r *Resolver) staticAge(domain string) (float64, bool) {
	if founded, ok := r.cfg.FoundedYears[domain]; ok {
		return r.yearsSince(founded), true
	}
	for known, founded := range r.cfg.FoundedYears {
		if strings.HasSuffix(domain, "."+known) {
			return r.yearsSince(founded), true
		}
	}
	return 0, false
}

// tldAge estimates age from TLD plausibility alone.
func (r *Resolver) tldAge(domain string) float64 {
	if i := strings.LastIndex(domain, "."); i >= 0 {
		if years, ok := r.cfg.TLDAgeYears[domain[i:]]; ok {
			return years
		}
	}
	return r.cfg.DefaultAgeYears
}

func (r *Resolver) yearsSince(year int) float64 {
	y := float64(r.now().Year() - year)
	if y < 0 {
		return 0
	}
	return y
}

// CacheLen reports the number of network-resolved entries, for stats surfaces.
func (r *Resolver) CacheLen() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
