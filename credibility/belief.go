package credibility

import "sync"

// beliefEntry is the learned state for one domain.
type beliefEntry struct {
	bias         float64
	lastScore    float64
	hasScore     bool
	observations int
}

// beliefStore accumulates per-domain prior corrections from recorded
// outcomes. Entries live for the process lifetime; last write wins.
type beliefStore struct {
	mu      sync.RWMutex
	alpha   float64
	clampAt float64
	entries map[string]*beliefEntry
}

func newBeliefStore(cfg BeliefConfig) *beliefStore {
	return &beliefStore{
		alpha:   cfg.LearningRate,
		clampAt: cfg.BiasClamp,
		entries: make(map[string]*beliefEntry),
	}
}

// bias returns the accumulated prior correction for domain.
func (b *beliefStore) bias(domain string) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if e, ok := b.entries[domain]; ok {
		return e.bias
	}
	return 0
}

// observe records the latest assessed score for domain, so a later
// outcome is measured against what the engine actually said.
func (b *beliefStore) observe(domain string, score float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.entries[domain]
	if e == nil {
		e = &beliefEntry{}
		b.entries[domain] = e
	}
	e.lastScore = score
	e.hasScore = true
}

// update folds an observed outcome into the domain's bias. fallback is
// the reference score for domains never assessed in this process.
func (b *beliefStore) update(domain string, outcome, fallback float64) (bias, previous float64, observations int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.entries[domain]
	if e == nil {
		e = &beliefEntry{}
		b.entries[domain] = e
	}
	previous = fallback
	if e.hasScore {
		previous = e.lastScore
	}
	e.bias += b.alpha * (outcome - previous)
	if e.bias > b.clampAt {
		e.bias = b.clampAt
	} else if e.bias < -b.clampAt {
		e.bias = -b.clampAt
	}
	e.observations++
	return e.bias, previous, e.observations
}
