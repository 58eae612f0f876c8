package credibility

import (
	"math"
	"testing"
)

func testBeliefs() *beliefStore {
	return newBeliefStore(BeliefConfig{LearningRate: 0.1, BiasClamp: 0.2})
}

func TestBelief_UpdateMath(t *testing.T) {
	b := testBeliefs()
	b.observe("example.com", 0.3)

	bias, previous, obs := b.update("example.com", 0.9, 0.5)
	if previous != 0.3 {
		t.Errorf("previous = %v, want last observed score 0.3", previous)
	}
	// 0.1 * (0.9 - 0.3)
	if math.Abs(bias-0.06) > 1e-12 {
		t.Errorf("bias = %v, want 0.06", bias)
	}
	if obs != 1 {
		t.Errorf("observations = %d, want 1", obs)
	}
	if got := b.bias("example.com"); math.Abs(got-0.06) > 1e-12 {
		t.Errorf("stored bias = %v, want 0.06", got)
	}
}

// WHAT: a domain never assessed falls back to the supplied reference
// score.
func TestBelief_UpdateUsesFallback(t *testing.T) {
	b := testBeliefs()
	bias, previous, _ := b.update("fresh.example", 0.9, 0.5)
	if previous != 0.5 {
		t.Errorf("previous = %v, want fallback 0.5", previous)
	}
	if math.Abs(bias-0.04) > 1e-12 {
		t.Errorf("bias = %v, want 0.04", bias)
	}
}

func TestBelief_BiasCompounds(t *testing.T) {
	b := testBeliefs()
	b.observe("example.com", 0.5)
	first, _, _ := b.update("example.com", 1.0, 0.5)
	second, _, obs := b.update("example.com", 1.0, 0.5)
	if second <= first {
		t.Errorf("repeated good outcomes: bias %v should exceed %v", second, first)
	}
	if obs != 2 {
		t.Errorf("observations = %d, want 2", obs)
	}
}

// WHAT: bias saturates at the clamp.
// WHY: outcome feedback adjusts the prior; it must never replace it.
func TestBelief_BiasClamp(t *testing.T) {
	b := testBeliefs()
	b.observe("example.com", 0.0)
	var bias float64
	for i := 0; i < 100; i++ {
		bias, _, _ = b.update("example.com", 1.0, 0.5)
	}
	if bias != 0.2 {
		t.Errorf("bias = %v, want clamped at 0.2", bias)
	}

	b.observe("bad.example", 1.0)
	for i := 0; i < 100; i++ {
		bias, _, _ = b.update("bad.example", 0.0, 0.5)
	}
	if bias != -0.2 {
		t.Errorf("bias = %v, want clamped at -0.2", bias)
	}
}

func TestBelief_UnknownDomainHasZeroBias(t *testing.T) {
	b := testBeliefs()
	if got := b.bias("never-seen.example"); got != 0 {
		t.Errorf("bias = %v, want 0", got)
	}
}

// WHAT: observe refreshes the reference score between outcomes.
func TestBelief_ObserveUpdatesReference(t *testing.T) {
	b := testBeliefs()
	b.observe("example.com", 0.2)
	b.observe("example.com", 0.8)
	_, previous, _ := b.update("example.com", 0.8, 0.5)
	if previous != 0.8 {
		t.Errorf("previous = %v, want most recent observation 0.8", previous)
	}
}
