package credibility

import "github.com/hazyhaar/credence/credibility/internal/signals"

// uncertaintyBand derives the confidence-interval half-width from signal
// coverage and dispersion: confidence grows with how many signals were
// real and shrinks with their variance. Variance is computed over
// provided signals only. The band never exceeds ceiling.
func uncertaintyBand(vec signals.Vector, ceiling float64) float64 {
	var (
		n   int
		sum float64
	)
	for name, ok := range vec.Provided {
		if ok {
			n++
			sum += vec.Values[name]
		}
	}
	coverage := float64(n) / float64(signals.Max)

	var variance float64
	if n > 0 {
		mean := sum / float64(n)
		for name, ok := range vec.Provided {
			if ok {
				d := vec.Values[name] - mean
				variance += d * d
			}
		}
		variance /= float64(n)
	}

	confidence := 0.6*coverage + 0.4*(1-variance)
	return (1 - confidence) * ceiling
}

// interval clips the symmetric band around score to [0,1].
func interval(score, uncertainty float64) [2]float64 {
	lo := score - uncertainty
	hi := score + uncertainty
	if lo < 0 {
		lo = 0
	}
	if hi > 1 {
		hi = 1
	}
	return [2]float64{lo, hi}
}
