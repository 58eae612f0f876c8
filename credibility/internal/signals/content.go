package signals

import (
	"math"
	"strings"
)

// textDepthSaturation is the word count that maxes text_depth.
const textDepthSaturation = 2000

func titleSignals(v *Vector, title string) {
	ok := strings.TrimSpace(title) != ""
	v.set("title_sentiment_neutrality", ok, func() float64 {
		return titleNeutrality(title)
	})
	v.set("title_clickbait_free", ok, func() float64 {
		return clickbaitFree(title)
	})
	v.set("title_length_sanity", ok, func() float64 {
		return lengthSanity(len(title), 30, 90)
	})
}

// titleNeutrality inverts the emotional load of a title: sensational
// vocabulary, exclamation marks, ALL-CAPS shouting.
func titleNeutrality(title string) float64 {
	toks := words(title)
	if len(toks) == 0 {
		return Neutral
	}
	sensational := float64(lexiconHits(toks, sensationalWords)) / float64(len(toks))
	exclaims := float64(strings.Count(title, "!"))
	loaded := 2*sensational + 0.2*exclaims + capsRatio(title)
	return 1 - math.Min(loaded, 1)
}

// clickbaitFree penalizes formulaic engagement-bait constructions.
func clickbaitFree(title string) float64 {
	lower := strings.ToLower(strings.TrimSpace(title))
	score := 1.0
	if lower != "" && lower[0] >= '0' && lower[0] <= '9' {
		score -= 0.4
	}
	if containsAny(lower, clickbaitPhrases) {
		score -= 0.3
	}
	if strings.HasSuffix(lower, "!") {
		score -= 0.2
	}
	if strings.Contains(lower, "?") && strings.ContainsAny(lower, "0123456789") {
		score -= 0.1
	}
	return score
}

func contentSignals(v *Vector, content string) {
	var (
		lower = strings.ToLower(content)
		toks  = words(content)
		sents = sentences(content)
	)
	ok := len(toks) > 0
	wc := float64(len(toks))

	v.set("formality", ok, func() float64 {
		return 10 * float64(lexiconHits(toks, academicWords)) / wc
	})
	v.set("specificity", ok, func() float64 {
		return specificity(content, toks)
	})
	v.set("text_depth", ok, func() float64 {
		return math.Log1p(wc) / math.Log1p(textDepthSaturation)
	})
	v.set("evidence_density", ok, func() float64 {
		return evidenceDensity(toks)
	})
	v.set("reference_quality", ok, func() float64 {
		return referenceQuality(content, lower)
	})
	v.set("logical_coherence", ok, func() float64 {
		return 3 * float64(lexiconHits(toks, transitionWords)) / float64(sents)
	})
	v.set("has_methodology", ok, func() float64 {
		return boolSignal(containsAny(lower, methodologyMarkers))
	})
	v.set("has_results", ok, func() float64 {
		return boolSignal(containsAny(lower, resultsMarkers))
	})
	v.set("has_limitations", ok, func() float64 {
		return boolSignal(containsAny(lower, limitationsMarkers))
	})
	v.set("readability", ok, func() float64 {
		return lengthSanity(int(wc)/sents, 8, 30)
	})
	v.set("lexical_diversity", ok, func() float64 {
		return lexicalDiversity(toks)
	})
	v.set("caps_discipline", ok, func() float64 {
		return 1 - math.Min(3*capsRatio(content), 1)
	})
	v.set("exclamation_restraint", ok, func() float64 {
		return 1 - math.Min(0.2*float64(strings.Count(content, "!")), 1)
	})
	v.set("structure_score", ok, func() float64 {
		return structureScore(content)
	})
	v.set("word_sophistication", ok, func() float64 {
		return wordSophistication(toks)
	})
}

// specificity measures concrete-claim density: numeric tokens, quoted
// spans, measurement marks.
func specificity(content string, toks []string) float64 {
	var digitToks int
	for _, tok := range toks {
		if strings.ContainsAny(tok, "0123456789") {
			digitToks++
		}
	}
	quotes := strings.Count(content, `"`) / 2
	marks := strings.Count(content, "%") + strings.Count(content, "±")
	return 8 * float64(digitToks+quotes+marks) / float64(len(toks))
}

// evidenceDensity measures statistical-evidence markers per token.
func evidenceDensity(toks []string) float64 {
	var hits int
	for _, tok := range toks {
		switch {
		case strings.ContainsAny(tok, "0123456789") &&
			(strings.Contains(tok, "%") || strings.Contains(tok, "±")):
			hits++
		case strings.HasPrefix(tok, "p<"), strings.HasPrefix(tok, "p="),
			strings.HasPrefix(tok, "n="):
			hits++
		case tok == "significant", tok == "significantly", tok == "correlation",
			tok == "confidence", tok == "interval", tok == "sample":
			hits++
		}
	}
	return 20 * float64(hits) / float64(len(toks))
}

// referenceQuality scores citation apparatus: "et al.", DOI strings,
// bracketed numeric references, a references section.
func referenceQuality(content, lower string) float64 {
	etAl := strings.Count(lower, "et al")
	dois := strings.Count(lower, "doi.org/") + strings.Count(lower, "doi:")
	brackets := bracketRefs(content)

	var score float64
	score += 0.25 * math.Min(float64(etAl), 2)
	score += 0.4 * math.Min(float64(dois), 1)
	score += 0.1 * math.Min(float64(brackets), 3)
	if strings.Contains(lower, "references") || strings.Contains(lower, "bibliography") {
		score += 0.3
	}
	return score
}

// bracketRefs counts bracketed numeric citations like [12].
func bracketRefs(content string) int {
	var n int
	for i := 0; i+2 < len(content); i++ {
		if content[i] != '[' {
			continue
		}
		j := i + 1
		for j < len(content) && content[j] >= '0' && content[j] <= '9' {
			j++
		}
		if j > i+1 && j < len(content) && content[j] == ']' {
			n++
		}
	}
	return n
}

// lexicalDiversity scales the type-token ratio so ordinary prose sits
// near the top of the range.
func lexicalDiversity(toks []string) float64 {
	seen := make(map[string]struct{}, len(toks))
	for _, tok := range toks {
		seen[tok] = struct{}{}
	}
	return 2 * float64(len(seen)) / float64(len(toks))
}

// structureScore rewards visible document structure (headings, list
// items, tables). Bonus-only: plain prose sits at the neutral floor.
func structureScore(content string) float64 {
	lines := strings.Split(content, "\n")
	var markers int
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"),
			strings.HasPrefix(trimmed, "- "),
			strings.HasPrefix(trimmed, "* "),
			strings.HasPrefix(trimmed, "|"):
			markers++
		default:
			if len(trimmed) > 2 && trimmed[0] >= '0' && trimmed[0] <= '9' &&
				(trimmed[1] == '.' || trimmed[1] == ')') {
				markers++
			}
		}
	}
	density := float64(markers) / float64(len(lines))
	return 0.5 + 0.5*math.Min(3*density, 1)
}

// wordSophistication is the scaled share of long words.
func wordSophistication(toks []string) float64 {
	var long int
	for _, tok := range toks {
		if len(tok) >= 8 {
			long++
		}
	}
	return 3 * float64(long) / float64(len(toks))
}

// lengthSanity is 1 inside [lo,hi] and decays linearly outside.
func lengthSanity(n, lo, hi int) float64 {
	switch {
	case n < lo:
		return float64(n) / float64(lo)
	case n > hi:
		return 1 - float64(n-hi)/float64(hi)
	default:
		return 1
	}
}
