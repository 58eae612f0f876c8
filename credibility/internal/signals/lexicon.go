package signals

import (
	"strings"
	"unicode"
)

// sensationalWords flag emotionally loaded title vocabulary. "breaking"
// is deliberately absent: an ordinary news-headline prefix is not
// sensational on its own.
var sensationalWords = []string{
	"amazing", "shocking", "unbelievable", "incredible", "secret",
	"trick", "weird", "miracle", "viral", "mind-blowing", "believe",
	"stunning", "insane", "horrifying", "outrageous", "exposed",
	"destroyed", "furious", "epic",
}

// clickbaitPhrases are formulaic engagement-bait constructions.
var clickbaitPhrases = []string{
	"you won't believe", "what happens next", "this one", "doctors hate",
	"will shock you", "can't even", "before you die", "the truth about",
	"number one reason", "hate this",
}

// academicWords indicate formal academic register.
var academicWords = []string{
	"therefore", "however", "moreover", "furthermore", "consequently",
	"hypothesis", "methodology", "analysis", "significant", "empirical",
	"literature", "abstract", "conclusion", "theoretical", "framework",
	"investigate", "demonstrate", "evaluate", "examine", "propose",
	"novel", "approach", "findings", "study", "research", "data",
	"evidence", "experiment", "observed", "measured", "respectively",
	"whereas", "thus", "preliminary", "subsequent",
}

// transitionWords mark logical connective structure.
var transitionWords = []string{
	"however", "therefore", "moreover", "furthermore", "consequently",
	"thus", "hence", "although", "nevertheless", "nonetheless",
	"additionally", "similarly", "conversely", "accordingly", "because",
	"meanwhile", "whereas",
}

// Section markers for the has_* flags.
var (
	methodologyMarkers = []string{
		"methodology", "methods", "experimental setup", "study design",
		"we conducted", "we analyzed", "data collection", "participants were",
	}
	resultsMarkers = []string{
		"results", "findings", "we found", "we observed", "outcomes",
		"as shown in",
	}
	limitationsMarkers = []string{
		"limitations", "caveats", "future work", "shortcomings",
		"further research", "we acknowledge",
	}
)

// punctTrim is stripped from token edges.
const punctTrim = ".,;:!?()[]{}<>\"'`*#"

// words splits text into lowercased tokens with edge punctuation
// stripped. Empty tokens are dropped.
func words(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, punctTrim)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// sentences estimates sentence count from terminal punctuation. Never
// returns zero.
func sentences(text string) int {
	n := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	if n == 0 {
		return 1
	}
	return n
}

// lexiconHits counts tokens matching a lexicon word by prefix, so plural
// and inflected forms hit too.
func lexiconHits(toks []string, lexicon []string) int {
	var n int
	for _, tok := range toks {
		for _, lex := range lexicon {
			if strings.HasPrefix(tok, lex) {
				n++
				break
			}
		}
	}
	return n
}

// containsAny reports whether text contains any needle.
func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// capsRatio is the fraction of letter tokens (≥3 chars) written ALL-CAPS.
func capsRatio(text string) float64 {
	var letters, caps int
	for _, tok := range strings.Fields(text) {
		tok = strings.Trim(tok, punctTrim)
		if len(tok) < 3 || !isAlpha(tok) {
			continue
		}
		letters++
		if tok == strings.ToUpper(tok) {
			caps++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(caps) / float64(letters)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
