package signals

import (
	"net/url"
	"testing"
	"time"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func testSource(t *testing.T, raw string) Source {
	t.Helper()
	u := mustParse(t, raw)
	host := u.Hostname()
	return Source{
		URL:      u,
		Host:     host,
		Domain:   host,
		AgeYears: 10,
		Now:      testNow,
	}
}

// WHAT: every extraction yields the full fixed signal set.
// WHY: fusion depends on constant dimensionality; missing evidence must
// default, never omit.
func TestExtract_FullDimensionality(t *testing.T) {
	if len(Names) != Max {
		t.Fatalf("len(Names) = %d, want %d", len(Names), Max)
	}
	vec := Extract(testSource(t, "https://example.com/article"))
	if len(vec.Values) != Max {
		t.Fatalf("len(Values) = %d, want %d", len(vec.Values), Max)
	}
	for _, name := range Names {
		val, ok := vec.Values[name]
		if !ok {
			t.Errorf("signal %q missing", name)
			continue
		}
		if val < 0 || val > 1 {
			t.Errorf("signal %q = %v outside [0,1]", name, val)
		}
	}
}

func TestExtract_AbsentTitleDefaults(t *testing.T) {
	vec := Extract(testSource(t, "https://example.com/a"))
	for _, name := range []string{"title_sentiment_neutrality", "title_clickbait_free", "title_length_sanity"} {
		if vec.Provided[name] {
			t.Errorf("%s provided without a title", name)
		}
		if vec.Values[name] != Neutral {
			t.Errorf("%s = %v, want neutral", name, vec.Values[name])
		}
	}
}

func TestExtract_AbsentContentDefaults(t *testing.T) {
	vec := Extract(testSource(t, "https://example.com/a"))
	for _, name := range []string{"formality", "text_depth", "has_methodology", "structure_score"} {
		if vec.Provided[name] {
			t.Errorf("%s provided without content", name)
		}
	}
}

func TestExtract_DomainSignalsAlwaysProvided(t *testing.T) {
	vec := Extract(testSource(t, "https://example.com/a"))
	for _, name := range []string{
		"age_signal", "domain_reputation", "https_secure", "hostname_entropy",
		"subdomain_depth", "path_depth", "url_cleanliness", "hostname_clean",
		"domain_length",
	} {
		if !vec.Provided[name] {
			t.Errorf("%s not provided despite URL evidence", name)
		}
	}
}

// WHAT: a panicking feature computation defaults to neutral.
// WHY: one bad feature must never abort the extraction.
func TestExtract_FailSoftOnPanic(t *testing.T) {
	src := testSource(t, "https://example.com/a")
	src.URL = nil // URL-dependent features panic; host-based ones survive
	vec := Extract(src)

	if vec.Provided["https_secure"] {
		t.Error("https_secure should default when its computation panics")
	}
	if vec.Values["https_secure"] != Neutral {
		t.Errorf("https_secure = %v, want neutral", vec.Values["https_secure"])
	}
	if !vec.Provided["domain_reputation"] {
		t.Error("domain_reputation should still compute from the host")
	}
	if len(vec.Values) != Max {
		t.Errorf("dimensionality %d after panic, want %d", len(vec.Values), Max)
	}
}

func TestAgeSignal(t *testing.T) {
	tests := []struct {
		years float64
		want  float64
	}{
		{0, 0},
		{3, 0.2},
		{15, 1},
		{40, 1},
	}
	for _, tt := range tests {
		src := testSource(t, "https://example.com")
		src.AgeYears = tt.years
		vec := Extract(src)
		if got := vec.Values["age_signal"]; got != tt.want {
			t.Errorf("age %v years: signal = %v, want %v", tt.years, got, tt.want)
		}
	}
}

func TestHTTPSSecure(t *testing.T) {
	secure := Extract(testSource(t, "https://example.com"))
	plain := Extract(testSource(t, "http://example.com"))
	if secure.Values["https_secure"] != 1.0 {
		t.Errorf("https = %v, want 1.0", secure.Values["https_secure"])
	}
	if plain.Values["https_secure"] != 0.2 {
		t.Errorf("http = %v, want 0.2", plain.Values["https_secure"])
	}
}

func TestDomainReputation(t *testing.T) {
	tests := []struct {
		host string
		want float64
	}{
		{"ocw.mit.edu", 0.8},
		{"data.census.gov", 0.8},
		{"arxiv.org", 0.65},
		{"example.com", 0.5},
		{"clickfarm.xyz", 0.3},
		{"myposts.blogspot.com", 0.35}, // platform and "blog" substring stack
	}
	for _, tt := range tests {
		if got := domainReputation(tt.host); got != tt.want {
			t.Errorf("domainReputation(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

// WHAT: random-looking hostnames score lower than dictionary-word hosts.
func TestHostnameEntropy_Ordering(t *testing.T) {
	wordy := hostnameEntropy("paperrepository.org")
	noisy := hostnameEntropy("xk9qz2vb7w.info")
	if noisy >= wordy {
		t.Errorf("noisy host %v should score below wordy host %v", noisy, wordy)
	}
}

func TestSubdomainDepth(t *testing.T) {
	src := testSource(t, "https://a.b.c.d.example.com/x")
	src.Host = "a.b.c.d.example.com"
	src.Domain = "example.com"
	vec := Extract(src)
	// Depth 4 caps the penalty.
	if got := vec.Values["subdomain_depth"]; got != 0 {
		t.Errorf("subdomain_depth = %v, want 0", got)
	}

	flat := Extract(testSource(t, "https://example.com/x"))
	if got := flat.Values["subdomain_depth"]; got != 1 {
		t.Errorf("flat subdomain_depth = %v, want 1", got)
	}
}

func TestTitleNeutrality(t *testing.T) {
	tests := []struct {
		name  string
		title string
		above bool
		bound float64
	}{
		{"plain headline", "Breaking News: Important Event", true, 0.9},
		{"sensational caps", "SHOCKING: Doctors HATE This One Weird Trick!", false, 0.3},
		{"measured paper title", "A Survey of Distributed Consensus Protocols", true, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titleNeutrality(tt.title)
			if tt.above && got < tt.bound {
				t.Errorf("neutrality(%q) = %v, want >= %v", tt.title, got, tt.bound)
			}
			if !tt.above && got > tt.bound {
				t.Errorf("neutrality(%q) = %v, want <= %v", tt.title, got, tt.bound)
			}
		})
	}
}

func TestClickbaitFree(t *testing.T) {
	clean := clickbaitFree("Understanding Raft: An Illustrated Guide")
	listicle := clickbaitFree("10 Secrets You Won't Believe!")
	if clean != 1.0 {
		t.Errorf("clean title = %v, want 1.0", clean)
	}
	// Leading digit, bait phrase, and trailing bang all stack.
	if listicle > 0.2 {
		t.Errorf("listicle = %v, want <= 0.2", listicle)
	}
}

func TestContentSignals_AcademicText(t *testing.T) {
	content := `Abstract. We propose a novel framework for evaluating distributed
consensus. Our methodology combines empirical analysis with theoretical
bounds. We conducted experiments on 120 clusters; results show a 34%
reduction in latency (p<0.01). However, several limitations remain, and
further research is needed. See Smith et al. [1] and doi:10.1000/182 in
the references.`

	src := testSource(t, "https://example.org/paper")
	src.Content = content
	vec := Extract(src)

	for _, name := range []string{"has_methodology", "has_results", "has_limitations"} {
		if vec.Values[name] != 1.0 {
			t.Errorf("%s = %v, want 1.0", name, vec.Values[name])
		}
	}
	if vec.Values["formality"] < 0.5 {
		t.Errorf("formality = %v, want >= 0.5 for academic register", vec.Values["formality"])
	}
	if vec.Values["reference_quality"] < 0.5 {
		t.Errorf("reference_quality = %v, want >= 0.5 with et al., doi, [1], references", vec.Values["reference_quality"])
	}
	if vec.Values["evidence_density"] == 0 {
		t.Error("evidence_density = 0 despite percentages and p-values")
	}
}

func TestContentSignals_ClickbaitText(t *testing.T) {
	content := "You won't believe what scientists discovered! This one trick will change everything. Doctors HATE him!"
	src := testSource(t, "https://example.com/post")
	src.Content = content
	vec := Extract(src)

	if vec.Values["formality"] != 0 {
		t.Errorf("formality = %v, want 0", vec.Values["formality"])
	}
	if vec.Values["has_methodology"] != 0 {
		t.Errorf("has_methodology = %v, want 0", vec.Values["has_methodology"])
	}
	if vec.Values["exclamation_restraint"] >= 1 {
		t.Errorf("exclamation_restraint = %v, want < 1", vec.Values["exclamation_restraint"])
	}
	if vec.Values["caps_discipline"] >= 1 {
		t.Errorf("caps_discipline = %v, want < 1 with HATE", vec.Values["caps_discipline"])
	}
}

// WHAT: structure_score is bonus-only.
// WHY: plain prose is not evidence against credibility.
func TestStructureScore_Floor(t *testing.T) {
	prose := structureScore("Just a single paragraph of ordinary prose with no markup at all.")
	if prose != 0.5 {
		t.Errorf("plain prose = %v, want 0.5", prose)
	}
	structured := structureScore("# Title\n\n- first point\n- second point\n\n1. step one\n2. step two")
	if structured <= prose {
		t.Errorf("structured %v should beat prose %v", structured, prose)
	}
}

func TestMetadataProvidedSemantics(t *testing.T) {
	no := false
	src := testSource(t, "https://example.com/a")
	src.Meta = Meta{IsPeerReviewed: &no}
	vec := Extract(src)

	// Explicit false is real negative evidence, not absence.
	if !vec.Provided["peer_reviewed"] {
		t.Error("explicit false peer_reviewed should count as provided")
	}
	if vec.Values["peer_reviewed"] != 0 {
		t.Errorf("peer_reviewed = %v, want 0", vec.Values["peer_reviewed"])
	}

	// Zero-value keys are absent.
	for _, name := range []string{"recency", "multi_author", "citation_impact", "has_doi"} {
		if vec.Provided[name] {
			t.Errorf("%s provided despite zero metadata", name)
		}
	}
}

func TestRecency(t *testing.T) {
	tests := []struct {
		year int
		want float64
	}{
		{2026, 1.0},
		{2023, 0.7},
		{2016, 0.0}, // floor: staleness never goes negative-credible
		{2000, 0.0},
	}
	for _, tt := range tests {
		src := testSource(t, "https://example.com")
		src.Meta = Meta{Year: tt.year}
		vec := Extract(src)
		got := vec.Values["recency"]
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("recency(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestCitationImpact_Saturation(t *testing.T) {
	src := testSource(t, "https://example.com")
	src.Meta = Meta{Citations: 50000}
	vec := Extract(src)
	if vec.Values["citation_impact"] != 1.0 {
		t.Errorf("citation_impact(50000) = %v, want 1.0", vec.Values["citation_impact"])
	}

	src.Meta = Meta{Citations: 10}
	mid := Extract(src)
	got := mid.Values["citation_impact"]
	if got <= 0 || got >= 0.5 {
		t.Errorf("citation_impact(10) = %v, want small but nonzero", got)
	}
}

func TestMultiAuthor(t *testing.T) {
	src := testSource(t, "https://example.com")
	src.Meta = Meta{Authors: []string{"a", "b", "c", "d", "e"}}
	vec := Extract(src)
	if vec.Values["multi_author"] != 1.0 {
		t.Errorf("multi_author(5) = %v, want 1.0", vec.Values["multi_author"])
	}

	src.Meta = Meta{Authors: []string{"solo"}}
	one := Extract(src)
	if one.Values["multi_author"] != 0.25 {
		t.Errorf("multi_author(1) = %v, want 0.25", one.Values["multi_author"])
	}
}

func TestHasDOI(t *testing.T) {
	src := testSource(t, "https://example.com")
	src.Meta = Meta{DOI: "10.1038/s41586-021-03819-2"}
	vec := Extract(src)
	if vec.Values["has_doi"] != 1.0 {
		t.Errorf("well-formed DOI = %v, want 1.0", vec.Values["has_doi"])
	}

	src.Meta = Meta{DOI: "not-a-doi"}
	bad := Extract(src)
	if bad.Values["has_doi"] != 0.2 {
		t.Errorf("malformed DOI = %v, want 0.2", bad.Values["has_doi"])
	}
	if !bad.Provided["has_doi"] {
		t.Error("malformed DOI still counts as provided evidence")
	}
}

func TestProvidedCount(t *testing.T) {
	bare := Extract(testSource(t, "https://example.com/a"))
	if got := bare.ProvidedCount(); got != 9 {
		t.Errorf("bare URL ProvidedCount = %d, want 9 domain signals", got)
	}

	src := testSource(t, "https://example.com/a")
	src.Title = "A Reasonable Title For This Article"
	full := Extract(src)
	if got := full.ProvidedCount(); got != 12 {
		t.Errorf("URL+title ProvidedCount = %d, want 12", got)
	}
}
