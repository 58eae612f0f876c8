package signals

import (
	"math"
	"net/url"
	"strings"
)

// ageHorizonYears is where domain age saturates the age signal.
const ageHorizonYears = 15.0

// maxHostEntropyBits normalizes hostname character entropy (roughly the
// entropy of uniform lowercase letters).
const maxHostEntropyBits = 4.7

// lowTrustTLDs carry a reputation penalty.
var lowTrustTLDs = []string{
	".xyz", ".biz", ".info", ".click", ".top", ".loan", ".win",
	".gq", ".tk", ".ml", ".cf",
}

// hostedPlatforms are free publishing hosts with no registration barrier.
var hostedPlatforms = []string{"blogspot", "wordpress", "weebly", "wixsite"}

func domainSignals(v *Vector, src Source) {
	v.set("age_signal", true, func() float64 {
		return src.AgeYears / ageHorizonYears
	})
	v.set("domain_reputation", true, func() float64 {
		return domainReputation(src.Host)
	})
	v.set("https_secure", true, func() float64 {
		if src.URL.Scheme == "https" {
			return 1.0
		}
		return 0.2
	})
	v.set("hostname_entropy", true, func() float64 {
		return hostnameEntropy(src.Host)
	})
	v.set("subdomain_depth", true, func() float64 {
		depth := labelCount(src.Host) - labelCount(src.Domain)
		if depth < 0 {
			depth = 0
		}
		return 1 - math.Min(float64(depth), 4)/4
	})
	v.set("path_depth", true, func() float64 {
		return 1 - math.Min(float64(pathSegments(src.URL.Path)), 6)/6
	})
	v.set("url_cleanliness", true, func() float64 {
		return urlCleanliness(src.URL)
	})
	v.set("hostname_clean", true, func() float64 {
		return hostnameClean(src.Host)
	})
	v.set("domain_length", true, func() float64 {
		return 1 - (float64(len(src.Domain))-10)/30
	})
}

// domainReputation scores the hostname's trust hints: institutional TLDs
// up, disposable TLDs and free hosting platforms down.
func domainReputation(host string) float64 {
	score := 0.5
	switch {
	case strings.HasSuffix(host, ".edu"), strings.HasSuffix(host, ".gov"),
		strings.HasSuffix(host, ".mil"), strings.Contains(host, ".ac."):
		score += 0.3
	case strings.HasSuffix(host, ".org"):
		score += 0.15
	}
	for _, tld := range lowTrustTLDs {
		if strings.HasSuffix(host, tld) {
			score -= 0.2
			break
		}
	}
	for _, platform := range hostedPlatforms {
		if strings.Contains(host, platform) {
			score -= 0.1
			break
		}
	}
	if strings.Contains(host, "blog") {
		score -= 0.05
	}
	return score
}

// hostnameEntropy inverts the Shannon entropy of the hostname's
// characters: algorithmically generated hosts read as high-entropy noise,
// dictionary-word hosts as low.
func hostnameEntropy(host string) float64 {
	var counts [256]int
	var total int
	for i := 0; i < len(host); i++ {
		if host[i] == '.' {
			continue
		}
		counts[host[i]]++
		total++
	}
	if total == 0 {
		return Neutral
	}
	var h float64
	for _, n := range counts {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		h -= p * math.Log2(p)
	}
	return 1 - math.Min(h/maxHostEntropyBits, 1)
}

// urlCleanliness penalizes query-parameter sprawl and oversized URLs.
func urlCleanliness(u *url.URL) float64 {
	var params int
	if u.RawQuery != "" {
		params = len(u.Query())
	}
	score := 1.0 - 0.15*float64(params)
	if n := len(u.String()); n > 80 {
		score -= float64(n-80) / 300
	}
	return score
}

// hostnameClean penalizes digit and hyphen density in the hostname.
func hostnameClean(host string) float64 {
	if host == "" {
		return Neutral
	}
	var odd int
	for i := 0; i < len(host); i++ {
		c := host[i]
		if c == '-' || (c >= '0' && c <= '9') {
			odd++
		}
	}
	return 1 - 2*float64(odd)/float64(len(host))
}

func labelCount(host string) int {
	if host == "" {
		return 0
	}
	return strings.Count(host, ".") + 1
}

func pathSegments(path string) int {
	var n int
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			n++
		}
	}
	return n
}
