package credibility

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryRule binds a category and its base prior to a set of hostname
// patterns. Patterns starting with "." match anywhere in the hostname
// (TLD fragments like ".edu"); patterns containing a dot match the
// hostname exactly or as a registrable suffix ("ft.com" matches
// "www.ft.com" but not "microsoft.com"); bare words match as substrings.
type CategoryRule struct {
	Category Category `json:"category" yaml:"category"`
	Prior    float64  `json:"prior" yaml:"prior"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// unknownPrior is the prior for hosts no rule matches.
const unknownPrior = 0.50

// defaultRules is the built-in classification table, in priority order.
// First match wins.
var defaultRules = []CategoryRule{
	{
		Category: CategoryAcademic,
		Prior:    0.88,
		Patterns: []string{
			"arxiv", "pubmed", "nature.com", "science", "scholar",
			"springer", "ieee", "acm.org", "jstor", "ncbi",
			"researchgate", ".edu", ".ac.",
		},
	},
	{
		Category: CategoryGovernment,
		Prior:    0.85,
		Patterns: []string{
			".gov", ".mil", "europa.eu", "parliament", "senate",
			"whitehouse",
		},
	},
	{
		Category: CategoryCode,
		Prior:    0.80,
		Patterns: []string{
			"github", "gitlab", "stackoverflow", "stackexchange",
			"bitbucket", "sourceforge", "npmjs", "pypi",
		},
	},
	{
		Category: CategoryNews,
		Prior:    0.75,
		Patterns: []string{
			"bbc", "cnn", "nytimes", "reuters", "guardian",
			"washingtonpost", "apnews", "bloomberg", "economist",
			"ft.com", "wsj", "aljazeera", "npr",
		},
	},
	{
		Category: CategoryForum,
		Prior:    0.45,
		Patterns: []string{"reddit", "quora", "forum", "discuss", "phpbb"},
	},
	{
		Category: CategoryBlog,
		Prior:    0.50,
		Patterns: []string{
			"blog", "medium.com", "substack", "wordpress", "blogspot",
			"tumblr", "dev.to", "hashnode",
		},
	},
}

// DefaultRules returns a copy of the built-in classification table.
func DefaultRules() []CategoryRule {
	rules := make([]CategoryRule, len(defaultRules))
	for i, r := range defaultRules {
		rules[i] = CategoryRule{
			Category: r.Category,
			Prior:    r.Prior,
			Patterns: append([]string(nil), r.Patterns...),
		}
	}
	return rules
}

// LoadRulesFile reads a replacement classification table from YAML.
func LoadRulesFile(path string) ([]CategoryRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rules []CategoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	for i, r := range rules {
		if r.Category == "" || len(r.Patterns) == 0 {
			return nil, fmt.Errorf("credibility: rule %d missing category or patterns", i)
		}
		if r.Prior <= 0 || r.Prior >= 1 {
			return nil, fmt.Errorf("credibility: rule %d prior %v outside (0,1)", i, r.Prior)
		}
	}
	return rules, nil
}

// hostMatch reports whether a classification pattern matches a hostname.
func hostMatch(host, pattern string) bool {
	if strings.HasPrefix(pattern, ".") {
		return strings.Contains(host, pattern)
	}
	if strings.Contains(pattern, ".") {
		return host == pattern || strings.HasSuffix(host, "."+pattern)
	}
	return strings.Contains(host, pattern)
}
