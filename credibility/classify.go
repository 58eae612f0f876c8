package credibility

import "strings"

// classify returns the category and base prior for a hostname. Rules are
// evaluated in priority order; within a rule, any pattern match wins.
// Hosts no rule matches are unknown with a neutral prior.
func classify(host string, rules []CategoryRule) (Category, float64) {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			if hostMatch(host, pattern) {
				return rule.Category, rule.Prior
			}
		}
	}
	return CategoryUnknown, unknownPrior
}
