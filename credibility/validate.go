package credibility

import "fmt"

const (
	maxURLLen        = 4096
	maxTitleLen      = 2048
	maxContentLen    = 1 << 20 // 1 MiB
	maxCitationLinks = 256
)

// validateInput checks the parts of an input that must refuse service.
// Oversized title/content are truncated later, not rejected; a bad URL or
// an out-of-range outcome yields no result at all.
func validateInput(in *Input) error {
	if in == nil || in.URL == "" {
		return ErrMissingURL
	}
	if len(in.URL) > maxURLLen {
		return fmt.Errorf("%w: exceeds %d bytes", ErrInvalidURL, maxURLLen)
	}
	if in.Outcome != nil && (*in.Outcome < 0 || *in.Outcome > 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidOutcome, *in.Outcome)
	}
	return nil
}

// truncate caps s at n bytes.
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// capLinks bounds a citation-link list.
func capLinks(links []string) []string {
	if len(links) > maxCitationLinks {
		return links[:maxCitationLinks]
	}
	return links
}
