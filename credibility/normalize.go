package credibility

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// trackingParams are stripped during normalization alongside utm_* keys.
var trackingParams = map[string]bool{
	"fbclid":  true,
	"gclid":   true,
	"msclkid": true,
	"ref":     true,
}

// NormalizeURL canonicalizes a source URL: lowercases scheme and host,
// removes the fragment and tracking parameters, sorts remaining query
// params, strips the trailing slash. A scheme-less input that looks like
// a hostname is assumed https. Non-http(s) schemes and host-less URLs are
// rejected.
func NormalizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingURL
	}
	if !strings.Contains(raw, "://") {
		if strings.Contains(raw, " ") || !strings.Contains(raw, ".") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
		}
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	u.Scheme = scheme
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")

	if u.RawQuery != "" {
		params := u.Query()
		keys := make([]string, 0, len(params))
		for k := range params {
			if trackingParams[k] || strings.HasPrefix(k, "utm_") {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf strings.Builder
		for i, k := range keys {
			vals := params[k]
			sort.Strings(vals)
			for j, v := range vals {
				if i > 0 || j > 0 {
					buf.WriteByte('&')
				}
				buf.WriteString(url.QueryEscape(k))
				buf.WriteByte('=')
				buf.WriteString(url.QueryEscape(v))
			}
		}
		u.RawQuery = buf.String()
	}

	return u, nil
}

// RegistrableDomain reduces a hostname to its registrable domain (eTLD+1).
// IP literals and hosts the public suffix list cannot split are returned
// unchanged (lowercased, www-stripped).
func RegistrableDomain(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return host
	}
	if ip := net.ParseIP(host); ip != nil {
		return host
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// citationDomain extracts the registrable domain from a citation link.
// Bare hostnames are accepted. Returns false for links that cannot name a
// graph node; such edges are dropped.
func citationDomain(raw string) (string, bool) {
	u, err := NormalizeURL(raw)
	if err != nil {
		return "", false
	}
	domain := RegistrableDomain(u.Hostname())
	return domain, domain != ""
}
