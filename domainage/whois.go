package domainage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// ErrUnavailable signals that no lookup capability is configured or the
// record carried no usable creation date.
var ErrUnavailable = errors.New("domainage: lookup unavailable")

// Lookup is the optional network capability consulted on cache misses.
// The resolver works correctly with it entirely absent.
type Lookup interface {
	// CreationDate returns the earliest registration date for domain.
	CreationDate(ctx context.Context, domain string) (time.Time, error)
}

// NoopLookup is the heuristic-only stand-in used when WHOIS is disabled.
type NoopLookup struct{}

func (NoopLookup) CreationDate(context.Context, string) (time.Time, error) {
	return time.Time{}, ErrUnavailable
}

// WhoisLookup queries the WHOIS registry chain.
type WhoisLookup struct {
	client *whois.Client
}

// NewWhoisLookup creates a WhoisLookup with the given per-query timeout.
func NewWhoisLookup(timeout time.Duration) *WhoisLookup {
	return &WhoisLookup{client: whois.NewClient().SetTimeout(timeout)}
}

// CreationDate implements Lookup. The query runs in a goroutine so the
// context bound holds even though the underlying client is not context-aware.
func (w *WhoisLookup) CreationDate(ctx context.Context, domain string) (time.Time, error) {
	type reply struct {
		raw string
		err error
	}
	ch := make(chan reply, 1)
	go func() {
		raw, err := w.client.Whois(domain)
		ch <- reply{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return time.Time{}, fmt.Errorf("whois query: %w", res.err)
		}
		return parseCreationDate(res.raw)
	}
}

// parseCreationDate extracts the creation date from a raw WHOIS record.
func parseCreationDate(raw string) (time.Time, error) {
	info, err := whoisparser.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("whois parse: %w", err)
	}
	if info.Domain == nil {
		return time.Time{}, ErrUnavailable
	}
	if info.Domain.CreatedDateInTime != nil {
		return *info.Domain.CreatedDateInTime, nil
	}
	// Some registries emit formats the parser does not normalize.
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006.01.02", "02-Jan-2006"} {
		if t, perr := time.Parse(layout, info.Domain.CreatedDate); perr == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnavailable
}
