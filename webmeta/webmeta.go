// Package webmeta turns a raw HTML document into the assessment input
// fields the credibility engine consumes: title, body text, scholarly
// metadata from citation_* meta tags, and outbound links usable as
// citation edges.
//
// It is a pure collaborator: it never fetches. Callers that already hold
// plain text skip it entirely.
package webmeta

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// maxLinks bounds outbound-link extraction on pathological pages.
const maxLinks = 256

// PageMeta is what an HTML document contributes to an assessment.
type PageMeta struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Text        string   `json:"text,omitempty"`
	DOI         string   `json:"doi,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Year        int      `json:"year,omitempty"`
	Links       []string `json:"links,omitempty"`
}

// Extractor parses HTML documents. Safe for concurrent use: the converter
// and policies are built once and only read afterwards.
type Extractor struct {
	logger   *slog.Logger
	md       *converter.Converter
	sanitize *bluemonday.Policy
	strip    *bluemonday.Policy
}

// New creates an Extractor. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		logger: logger,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		sanitize: bluemonday.UGCPolicy(),
		strip:    bluemonday.StrictPolicy(),
	}
}

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Extract parses rawHTML and returns the page metadata. baseURL anchors
// relative links; it may be empty. The only error is an unparseable
// document; partial metadata is not an error.
func (e *Extractor) Extract(rawHTML, baseURL string) (*PageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("webmeta: parse document: %w", err)
	}

	meta := &PageMeta{}
	meta.Title = firstNonEmpty(
		attrOf(doc, `meta[property="og:title"]`, "content"),
		strings.TrimSpace(doc.Find("title").First().Text()),
		strings.TrimSpace(doc.Find("h1").First().Text()),
	)
	meta.Description = firstNonEmpty(
		attrOf(doc, `meta[name="description"]`, "content"),
		attrOf(doc, `meta[property="og:description"]`, "content"),
	)
	meta.DOI = firstNonEmpty(
		attrOf(doc, `meta[name="citation_doi"]`, "content"),
		attrOf(doc, `meta[name="dc.identifier"]`, "content"),
	)

	doc.Find(`meta[name="citation_author"]`).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("content"); ok {
			if v = strings.TrimSpace(v); v != "" {
				meta.Authors = append(meta.Authors, v)
			}
		}
	})
	meta.Year = extractYear(doc)
	meta.Links = e.extractLinks(doc, baseURL)
	meta.Text = e.bodyText(rawHTML, baseURL)
	return meta, nil
}

// bodyText converts HTML to markdown so structural cues (headings, lists,
// tables) survive into the content signals. Falls back to tag stripping
// when conversion fails or produces nothing.
func (e *Extractor) bodyText(rawHTML, baseURL string) string {
	clean := e.sanitize.Sanitize(rawHTML)
	text, err := e.md.ConvertString(clean, converter.WithDomain(baseURL))
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			e.logger.Debug("webmeta: markdown conversion failed, stripping tags", "error", err)
		}
		return collapseSpace(e.strip.Sanitize(rawHTML))
	}
	return strings.TrimSpace(text)
}

func (e *Extractor) extractLinks(doc *goquery.Document, baseURL string) []string {
	base, _ := url.Parse(baseURL)
	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return true
		}
		u, err := url.Parse(href)
		if err != nil {
			return true
		}
		if base != nil {
			u = base.ResolveReference(u)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return true
		}
		u.Fragment = ""
		abs := u.String()
		if _, ok := seen[abs]; ok {
			return true
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
		return len(links) < maxLinks
	})
	return links
}

// extractYear checks scholarly and social meta tags, then <time> elements.
func extractYear(doc *goquery.Document) int {
	candidates := []string{
		attrOf(doc, `meta[name="citation_publication_date"]`, "content"),
		attrOf(doc, `meta[name="citation_date"]`, "content"),
		attrOf(doc, `meta[property="article:published_time"]`, "content"),
		attrOf(doc, `time[datetime]`, "datetime"),
	}
	for _, c := range candidates {
		if m := yearRe.FindString(c); m != "" {
			y, err := strconv.Atoi(m)
			if err == nil {
				return y
			}
		}
	}
	return 0
}

// LooksLikeHTML reports whether content is plausibly an HTML document
// rather than plain text.
func LooksLikeHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 512 {
		head = head[:512]
	}
	if strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html") {
		return true
	}
	lower := strings.ToLower(content)
	for _, tag := range []string{"</p>", "</div>", "</article>", "<body"} {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

func attrOf(doc *goquery.Document, selector, attr string) string {
	v, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
