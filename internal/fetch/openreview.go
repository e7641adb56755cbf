// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/expert-finder/internal/httputil"
	"github.com/pdiddy/expert-finder/pkg/types"
)

// OpenReviewFetcher extracts metadata from the citation_title and
// citation_abstract meta tags of an OpenReview forum page.
type OpenReviewFetcher struct {
	Client *http.Client
}

// Name returns the fetcher identifier.
func (f *OpenReviewFetcher) Name() string { return "openreview" }

// Matches reports whether url is an OpenReview page.
func (f *OpenReviewFetcher) Matches(url string) bool {
	return strings.HasPrefix(url, "https://openreview.net")
}

// Fetch downloads the page and reads the citation meta tags.
func (f *OpenReviewFetcher) Fetch(ctx context.Context, url string, cfg types.FetchConfig) (types.Publication, error) {
	doc, err := fetchHTML(ctx, f.Client, url, cfg)
	if err != nil {
		return types.Publication{}, err
	}

	title := metaContent(doc, "citation_title")
	abstract := metaContent(doc, "citation_abstract")
	if title == "" {
		return types.Publication{}, fmt.Errorf("no citation_title meta tag on %s", url)
	}

	return types.Publication{
		Title:     normalizeSpace(title),
		Abstract:  normalizeSpace(abstract),
		SourceURL: url,
	}, nil
}

// fetchHTML downloads and parses an HTML page shared by the
// scraping-style fetchers.
func fetchHTML(ctx context.Context, client *http.Client, url string, cfg types.FetchConfig) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", url, err)
	}
	return doc, nil
}

// metaContent returns the content attribute of <meta name=...>.
func metaContent(doc *html.Node, name string) string {
	var content string
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "meta" {
			return true
		}
		if attr(n, "name") != name {
			return true
		}
		content = attr(n, "content")
		return false
	})
	return content
}

// walk visits nodes depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates the text below n, space-separated.
func textContent(n *html.Node) string {
	var parts []string
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			if t := strings.TrimSpace(c.Data); t != "" {
				parts = append(parts, t)
			}
		}
		return true
	})
	return strings.Join(parts, " ")
}
