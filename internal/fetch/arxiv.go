// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/pdiddy/expert-finder/internal/httputil"
	"github.com/pdiddy/expert-finder/pkg/types"
)

// arxivAPIBase is the arXiv metadata endpoint. Declared as a var so
// tests can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// arxivIDPattern extracts the paper ID from an abstract-page URL such
// as https://arxiv.org/abs/1706.03762.
var arxivIDPattern = regexp.MustCompile(`arxiv\.org/abs/([\w.-]+)`)

// ArxivFetcher resolves arXiv abstract URLs through the arXiv Atom API
// rather than scraping the HTML page.
type ArxivFetcher struct {
	Client *http.Client
}

// Name returns the fetcher identifier.
func (f *ArxivFetcher) Name() string { return "arxiv" }

// Matches reports whether url is an arXiv abstract page.
func (f *ArxivFetcher) Matches(url string) bool {
	return strings.HasPrefix(url, "https://arxiv.org") || strings.HasPrefix(url, "http://arxiv.org")
}

// Fetch looks up the paper through the arXiv API by ID.
func (f *ArxivFetcher) Fetch(ctx context.Context, url string, cfg types.FetchConfig) (types.Publication, error) {
	m := arxivIDPattern.FindStringSubmatch(url)
	if m == nil {
		return types.Publication{}, fmt.Errorf("cannot extract arXiv ID from %q", url)
	}
	arxivID := m[1]

	reqURL := fmt.Sprintf("%s?id_list=%s", arxivAPIBase, arxivID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.Publication{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, f.Client, req, 0)
	if err != nil {
		return types.Publication{}, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Publication{}, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return types.Publication{}, fmt.Errorf("parsing arXiv response: %w", err)
	}
	if len(feed.Entries) == 0 {
		return types.Publication{}, fmt.Errorf("arXiv API returned no entry for %s", arxivID)
	}

	entry := feed.Entries[0]
	return types.Publication{
		Title:     normalizeSpace(entry.Title),
		Abstract:  normalizeSpace(entry.Summary),
		SourceURL: url,
	}, nil
}

// arXiv Atom feed structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID      string `xml:"id"`
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
}
