// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves publication metadata (title, abstract) from
// per-site sources. Each supported site implements the Fetcher
// interface per the Strategy pattern; Dispatch selects the fetcher by
// URL prefix.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/expert-finder/pkg/types"
)

// Fetcher retrieves the metadata of one publication page.
type Fetcher interface {
	Name() string

	// Matches reports whether this fetcher handles the given URL.
	Matches(url string) bool

	// Fetch retrieves the publication metadata behind url.
	Fetch(ctx context.Context, url string, cfg types.FetchConfig) (types.Publication, error)
}

// DefaultFetchers returns the fetchers for the supported publication
// sites, sharing one HTTP client.
func DefaultFetchers(client *http.Client) []Fetcher {
	return []Fetcher{
		&ArxivFetcher{Client: client},
		&OpenReviewFetcher{Client: client},
		&NeurIPSFetcher{Client: client},
	}
}

// Dispatch selects the fetcher handling url. An unsupported site is an
// error; the caller decides whether to skip or abort.
func Dispatch(fetchers []Fetcher, url string) (Fetcher, error) {
	for _, f := range fetchers {
		if f.Matches(url) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("no fetcher for URL %q: supported sites are arxiv.org, openreview.net, proceedings.neurips.cc", url)
}

// normalizeSpace collapses all runs of whitespace (including line
// breaks) into single spaces and trims the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
