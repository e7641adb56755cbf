// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/expert-finder/pkg/types"
)

// NeurIPSFetcher extracts metadata from a proceedings.neurips.cc paper
// page: the first h4 inside the main content container is the title,
// and the paragraph following the "Abstract" heading is the abstract.
type NeurIPSFetcher struct {
	Client *http.Client
}

// Name returns the fetcher identifier.
func (f *NeurIPSFetcher) Name() string { return "neurips" }

// Matches reports whether url is a NeurIPS proceedings page.
func (f *NeurIPSFetcher) Matches(url string) bool {
	return strings.HasPrefix(url, "https://proceedings.neurips.cc")
}

// Fetch downloads the page and walks the content container.
func (f *NeurIPSFetcher) Fetch(ctx context.Context, url string, cfg types.FetchConfig) (types.Publication, error) {
	doc, err := fetchHTML(ctx, f.Client, url, cfg)
	if err != nil {
		return types.Publication{}, err
	}

	container := findByClass(doc, "div", "col p-3")
	if container == nil {
		return types.Publication{}, fmt.Errorf("no content container on %s", url)
	}

	var title, abstract string
	var abstractHeadingSeen bool
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "h4":
			text := normalizeSpace(textContent(c))
			if title == "" {
				title = text
			}
			if text == "Abstract" {
				abstractHeadingSeen = true
			}
		case "p":
			if abstractHeadingSeen && abstract == "" {
				abstract = normalizeSpace(textContent(c))
			}
		}
	}

	if title == "" {
		return types.Publication{}, fmt.Errorf("no title heading on %s", url)
	}

	return types.Publication{
		Title:     title,
		Abstract:  abstract,
		SourceURL: url,
	}, nil
}

// findByClass returns the first element with the given tag and exact
// class attribute value.
func findByClass(doc *html.Node, tag, class string) *html.Node {
	var found *html.Node
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag && attr(n, "class") == class {
			found = n
			return false
		}
		return true
	})
	return found
}
