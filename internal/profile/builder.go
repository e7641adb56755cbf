// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile builds author profiles: publication metadata fetched
// per URL plus a generated narrative summary, snapshotted to the
// author_profile.json cache.
package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/expert-finder/internal/fetch"
	"github.com/pdiddy/expert-finder/internal/gen"
	"github.com/pdiddy/expert-finder/pkg/types"
)

const (
	defaultFetchDelay      = 3 * time.Second
	defaultSummaryRetries  = 10
	defaultSummaryDelay    = 1 * time.Second
	defaultInterAuthorWait = 2 * time.Second
)

// Builder assembles author profiles from the author database, the
// publication sites, and a summary-generation backend.
type Builder struct {
	Fetchers []fetch.Fetcher
	Backend  gen.Backend
	Cfg      types.ProfileConfig
	FetchCfg types.FetchConfig

	// MaxRetries and RetryDelay govern transient summary-generation
	// failures (defaults 10 and 1s). RequestDelay spaces out authors
	// (default 2s).
	MaxRetries   int
	RetryDelay   time.Duration
	RequestDelay time.Duration

	Log *zap.Logger
}

// Build returns the complete author profiles. The cache is read when
// present; authors are otherwise loaded from the database and each
// missing piece (publications, summary) is filled in, with the cache
// rewritten after every generated summary so an interrupted run
// resumes where it stopped.
func (b *Builder) Build(ctx context.Context) ([]types.AuthorProfile, error) {
	if b.Log == nil {
		b.Log = zap.NewNop()
	}

	authors, err := LoadCache(b.Cfg.CachePath)
	switch {
	case err == nil:
		b.Log.Info("loaded profile cache",
			zap.String("path", b.Cfg.CachePath),
			zap.Int("authors", len(authors)))
	case errors.Is(err, os.ErrNotExist):
		authors, err = LoadDatabase(b.Cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		b.Log.Info("loaded author database",
			zap.String("path", b.Cfg.DatabasePath),
			zap.Int("authors", len(authors)))
	default:
		return nil, err
	}

	for i := range authors {
		if len(authors[i].Publications) > 0 || len(authors[i].PublicationURLs) == 0 {
			continue
		}
		authors[i].Publications = b.fetchPublications(ctx, authors[i])
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if err := SaveCache(b.Cfg.CachePath, authors); err != nil {
		return nil, err
	}

	if err := b.summarizeAll(ctx, authors); err != nil {
		return nil, err
	}
	return authors, nil
}

// fetchPublications fetches metadata for every publication URL of one
// author. A failed URL is logged and skipped; the author keeps
// whatever publications resolved. This is deliberately lenient: one
// dead link should not cost an author their profile.
func (b *Builder) fetchPublications(ctx context.Context, author types.AuthorProfile) []types.Publication {
	delay := b.FetchCfg.RequestDelay
	if delay <= 0 {
		delay = defaultFetchDelay
	}

	var pubs []types.Publication
	for i, url := range author.PublicationURLs {
		if i > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				return pubs
			}
		}

		fetcher, err := fetch.Dispatch(b.Fetchers, url)
		if err != nil {
			b.Log.Warn("skipping publication URL",
				zap.String("author", author.Name),
				zap.String("url", url),
				zap.Error(err))
			continue
		}
		pub, err := fetcher.Fetch(ctx, url, b.FetchCfg)
		if err != nil {
			b.Log.Warn("fetch failed, skipping publication",
				zap.String("author", author.Name),
				zap.String("url", url),
				zap.String("fetcher", fetcher.Name()),
				zap.Error(err))
			continue
		}
		pubs = append(pubs, pub)
	}
	return pubs
}

// summarizeAll generates the narrative summary for every author that
// does not have one yet, rewriting the cache after each success.
func (b *Builder) summarizeAll(ctx context.Context, authors []types.AuthorProfile) error {
	for i := range authors {
		if authors[i].HasSummary() {
			continue
		}
		if len(authors[i].Publications) == 0 {
			b.Log.Warn("author has no publications to summarize",
				zap.String("author", authors[i].Name))
			continue
		}

		summary, err := b.generateSummary(ctx, authors[i])
		if err != nil {
			return fmt.Errorf("summarizing author %q: %w", authors[i].Name, err)
		}
		authors[i].Summary = summary
		if err := SaveCache(b.Cfg.CachePath, authors); err != nil {
			return err
		}
		b.Log.Info("generated author summary",
			zap.String("author", authors[i].Name))

		wait := b.RequestDelay
		if wait <= 0 {
			wait = defaultInterAuthorWait
		}
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
	return nil
}

// generateSummary calls the backend with retry for transient failures.
// Validation failures propagate immediately.
func (b *Builder) generateSummary(ctx context.Context, author types.AuthorProfile) (string, error) {
	pubs := TruncatePublications(author.Publications, b.Cfg.MaxPublicationTokens)
	system, user := summaryPrompts(author.Name, pubs, b.Cfg.SummaryWordLimit)

	maxAttempts := b.MaxRetries
	if maxAttempts <= 0 {
		maxAttempts = defaultSummaryRetries
	}
	retryDelay := b.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultSummaryDelay
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		summary, err := b.Backend.Generate(ctx, system, user)
		if err == nil {
			return summary, nil
		}
		if gen.IsValidation(err) {
			return "", err
		}
		lastErr = err
		b.Log.Warn("summary generation attempt failed",
			zap.String("author", author.Name),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < maxAttempts {
			if serr := sleepCtx(ctx, retryDelay); serr != nil {
				return "", serr
			}
		}
	}
	return "", fmt.Errorf("retry budget exhausted after %d attempts: %w", maxAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
