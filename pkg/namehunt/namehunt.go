// Package namehunt provides a unified API for finding a person's online
// presence by name.
//
// Basic usage:
//
//	results, err := namehunt.Search(ctx, "John Smith", "acme, boston")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    fmt.Println(r.Score, r.Link)
//	}
//
// The search fans targeted queries out to Google Custom Search and
// DuckDuckGo, scores every hit against variations of the name, merges
// duplicate profiles and returns the list ranked by relevance.
package namehunt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/codeGROOVE-dev/namehunt/pkg/config"
	"github.com/codeGROOVE-dev/namehunt/pkg/duckduckgo"
	"github.com/codeGROOVE-dev/namehunt/pkg/googlecse"
	"github.com/codeGROOVE-dev/namehunt/pkg/httpcache"
	"github.com/codeGROOVE-dev/namehunt/pkg/nameparse"
	"github.com/codeGROOVE-dev/namehunt/pkg/query"
	"github.com/codeGROOVE-dev/namehunt/pkg/result"
	"github.com/codeGROOVE-dev/namehunt/pkg/score"
)

type (
	// Result re-exports result.Result for convenience.
	Result = result.Result
	// HTTPCache re-exports httpcache.Cache for convenience.
	HTTPCache = httpcache.Cache
)

// Re-export common errors.
var (
	ErrRateLimited = result.ErrRateLimited
	ErrNoResults   = result.ErrNoResults
)

// ErrEmptyName is returned when the name has no usable content.
var ErrEmptyName = errors.New("name is empty")

// Option configures a Search call.
type Option func(*searchConfig)

type searchConfig struct {
	cache      httpcache.Cacher
	logger     *slog.Logger
	cfg        *config.Config
	searchers  []result.Searcher
	apiKey     string
	cseID      string
	maxResults int
}

// WithHTTPCache sets the HTTP cache for responses.
func WithHTTPCache(cache httpcache.Cacher) Option {
	return func(c *searchConfig) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *searchConfig) { c.logger = logger }
}

// WithConfig supplies a full configuration, typically loaded from the
// YAML config file.
func WithConfig(cfg *config.Config) Option {
	return func(c *searchConfig) { c.cfg = cfg }
}

// WithGoogleCredentials sets explicit Custom Search API credentials.
func WithGoogleCredentials(apiKey, cseID string) Option {
	return func(c *searchConfig) {
		c.apiKey = apiKey
		c.cseID = cseID
	}
}

// WithMaxResults caps the number of ranked results returned.
func WithMaxResults(limit int) Option {
	return func(c *searchConfig) { c.maxResults = limit }
}

// WithSearchers replaces the default backends. Mainly useful for tests.
func WithSearchers(searchers ...result.Searcher) Option {
	return func(c *searchConfig) { c.searchers = searchers }
}

// Search finds online profiles and mentions for a person. The extra
// argument is a comma-separated list of context keywords (employer, city,
// school) that boost matching results.
//
// Backend failures are tolerated: if one engine errors or rate-limits,
// results from the other are still returned. Search only errors on bad
// input or backend construction failure.
func Search(ctx context.Context, name, extra string, opts ...Option) ([]result.Result, error) {
	cfg := &searchConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cfg == nil {
		cfg.cfg = config.Default()
	}
	if cfg.maxResults == 0 {
		cfg.maxResults = cfg.cfg.Search.MaxResults
	}

	parsed := nameparse.Parse(name)
	if parsed.IsZero() {
		return nil, ErrEmptyName
	}

	logger := cfg.logger.With("run_id", uuid.NewString())
	logger.InfoContext(ctx, "starting search",
		"name", parsed.Full, "first", parsed.First, "last", parsed.Last)

	queries := query.Build(parsed, query.ParseContext(extra))
	if len(queries) == 0 {
		return nil, ErrEmptyName
	}

	searchers := cfg.searchers
	if searchers == nil {
		var err error
		searchers, err = buildSearchers(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	raw := runQueries(ctx, searchers, queries, logger)

	scorer := score.New(cfg.cfg.Score, logger)
	ranked := scorer.Rank(raw, parsed, query.ParseContext(extra).Terms)

	if cfg.maxResults > 0 && len(ranked) > cfg.maxResults {
		ranked = ranked[:cfg.maxResults]
	}

	logger.InfoContext(ctx, "search complete",
		"raw_results", len(raw), "ranked_results", len(ranked))
	return ranked, nil
}

// buildSearchers constructs the enabled backends.
func buildSearchers(ctx context.Context, cfg *searchConfig, logger *slog.Logger) ([]result.Searcher, error) {
	var searchers []result.Searcher

	if cfg.cfg.Search.EnableGoogle {
		gopts := []googlecse.Option{
			googlecse.WithLogger(logger),
		}
		if cfg.cache != nil {
			gopts = append(gopts, googlecse.WithHTTPCache(cfg.cache))
		}
		apiKey, cseID := cfg.apiKey, cfg.cseID
		if apiKey == "" {
			apiKey, cseID = cfg.cfg.Google.APIKey, cfg.cfg.Google.CSEID
		}
		if apiKey != "" {
			gopts = append(gopts, googlecse.WithCredentials(apiKey, cseID))
		}
		g, err := googlecse.New(ctx, gopts...)
		if err != nil {
			return nil, fmt.Errorf("create google backend: %w", err)
		}
		searchers = append(searchers, g)
	}

	if cfg.cfg.Search.EnableDuckDuckGo {
		dopts := []duckduckgo.Option{
			duckduckgo.WithLogger(logger),
		}
		if cfg.cache != nil {
			dopts = append(dopts, duckduckgo.WithHTTPCache(cfg.cache))
		}
		d, err := duckduckgo.New(ctx, dopts...)
		if err != nil {
			return nil, fmt.Errorf("create duckduckgo backend: %w", err)
		}
		searchers = append(searchers, d)
	}

	return searchers, nil
}

// runQueries executes every query against every backend sequentially,
// preserving discovery order. A backend that reports rate limiting is
// skipped for the remaining queries.
func runQueries(ctx context.Context, searchers []result.Searcher, queries []query.Query, logger *slog.Logger) []result.Result {
	limited := make(map[string]bool, len(searchers))

	var raw []result.Result
	for _, q := range queries {
		for _, s := range searchers {
			if limited[s.Name()] {
				continue
			}
			if err := ctx.Err(); err != nil {
				logger.WarnContext(ctx, "search canceled", "error", err)
				return raw
			}

			found, err := s.Search(ctx, q.String)
			switch {
			case errors.Is(err, result.ErrRateLimited):
				logger.WarnContext(ctx, "backend rate limited, skipping remaining queries",
					"backend", s.Name(), "query", q.String)
				limited[s.Name()] = true
				continue
			case errors.Is(err, result.ErrNoResults):
				logger.Debug("no results", "backend", s.Name(), "query", q.String)
				continue
			case err != nil:
				logger.WarnContext(ctx, "backend query failed",
					"backend", s.Name(), "query", q.String, "error", err)
				continue
			}

			logger.Debug("query results",
				"backend", s.Name(), "query", q.String, "count", len(found))
			raw = append(raw, found...)
		}
	}
	return raw
}
