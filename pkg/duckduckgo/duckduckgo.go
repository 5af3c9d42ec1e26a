// Package duckduckgo searches the web by scraping the DuckDuckGo HTML SERP.
// No API key is required.
package duckduckgo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/codeGROOVE-dev/namehunt/pkg/httpcache"
	"github.com/codeGROOVE-dev/namehunt/pkg/result"
)

const (
	name     = "duckduckgo"
	endpoint = "https://html.duckduckgo.com/html/"
)

// Client scrapes the DuckDuckGo HTML results page.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache  httpcache.Cacher
	logger *slog.Logger
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New creates a DuckDuckGo client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cfg.cache,
		logger:     cfg.logger,
	}, nil
}

// Name returns the backend name.
func (*Client) Name() string { return name }

// Search runs a single query against the HTML SERP.
// DuckDuckGo answers bot-suspect traffic with 202 or 403; both are
// reported as result.ErrRateLimited.
func (c *Client) Search(ctx context.Context, query string) ([]result.Result, error) {
	searchURL := endpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	setHeaders(req)

	c.logger.DebugContext(ctx, "duckduckgo search", "query", query)

	body, err := httpcache.FetchURLWithValidator(ctx, c.cache, c.httpClient, req, c.logger, cacheable)
	if err != nil {
		var httpErr *httpcache.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusAccepted, http.StatusForbidden, http.StatusTooManyRequests:
				return nil, fmt.Errorf("duckduckgo: %w", result.ErrRateLimited)
			}
		}
		return nil, fmt.Errorf("duckduckgo request failed: %w", err)
	}

	if isChallenge(body) {
		return nil, fmt.Errorf("duckduckgo challenge page: %w", result.ErrRateLimited)
	}

	return parseSERP(body)
}

func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// cacheable rejects challenge pages so they never poison the cache.
func cacheable(body []byte) bool {
	return !isChallenge(body)
}

func isChallenge(body []byte) bool {
	return bytes.Contains(body, []byte("anomaly-modal"))
}

func parseSERP(body []byte) ([]result.Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing SERP: %w", err)
	}

	var results []result.Result
	doc.Find(".result").Each(func(_ int, s *goquery.Selection) {
		titleEl := s.Find("a.result__a")
		title := strings.TrimSpace(titleEl.Text())
		if title == "" {
			return
		}

		href, ok := titleEl.Attr("href")
		if !ok {
			return
		}
		link := unwrapRedirect(href)
		if !validURL(link) {
			return
		}

		results = append(results, result.Result{
			Title:   title,
			Link:    link,
			Snippet: strings.TrimSpace(s.Find(".result__snippet").Text()),
			Source:  result.SourceDuckDuckGo,
		})
	})

	return results, nil
}

// unwrapRedirect extracts the destination from DuckDuckGo's /l/?uddg=
// redirect links. Non-redirect links pass through unchanged.
func unwrapRedirect(href string) string {
	if !strings.Contains(href, "duckduckgo.com/l/") && !strings.HasPrefix(href, "/l/") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if dest := u.Query().Get("uddg"); dest != "" {
		return dest
	}
	return href
}

func validURL(link string) bool {
	u, err := url.Parse(link)
	return err == nil && u.Scheme != "" && u.Host != ""
}
