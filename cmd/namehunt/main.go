// Command namehunt searches the web for a person's online presence.
//
// Usage:
//
//	namehunt "John Smith"
//	namehunt -json "John Smith" "acme, boston"
//	namehunt                      # prompts interactively
//
// The first argument is the person's name; the optional second argument
// is a comma-separated list of context keywords (employer, city, school)
// used to boost matching results. Google Custom Search credentials are
// read from GOOGLE_API_KEY and GOOGLE_CSE_ID when set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"

	"github.com/codeGROOVE-dev/namehunt/pkg/config"
	"github.com/codeGROOVE-dev/namehunt/pkg/httpcache"
	"github.com/codeGROOVE-dev/namehunt/pkg/namehunt"
	"github.com/codeGROOVE-dev/namehunt/pkg/present"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	verbose := flag.Bool("v", false, "verbose logging (same as -debug)")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching (enabled by default with 7-day TTL)")
	cacheTTL := flag.Duration("cache-ttl", 7*24*time.Hour, "cache time-to-live (use 1h for fresher results)")
	jsonOut := flag.Bool("json", false, "output results as JSON")
	plain := flag.Bool("plain", false, "plain text output without colors")
	maxResults := flag.Int("max", 0, "maximum number of results (0 = config default)")
	configPath := flag.String("config", "", "path to config file (default: ~/.config/namehunt/config.yaml)")
	flag.Parse()

	if flag.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "Usage: namehunt [options] [name] [context keywords]")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nExamples:")
		fmt.Fprintln(os.Stderr, `  namehunt "John Smith"`)
		fmt.Fprintln(os.Stderr, `  namehunt "John Smith" "acme, boston"`)
		fmt.Fprintln(os.Stderr, `  namehunt -json "Jane Doe" > results.json`)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debug || *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := flag.Arg(0)
	extra := flag.Arg(1)
	if name == "" {
		name = promptLine("Name to search for: ")
		if strings.TrimSpace(name) == "" {
			fmt.Fprintln(os.Stderr, "Error: a name is required")
			os.Exit(1)
		}
		extra = promptLine("Context keywords, comma separated (optional): ")
	}

	var httpCache *httpcache.Cache
	if !*noCache && cfg.Cache.Enabled {
		ttl := *cacheTTL
		if cfg.Cache.TTLHours > 0 && ttl == 7*24*time.Hour {
			ttl = time.Duration(cfg.Cache.TTLHours) * time.Hour
		}
		if cfg.Cache.Dir != "" {
			httpCache, err = httpcache.NewWithPath(ttl, cfg.Cache.Dir)
		} else {
			httpCache, err = httpcache.New(ttl)
		}
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
			httpCache = nil
		} else {
			defer func() {
				if err := httpCache.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
			logger.Debug("HTTP cache initialized", "ttl", ttl.String())
		}
	}

	opts := []namehunt.Option{
		namehunt.WithLogger(logger),
		namehunt.WithConfig(cfg),
	}
	if httpCache != nil {
		opts = append(opts, namehunt.WithHTTPCache(httpCache))
	}
	if *maxResults > 0 {
		opts = append(opts, namehunt.WithMaxResults(*maxResults))
	}

	ctx := context.Background()

	results, err := namehunt.Search(ctx, name, extra, opts...)
	if err != nil {
		if errors.Is(err, namehunt.ErrEmptyName) {
			fmt.Fprintln(os.Stderr, "Error: a name is required")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}

	if httpCache != nil {
		stats := httpcache.CacheStats()
		logger.Debug("cache stats", "hits", stats.Hits, "misses", stats.Misses)
	}

	mode := present.ModeStyled
	switch {
	case *jsonOut:
		mode = present.ModeJSON
	case *plain:
		mode = present.ModePlain
	}
	if err := present.New(os.Stdout, mode).Render(results); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}

// promptLine reads one line of interactive input. Falls back to empty on
// a closed terminal.
func promptLine(label string) string {
	return strings.TrimSpace(prompt.Input(label, noComplete))
}

func noComplete(prompt.Document) []prompt.Suggest { return nil }
