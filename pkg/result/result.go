// Package result defines the common types shared by search backends and the scoring pipeline.
package result

import (
	"context"
	"errors"
	"strings"
)

// Common errors returned by search backends.
var (
	ErrRateLimited = errors.New("rate limited")
	ErrNoResults   = errors.New("no results")
)

// Source identifies which search backend produced a result.
type Source string

// Known search backends.
const (
	SourceGoogleCSE  Source = "googlecse"
	SourceDuckDuckGo Source = "duckduckgo"
)

// Platform identifies the social platform a result points at.
type Platform string

// Platforms targeted by query building and username extraction.
const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformGeneric   Platform = "generic"
)

// PlatformForURL returns the platform a link belongs to, or PlatformGeneric.
func PlatformForURL(link string) Platform {
	l := strings.ToLower(link)
	switch {
	case strings.Contains(l, "linkedin.com"):
		return PlatformLinkedIn
	case strings.Contains(l, "facebook.com"), strings.Contains(l, "fb.com"):
		return PlatformFacebook
	case strings.Contains(l, "instagram.com"):
		return PlatformInstagram
	default:
		return PlatformGeneric
	}
}

// Result represents a single search hit from a backend.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Result struct {
	Title   string  `json:"title"`
	Link    string  `json:"link"`
	Snippet string  `json:"snippet,omitempty"`
	Source  Source  `json:"source"`
	Score   float64 `json:"score"`

	// Filled in by the scorer.
	Platform Platform `json:"platform,omitempty"`
	Username string   `json:"username,omitempty"`
}

// Searcher is the contract every search backend implements.
type Searcher interface {
	// Search runs a single query and returns raw, unscored results.
	Search(ctx context.Context, query string) ([]Result, error)
	// Name returns the backend name for logging.
	Name() string
}
