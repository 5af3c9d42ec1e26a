// Package score assigns relevance scores to raw search results and merges
// duplicates into a single ranked list. This is the core of the pipeline:
// results from different backends are matched against the parsed name by
// extracting candidate usernames from profile URLs and fuzzy-comparing them
// to generated name variations.
package score

import (
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/codeGROOVE-dev/namehunt/pkg/nameparse"
	"github.com/codeGROOVE-dev/namehunt/pkg/result"
)

// Params holds the tunable scoring knobs.
type Params struct {
	// Minimum fuzzy ratio for a username to count as a name match.
	UsernameThreshold float64 `yaml:"username_threshold"`
	// Minimum fuzzy ratio for title/snippet text to count as a name match.
	TextThreshold float64 `yaml:"text_threshold"`
	// Score contribution of a username match, scaled by the match ratio.
	UsernameWeight float64 `yaml:"username_weight"`
	// Score contribution of a text-only match, scaled by the match ratio.
	TextWeight float64 `yaml:"text_weight"`
	// Additive bonus per context keyword found in title/snippet.
	KeywordBonus float64 `yaml:"keyword_bonus"`
	// Per-platform multipliers applied to the base score.
	PlatformWeights map[result.Platform]float64 `yaml:"platform_weights"`
}

// DefaultParams returns the default scoring parameters.
func DefaultParams() Params {
	return Params{
		UsernameThreshold: 0.8,
		TextThreshold:     0.7,
		UsernameWeight:    3.0,
		TextWeight:        1.0,
		KeywordBonus:      1.0,
		PlatformWeights: map[result.Platform]float64{
			result.PlatformLinkedIn:  1.5,
			result.PlatformFacebook:  1.0,
			result.PlatformInstagram: 0.8,
			result.PlatformGeneric:   0.5,
		},
	}
}

// Scorer scores and deduplicates search results.
type Scorer struct {
	params Params
	logger *slog.Logger
}

// New creates a Scorer. A zero-value Params falls back to defaults.
func New(params Params, logger *slog.Logger) *Scorer {
	if params.UsernameWeight == 0 && params.TextWeight == 0 {
		params = DefaultParams()
	}
	if len(params.PlatformWeights) == 0 {
		params.PlatformWeights = DefaultParams().PlatformWeights
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{params: params, logger: logger}
}

// Rank scores every result against the name, merges duplicates, and returns
// the list sorted by descending score with discovery order breaking ties.
// Results that score zero are dropped.
func (s *Scorer) Rank(results []result.Result, name nameparse.Name, extra []string) []result.Result {
	variations := name.Variations()

	scored := make([]result.Result, 0, len(results))
	for _, r := range results {
		r.Platform, r.Username = ExtractUsername(r.Link)
		if r.Platform == "" {
			// Malformed URL: keep the result, score on text alone.
			s.logger.Warn("unparsable result link", "link", r.Link, "source", r.Source)
			r.Platform = result.PlatformGeneric
		}
		r.Score = s.score(r, variations, extra)
		if r.Score > 0 {
			scored = append(scored, r)
		}
	}

	merged := Merge(scored)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	return merged
}

// score computes the relevance score for one result.
func (s *Scorer) score(r result.Result, variations, extra []string) float64 {
	var base float64

	if r.Username != "" {
		if ratio := bestMatch(r.Username, variations); ratio >= s.params.UsernameThreshold {
			base = s.params.UsernameWeight * ratio
		}
	}

	text := strings.ToLower(r.Title + " " + r.Snippet)
	if base == 0 {
		if ratio := textMatch(text, variations); ratio >= s.params.TextThreshold {
			base = s.params.TextWeight * ratio
		}
	}

	if base == 0 {
		return 0
	}

	weight, ok := s.params.PlatformWeights[r.Platform]
	if !ok {
		weight = s.params.PlatformWeights[result.PlatformGeneric]
	}
	score := base * weight

	for _, kw := range extra {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(text, kw) {
			score += s.params.KeywordBonus
		}
	}

	return score
}

// Merge collapses duplicate results. Two results are duplicates when they
// share a (platform, username) pair case-insensitively, or the same
// normalized link when no username was extracted. The higher-scored entry
// wins; on equal scores the earlier one is kept. Output preserves first
// discovery order.
func Merge(results []result.Result) []result.Result {
	type slot struct {
		idx int
		r   result.Result
	}
	byKey := make(map[string]slot)
	order := make([]string, 0, len(results))

	for _, r := range results {
		var key string
		if r.Username != "" {
			key = string(r.Platform) + "|" + strings.ToLower(r.Username)
		} else {
			key = "link|" + normalizeLink(r.Link)
		}

		existing, ok := byKey[key]
		if !ok {
			byKey[key] = slot{idx: len(order), r: r}
			order = append(order, key)
			continue
		}
		if r.Score > existing.r.Score {
			byKey[key] = slot{idx: existing.idx, r: r}
		}
	}

	merged := make([]result.Result, 0, len(order))
	for _, key := range order {
		merged = append(merged, byKey[key].r)
	}
	return merged
}

func normalizeLink(link string) string {
	link = strings.ToLower(link)
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	link = strings.TrimPrefix(link, "www.")
	return strings.TrimSuffix(link, "/")
}

// linkedinIDSuffix matches the disambiguation hash LinkedIn appends to
// public slugs, e.g. "john-smith-a1b2c3". The hash always contains a
// digit, which keeps hyphenated names intact.
var linkedinIDSuffix = regexp.MustCompile(`-[0-9a-z]*[0-9][0-9a-z]*$`)

// Path segments that are never usernames.
var skipSegments = map[string]bool{
	"profile": true, "people": true, "pages": true, "public": true,
	"p": true, "reel": true, "reels": true, "stories": true, "tv": true,
	"home": true, "watch": true, "marketplace": true, "events": true,
	"groups": true, "photos": true, "posts": true, "in": true, "pub": true,
	"about": true, "search": true, "login": true, "signup": true,
}

// facebookSkipWords are path heads on facebook.com that are site features,
// not profiles.
var facebookSkipWords = map[string]bool{
	"profile": true, "people": true, "pages": true, "public": true,
	"home": true, "watch": true, "marketplace": true,
}

// ExtractUsername extracts a candidate username from a profile URL using
// platform-specific path rules. It returns the detected platform and the
// username, either of which may be empty. A link that does not parse at
// all yields ("", "").
func ExtractUsername(link string) (result.Platform, string) {
	u, err := url.Parse(strings.ToLower(link))
	if err != nil || u.Host == "" {
		return "", ""
	}

	platform := result.PlatformForURL(link)
	path := strings.Trim(u.Path, "/")
	segments := splitPath(path)

	switch platform {
	case result.PlatformLinkedIn:
		return platform, linkedinUsername(segments)
	case result.PlatformFacebook:
		return platform, facebookUsername(path, segments)
	case result.PlatformInstagram:
		return platform, instagramUsername(segments)
	default:
		return platform, genericUsername(segments)
	}
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func linkedinUsername(segments []string) string {
	// linkedin.com/in/<slug> and linkedin.com/pub/<slug>; a bare slug at
	// the path root is accepted as a fallback.
	var slug string
	for i, seg := range segments {
		if (seg == "in" || seg == "pub") && i+1 < len(segments) {
			slug = segments[i+1]
			break
		}
	}
	if slug == "" && len(segments) == 1 && !skipSegments[segments[0]] {
		slug = segments[0]
	}
	if slug == "" {
		return ""
	}

	// Strip the trailing disambiguation id if removing it leaves a name.
	if stripped := linkedinIDSuffix.ReplaceAllString(slug, ""); len(stripped) > 1 {
		slug = stripped
	}
	if len(slug) < 2 {
		return ""
	}
	return slug
}

func facebookUsername(path string, segments []string) string {
	for _, feature := range []string{"photos/", "events/", "groups/", "posts/"} {
		if strings.Contains(path+"/", feature) {
			return ""
		}
	}
	if len(segments) == 0 {
		return ""
	}

	candidate := segments[0]
	if candidate == "people" || candidate == "pages" || candidate == "public" {
		if len(segments) < 2 {
			return ""
		}
		candidate = segments[1]
	}
	if facebookSkipWords[candidate] || isNumeric(candidate) || len(candidate) < 2 {
		return ""
	}
	return candidate
}

func instagramUsername(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	first := segments[0]
	if skipSegments[first] || isNumeric(first) || len(first) < 2 {
		return ""
	}
	return first
}

func genericUsername(segments []string) string {
	// Last path segment that looks like a handle: alphabetic content,
	// not a known site feature, not an id.
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		seg = strings.TrimPrefix(seg, "@")
		if len(seg) < 2 || isNumeric(seg) || skipSegments[seg] {
			continue
		}
		if hasLetter(seg) {
			return seg
		}
	}
	return ""
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func hasLetter(s string) bool {
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

// bestMatch returns the highest fuzzy ratio between text and any candidate.
func bestMatch(text string, candidates []string) float64 {
	text = normalizeHandle(text)
	if text == "" {
		return 0
	}

	var best float64
	for _, c := range candidates {
		if r := fuzzyRatio(text, normalizeHandle(c)); r > best {
			best = r
			if best == 1.0 {
				break
			}
		}
	}
	return best
}

// textMatch looks for name variations inside free text (title + snippet).
// Containment of a variation counts as a full match; otherwise individual
// words are fuzzy-compared against the variations.
func textMatch(text string, candidates []string) float64 {
	collapsed := normalizeHandle(text)
	if collapsed == "" {
		return 0
	}

	var best float64
	for _, c := range candidates {
		nc := normalizeHandle(c)
		if len(nc) < 4 {
			// Short variations (initials) match everywhere; containment
			// on them is meaningless.
			continue
		}
		if strings.Contains(collapsed, nc) {
			return 1.0
		}
	}

	for _, word := range strings.Fields(text) {
		w := normalizeHandle(word)
		if len(w) < 3 {
			continue
		}
		for _, c := range candidates {
			if r := fuzzyRatio(w, normalizeHandle(c)); r > best {
				best = r
			}
		}
	}
	return best
}

// normalizeHandle lowercases and strips separator characters so that
// "John.Smith", "john_smith" and "johnsmith" compare equal.
func normalizeHandle(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', '_', ' ', ',', '"', '\'', '(', ')', '|', '@':
			return -1
		}
		return r
	}, s)
}

// fuzzyRatio is a normalized Levenshtein similarity in [0, 1].
func fuzzyRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	longest := max(len(a), len(b))
	return 1.0 - float64(dist)/float64(longest)
}
