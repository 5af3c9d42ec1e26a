// Package nameparse splits free-text person names into components and
// generates candidate username variations for matching.
package nameparse

import (
	"strings"
)

// Name holds the parsed components of a person's name.
// Any component may be empty; Full always preserves the original input.
type Name struct {
	Full   string
	First  string
	Middle string
	Last   string
	Suffix string
}

// Suffix tokens recognized at the end of a name. Comparison is done on the
// token lowercased with trailing dots and commas stripped.
var suffixTokens = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
	"phd": true, "md": true, "esq": true, "dds": true, "jd": true,
}

// Parse decomposes a free-text name. It never fails: input that cannot be
// decomposed is kept whole in First.
func Parse(full string) Name {
	full = strings.TrimSpace(full)
	n := Name{Full: full}
	if full == "" {
		return n
	}

	// "Last, First Middle" form. A single comma with text on both sides
	// flips the order; anything else is treated as plain word order.
	working := full
	if idx := strings.Index(full, ","); idx > 0 && strings.Count(full, ",") == 1 {
		last := strings.TrimSpace(full[:idx])
		rest := strings.TrimSpace(full[idx+1:])
		if last != "" && rest != "" && !isSuffix(rest) {
			working = rest + " " + last
		}
	}

	tokens := strings.Fields(working)
	if len(tokens) == 0 {
		return n
	}

	// Peel a recognized suffix off the end.
	if len(tokens) > 1 && isSuffix(tokens[len(tokens)-1]) {
		n.Suffix = strings.Trim(tokens[len(tokens)-1], ".,")
		tokens = tokens[:len(tokens)-1]
	}

	switch len(tokens) {
	case 1:
		n.First = tokens[0]
	case 2:
		n.First = tokens[0]
		n.Last = tokens[1]
	default:
		n.First = tokens[0]
		n.Middle = strings.Join(tokens[1:len(tokens)-1], " ")
		n.Last = tokens[len(tokens)-1]
	}

	return n
}

func isSuffix(token string) bool {
	return suffixTokens[strings.ToLower(strings.Trim(token, ".,"))]
}

// IsZero reports whether no name components were parsed.
func (n Name) IsZero() bool {
	return n.First == "" && n.Middle == "" && n.Last == ""
}

// FirstInitial returns the lowercased first letter of the first name, or "".
func (n Name) FirstInitial() string { return initial(n.First) }

// MiddleInitial returns the lowercased first letter of the middle name, or "".
func (n Name) MiddleInitial() string { return initial(n.Middle) }

// LastInitial returns the lowercased first letter of the last name, or "".
func (n Name) LastInitial() string { return initial(n.Last) }

func initial(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(s[:1])
}

var separators = []string{"", ".", "-", "_"}

// Variations generates lowercase candidate username strings from the name
// components: component pairs and triples joined with common separators,
// initial forms, and the full name with spaces collapsed. Single-character
// candidates are dropped. The slice is deduplicated and keeps generation
// order, so output is deterministic.
func (n Name) Variations() []string {
	first := strings.ToLower(n.First)
	middle := strings.ToLower(n.Middle)
	last := strings.ToLower(n.Last)
	fi := n.FirstInitial()
	mi := n.MiddleInitial()
	li := n.LastInitial()

	seen := make(map[string]bool)
	var out []string
	add := func(c string) {
		if len(c) > 1 && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	add(first)
	add(last)
	add(middle)

	pair := func(a, b string) {
		if a == "" || b == "" {
			return
		}
		for _, sep := range separators {
			add(a + sep + b)
			add(b + sep + a)
		}
	}
	pair(first, last)
	pair(fi, last)
	pair(first, li)
	pair(fi, li)

	triple := func(a, b, c string) {
		if a == "" || b == "" || c == "" {
			return
		}
		for _, s1 := range separators {
			for _, s2 := range separators {
				add(a + s1 + b + s2 + c)
			}
		}
	}
	triple(first, middle, last)
	triple(first, mi, last)
	triple(fi, middle, last)
	triple(fi, mi, last)
	triple(fi, mi, li)

	if n.Full != "" {
		full := strings.ToLower(n.Full)
		for _, sep := range separators {
			add(strings.ReplaceAll(full, " ", sep))
		}
	}

	return out
}
