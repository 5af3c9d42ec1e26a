// Package query builds platform-scoped search engine queries for a person.
package query

import (
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/namehunt/pkg/nameparse"
	"github.com/codeGROOVE-dev/namehunt/pkg/result"
)

// Query is a single search engine query targeted at one platform.
type Query struct {
	Platform result.Platform
	String   string
}

// Context holds optional extra search terms (city, occupation, education).
type Context struct {
	Terms []string
}

// ParseContext splits comma-separated free text into ordered extra terms.
// Empty segments are dropped.
func ParseContext(s string) Context {
	var terms []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			terms = append(terms, part)
		}
	}
	return Context{Terms: terms}
}

// siteQueries are the site-scoped query templates, one set per platform.
var siteQueries = []struct {
	platform result.Platform
	format   string
}{
	{result.PlatformLinkedIn, `%q site:linkedin.com/in/`},
	{result.PlatformLinkedIn, `%q site:linkedin.com/pub/`},
	{result.PlatformLinkedIn, `%q "linkedin"`},
	{result.PlatformFacebook, `%q site:facebook.com`},
	{result.PlatformFacebook, `%q "facebook"`},
	{result.PlatformFacebook, `%q "facebook profile"`},
	{result.PlatformInstagram, `%q site:instagram.com`},
	{result.PlatformInstagram, `%q "instagram"`},
	{result.PlatformInstagram, `%q "instagram profile"`},
}

// Build returns one query per site template, with any context terms appended.
// It is a pure function: the same inputs always produce the same queries.
func Build(name nameparse.Name, qc Context) []Query {
	if name.Full == "" {
		return nil
	}

	var suffix string
	if len(qc.Terms) > 0 {
		suffix = " " + strings.Join(qc.Terms, " ")
	}

	queries := make([]Query, 0, len(siteQueries))
	for _, sq := range siteQueries {
		queries = append(queries, Query{
			Platform: sq.platform,
			String:   fmt.Sprintf(sq.format, name.Full) + suffix,
		})
	}
	return queries
}
