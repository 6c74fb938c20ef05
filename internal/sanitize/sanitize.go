// Package sanitize cleans untrusted product input before it reaches the
// database. Titles are reduced to plain text while descriptions keep a
// safe HTML subset.
package sanitize

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	rich   = bluemonday.UGCPolicy()
)

// PlainText strips every HTML tag and collapses surrounding whitespace.
// Used for product titles.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// RichText keeps the user-generated-content subset of HTML (formatting,
// links, lists, images) and drops everything else. Used for descriptions.
func RichText(s string) string {
	return rich.Sanitize(s)
}

// URL returns the input re-encoded as an http(s) URL, or an empty
// string when it cannot be parsed or uses another scheme. Reachability
// of the target is not checked.
func URL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil {
		return ""
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}

	return u.String()
}
