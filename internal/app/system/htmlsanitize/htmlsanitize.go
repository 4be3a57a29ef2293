// Package htmlsanitize strips dangerous markup from user-provided
// text before it is stored. Requests, applications, and feedback all
// carry free text typed by strangers; everything passes through here
// on the way into Mongo.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ugc keeps basic formatting (p, strong, em, lists, safe links)
	// for long-form fields like descriptions and notes.
	ugc = bluemonday.UGCPolicy()

	// strict reduces input to plain text for single-line fields like
	// titles and locations.
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans long-form text, preserving basic safe formatting.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// PlainText strips all markup and trims surrounding whitespace.
func PlainText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
