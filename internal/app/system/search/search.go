// Package search holds the pure client-facing filter logic for request
// listings. It does no I/O: handlers fetch a normalized slice and apply
// a Filter to it.
package search

import (
	"strings"

	"github.com/dalemusser/helpbridge/internal/domain/models"
)

// All is the wildcard filter value meaning "no constraint".
const All = "all"

// Filter is a conjunction of up to four constraints on a request list.
// SearchText matches case-insensitively as a substring of title,
// description, OR location (any one field suffices). Category, Urgency,
// and Status are exact matches; "all" or "" disables a dimension.
type Filter struct {
	SearchText string
	Category   string
	Urgency    string
	Status     string
}

// IsIdentity reports whether the filter constrains nothing.
func (f Filter) IsIdentity() bool {
	return strings.TrimSpace(f.SearchText) == "" &&
		wildcard(f.Category) && wildcard(f.Urgency) && wildcard(f.Status)
}

// Matches reports whether a single request passes the filter.
// Dimensions combine with AND; the text search is OR across fields.
func (f Filter) Matches(req models.Request) bool {
	if !wildcard(f.Category) && req.CategoryID != f.Category {
		return false
	}
	if !wildcard(f.Urgency) && req.Urgency != f.Urgency {
		return false
	}
	if !wildcard(f.Status) && string(req.Status) != f.Status {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.SearchText)); q != "" {
		if !strings.Contains(strings.ToLower(req.Title), q) &&
			!strings.Contains(strings.ToLower(req.Description), q) &&
			!strings.Contains(strings.ToLower(req.Location), q) {
			return false
		}
	}
	return true
}

// Apply returns the requests passing the filter. An identity filter
// returns the input slice unchanged (same backing array, no copy).
func Apply(reqs []models.Request, f Filter) []models.Request {
	if f.IsIdentity() {
		return reqs
	}
	out := make([]models.Request, 0, len(reqs))
	for _, r := range reqs {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func wildcard(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, All)
}
