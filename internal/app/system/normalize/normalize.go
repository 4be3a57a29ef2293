// Package normalize is the single coercion point between loose client
// payloads and the stable shapes the stores persist. Backend records
// written by earlier versions of the platform carry category references
// as either a plain string key or an embedded {id, name} object; the
// union is resolved here, once, instead of ad hoc nil-chasing at every
// call site.
package normalize

import (
	"encoding/json"
	"strings"
)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status string.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CategoryRef is the accepted union for a category reference in a
// payload: either "shopping" or {"id": "shopping", "name": "Shopping"}.
type CategoryRef struct {
	raw json.RawMessage
}

// UnmarshalJSON stores the raw value for later coercion.
func (c *CategoryRef) UnmarshalJSON(b []byte) error {
	c.raw = append(c.raw[:0], b...)
	return nil
}

// Key coerces the reference to its string key. Object forms prefer
// "id", then "key", then "name". Unknown shapes coerce to "".
func (c CategoryRef) Key() string {
	if len(c.raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(c.raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		ID   string `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(c.raw, &obj); err == nil {
		for _, v := range []string{obj.ID, obj.Key, obj.Name} {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
