package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Well-known result keys understood by the host.
const (
	KeyIdentifier    = "IDENTIFIER"
	KeyDisplayName   = "DISPLAY_NAME"
	KeySnippet       = "SNIPPET"
	KeyImage         = "IMAGE"
	KeyType          = "TYPE"
	KeyDefaultAction = "DEFAULT_ACTION"
	KeyMainItem      = "MAIN_ITEM"
	KeyOtherItems    = "OTHER_ITEMS"
)

// Result is a single search result record. Values are plain strings keyed by
// the well-known keys above plus any plugin specific payload keys.
type Result map[string]string

// NewResult copies fields into a fresh Result
func NewResult(fields map[string]string) Result {
	r := make(Result, len(fields))
	for k, v := range fields {
		r[k] = v
	}
	return r
}

// Identifier returns the stable URI of the record
func (r Result) Identifier() string {
	return r[KeyIdentifier]
}

// DisplayName returns the human readable title
func (r Result) DisplayName() string {
	return r[KeyDisplayName]
}

// Snippet returns the secondary line, if any
func (r Result) Snippet() string {
	return r[KeySnippet]
}

// Get returns the value stored under key and whether it was present
func (r Result) Get(key string) (string, bool) {
	v, ok := r[key]
	return v, ok
}

// Clone returns a deep copy of the record
func (r Result) Clone() Result {
	return NewResult(r)
}

// Keys returns the record keys in sorted order
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the record with sorted keys so output is stable
func (r Result) String() string {
	parts := make([]string, 0, len(r))
	for _, k := range r.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %q", k, r[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// CloneResults copies a slice of records
func CloneResults(results []Result) []Result {
	if results == nil {
		return nil
	}
	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = r.Clone()
	}
	return out
}
