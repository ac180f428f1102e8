package model

import (
	"net/url"
	"strconv"
	"strings"
)

// Pagination defaults. Values above MaxPageSize are clamped, not rejected.
const (
	DefaultPage     = 1
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// BookFilter - Parsed query parameters for the list endpoint.
// Every filter is optional; an empty slice means "filter absent".
// Values within one filter are ORed, filters are ANDed with each other.
type BookFilter struct {
	GutenbergIDs []int    // exact match, integers
	Languages    []string // exact match, lowercased codes
	Topics       []string // substring match on subject OR bookshelf name
	MimeTypes    []string // exact match on format mime-type
	Authors      []string // substring match on author name
	Titles       []string // substring match on book title
	Page         int
	PageSize     int
}

// ParseBookFilter converts raw query parameters into a BookFilter.
// Malformed tokens inside a list are dropped; a list left empty after
// dropping is treated as absent. Parsing never fails: invalid pagination
// values fall back to defaults.
func ParseBookFilter(query url.Values) BookFilter {
	f := BookFilter{
		GutenbergIDs: splitIntList(query.Get("gutenberg_id")),
		Languages:    lowerAll(splitList(query.Get("language"))),
		Topics:       splitList(query.Get("topic")),
		MimeTypes:    splitList(query.Get("mime_type")),
		Authors:      splitList(query.Get("author")),
		Titles:       splitList(query.Get("title")),
		Page:         DefaultPage,
		PageSize:     DefaultPageSize,
	}

	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		f.Page = p
	}
	if size, err := strconv.Atoi(query.Get("page_size")); err == nil && size > 0 {
		if size > MaxPageSize {
			size = MaxPageSize
		}
		f.PageSize = size
	}

	return f
}

// HasRelationFilter reports whether any active filter traverses a
// one-to-many or many-to-many relation. Such filters fan out the joined
// rows, so the composed query must deduplicate book identities.
func (f BookFilter) HasRelationFilter() bool {
	return len(f.Languages) > 0 || len(f.Topics) > 0 ||
		len(f.MimeTypes) > 0 || len(f.Authors) > 0
}

// Offset is the number of rows to skip for the requested page.
func (f BookFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty tokens.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// splitIntList splits a comma-separated value into integers, silently
// dropping non-numeric tokens.
func splitIntList(raw string) []int {
	var ids []int
	for _, token := range splitList(raw) {
		if id, err := strconv.Atoi(token); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func lowerAll(tokens []string) []string {
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return tokens
}
