// Package domain defines the core entities of the card catalog.
package domain

import "time"

// Catalog limits for a series. Commands enforce these at construction;
// they live here so tests and documentation share a single source.
const (
	MaxCodeLength = 10
	MaxNameLength = 100
	// MinReleaseYear is the first valid release year. The catalog only
	// covers the modern era, so anything before 1999 is rejected.
	MinReleaseYear = 1999
)

// Series is the aggregate root of the catalog: a named, dated run of
// trading card products grouping the expansions released under it.
//
// A Series with an empty ID has not been persisted; the store assigns the
// ID on creation. That empty/non-empty distinction is the only marker
// separating pending instances from durable ones.
type Series struct {
	ID          string    `json:"id,omitempty"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ReleaseYear int       `json:"release_year"`
	ImageURL    string    `json:"image_url,omitempty"`
	Expansions  []string  `json:"expansions"` // expansion codes, order preserved
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Persisted reports whether the series has a durable identifier.
func (s *Series) Persisted() bool {
	return s.ID != ""
}
