package store

import (
	"strings"
	"time"
)

// expansionDelimiter separates expansion codes in the flattened column.
const expansionDelimiter = ","

// SeriesRecord is the persistence-shaped projection of a catalog series.
// The expansion list is denormalized into a single delimited string;
// expansion entities are not persisted separately.
type SeriesRecord struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ReleaseYear int       `json:"release_year"`
	ImageURL    string    `json:"image_url,omitempty"`
	Expansions  string    `json:"expansions"` // delimited expansion codes
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JoinExpansions flattens an ordered expansion code list into the stored form.
func JoinExpansions(codes []string) string {
	return strings.Join(codes, expansionDelimiter)
}

// SplitExpansions restores the ordered expansion code list from the stored form.
// An empty stored value yields an empty (non-nil) slice.
func SplitExpansions(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, expansionDelimiter)
}

// NormalizeName normalizes a series name for uniqueness checks.
// Lowercase, trim whitespace, collapse runs of spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
