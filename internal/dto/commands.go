// Package dto holds the transient command shapes for series write operations
// and the pure mapping functions between the command, domain, and stored
// representations. Keeping all conversions here leaves the entity types free
// of persistence concerns.
package dto

import (
	"strings"

	"github.com/cardvault/cardvault-server/internal/validation"
)

// commandValidator validates command construction. The validator is
// stateless, so a package-level instance is safe under concurrent requests.
var commandValidator = validation.New()

// CreateSeriesCommand carries the fields for creating a series.
// Commands are validated at construction and live only for the duration of
// a single use-case invocation.
type CreateSeriesCommand struct {
	Code        string   `json:"code" validate:"required,max=10"`
	Name        string   `json:"name" validate:"required,max=100"`
	ReleaseYear int      `json:"release_year" validate:"gt=1998"`
	ImageURL    string   `json:"image_url,omitempty" validate:"omitempty,url"`
	Expansions  []string `json:"expansions"`
}

// NewCreateSeriesCommand builds a validated create command.
// Code and name are trimmed before validation, so whitespace-only input
// fails the required check. Returns a validation error on malformed input.
func NewCreateSeriesCommand(code, name string, releaseYear int, imageURL string, expansions []string) (CreateSeriesCommand, error) {
	cmd := CreateSeriesCommand{
		Code:        strings.TrimSpace(code),
		Name:        strings.TrimSpace(name),
		ReleaseYear: releaseYear,
		ImageURL:    strings.TrimSpace(imageURL),
		Expansions:  expansions,
	}
	if err := commandValidator.Validate(cmd); err != nil {
		return CreateSeriesCommand{}, err
	}
	return cmd, nil
}

// UpdateSeriesCommand carries the fields for updating a series. The target
// identifier is not part of the command; the use case receives it separately
// so there is no second identifier to reconcile.
type UpdateSeriesCommand struct {
	Code        string   `json:"code" validate:"required,max=10"`
	Name        string   `json:"name" validate:"required,max=100"`
	ReleaseYear int      `json:"release_year" validate:"gt=1998"`
	ImageURL    string   `json:"image_url,omitempty" validate:"omitempty,url"`
	Expansions  []string `json:"expansions"`
}

// NewUpdateSeriesCommand builds a validated update command with the same
// construction rules as NewCreateSeriesCommand.
func NewUpdateSeriesCommand(code, name string, releaseYear int, imageURL string, expansions []string) (UpdateSeriesCommand, error) {
	cmd := UpdateSeriesCommand{
		Code:        strings.TrimSpace(code),
		Name:        strings.TrimSpace(name),
		ReleaseYear: releaseYear,
		ImageURL:    strings.TrimSpace(imageURL),
		Expansions:  expansions,
	}
	if err := commandValidator.Validate(cmd); err != nil {
		return UpdateSeriesCommand{}, err
	}
	return cmd, nil
}
