package dto

import (
	"time"

	"github.com/cardvault/cardvault-server/internal/domain"
	"github.com/cardvault/cardvault-server/internal/store"
)

// CreateCommandToDomain maps a create command to a pending series entity.
// The identifier is left empty for the store to assign; both timestamps are
// set to now.
func CreateCommandToDomain(cmd CreateSeriesCommand, now time.Time) domain.Series {
	return domain.Series{
		Code:        cmd.Code,
		Name:        cmd.Name,
		ReleaseYear: cmd.ReleaseYear,
		ImageURL:    cmd.ImageURL,
		Expansions:  cloneExpansions(cmd.Expansions),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateCommandToDomain maps an update command onto the series with the
// given identifier. The creation timestamp is owned by the store and left
// zero here; UpdatedAt is set to now.
func UpdateCommandToDomain(cmd UpdateSeriesCommand, id string, now time.Time) domain.Series {
	return domain.Series{
		ID:          id,
		Code:        cmd.Code,
		Name:        cmd.Name,
		ReleaseYear: cmd.ReleaseYear,
		ImageURL:    cmd.ImageURL,
		Expansions:  cloneExpansions(cmd.Expansions),
		UpdatedAt:   now,
	}
}

// DomainToRecord maps a series entity to its stored representation.
func DomainToRecord(s domain.Series) store.SeriesRecord {
	return store.SeriesRecord{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		ReleaseYear: s.ReleaseYear,
		ImageURL:    s.ImageURL,
		Expansions:  store.JoinExpansions(s.Expansions),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// RecordToDomain maps a stored record back to the series entity.
func RecordToDomain(rec store.SeriesRecord) domain.Series {
	return domain.Series{
		ID:          rec.ID,
		Code:        rec.Code,
		Name:        rec.Name,
		ReleaseYear: rec.ReleaseYear,
		ImageURL:    rec.ImageURL,
		Expansions:  store.SplitExpansions(rec.Expansions),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// PageToDomain maps a page of stored records to a page of series entities,
// preserving the paging metadata.
func PageToDomain(page *store.Page[store.SeriesRecord]) *store.Page[domain.Series] {
	items := make([]domain.Series, len(page.Items))
	for i, rec := range page.Items {
		items[i] = RecordToDomain(rec)
	}
	return &store.Page[domain.Series]{
		Items:    items,
		Number:   page.Number,
		PageSize: page.PageSize,
		Total:    page.Total,
		HasMore:  page.HasMore,
	}
}

func cloneExpansions(expansions []string) []string {
	if expansions == nil {
		return []string{}
	}
	out := make([]string, len(expansions))
	copy(out, expansions)
	return out
}
