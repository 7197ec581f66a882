// Package service implements the series use cases: create, update, and
// delete plus the read operations the API exposes. Writes run an ordered set
// of business rules before touching the store; the store itself remains the
// final arbiter of uniqueness under concurrent writers.
package service

import (
	"context"

	"github.com/cardvault/cardvault-server/internal/store"
)

// SeriesStore is the persistence port the series use cases depend on.
// Both the badger and sqlite engines satisfy it.
type SeriesStore interface {
	Save(ctx context.Context, rec store.SeriesRecord) (store.SeriesRecord, error)
	DeleteByID(ctx context.Context, seriesID string) error

	ExistsByID(ctx context.Context, seriesID string) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	FindByID(ctx context.Context, seriesID string) (*store.SeriesRecord, error)
	FindByCode(ctx context.Context, code string) (*store.SeriesRecord, error)
	FindByName(ctx context.Context, name string) (*store.SeriesRecord, error)
	FindAll(ctx context.Context, page, pageSize int) (*store.Page[store.SeriesRecord], error)
}
