package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	apperrors "github.com/cardvault/cardvault-server/internal/errors"
	"github.com/cardvault/cardvault-server/internal/id"
)

const (
	seriesPrefix       = "series:"
	seriesByCodePrefix = "idx:series:code:" // value: series ID
	seriesByNamePrefix = "idx:series:name:" // normalized name, value: series ID
)

func seriesKey(seriesID string) []byte {
	return []byte(seriesPrefix + seriesID)
}

func codeIndexKey(code string) []byte {
	return []byte(seriesByCodePrefix + code)
}

func nameIndexKey(name string) []byte {
	return []byte(seriesByNamePrefix + NormalizeName(name))
}

// indexOwner returns the series ID an index key points at, or "" if the key
// does not exist.
func indexOwner(txn *badger.Txn, key []byte) (string, error) {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	var owner string
	err = item.Value(func(val []byte) error {
		owner = string(val)
		return nil
	})
	return owner, err
}

// Save upserts a series record. A record without an ID is treated as a
// creation and assigned one; a record with an ID replaces the stored version.
//
// The code and name uniqueness indexes are checked and maintained inside the
// same write transaction, so uniqueness holds even when two concurrent saves
// race past the validation layer.
func (s *Store) Save(_ context.Context, rec SeriesRecord) (SeriesRecord, error) {
	if rec.ID == "" {
		newID, err := id.Generate("series")
		if err != nil {
			return SeriesRecord{}, fmt.Errorf("generate series ID: %w", err)
		}
		rec.ID = newID
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		// Load the previous version for index cleanup on upsert.
		var prev *SeriesRecord
		if item, err := txn.Get(seriesKey(rec.ID)); err == nil {
			var p SeriesRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return fmt.Errorf("unmarshal series: %w", err)
			}
			prev = &p
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		// Uniqueness backstop. The validation layer runs the same checks
		// first, but only this transaction is race-free.
		if owner, err := indexOwner(txn, codeIndexKey(rec.Code)); err != nil {
			return err
		} else if owner != "" && owner != rec.ID {
			return apperrors.AlreadyExistsf("series with code %q already exists", rec.Code)
		}
		if owner, err := indexOwner(txn, nameIndexKey(rec.Name)); err != nil {
			return err
		} else if owner != "" && owner != rec.ID {
			return apperrors.AlreadyExistsf("series with name %q already exists", rec.Name)
		}

		// The creation timestamp is set once; replacements keep the original.
		if prev != nil {
			rec.CreatedAt = prev.CreatedAt
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal series: %w", err)
		}
		if err := txn.Set(seriesKey(rec.ID), data); err != nil {
			return err
		}

		// Drop stale index entries when code or name changed.
		if prev != nil && prev.Code != rec.Code {
			if err := txn.Delete(codeIndexKey(prev.Code)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		if prev != nil && NormalizeName(prev.Name) != NormalizeName(rec.Name) {
			if err := txn.Delete(nameIndexKey(prev.Name)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}

		if err := txn.Set(codeIndexKey(rec.Code), []byte(rec.ID)); err != nil {
			return err
		}
		return txn.Set(nameIndexKey(rec.Name), []byte(rec.ID))
	})
	if err != nil {
		return SeriesRecord{}, err
	}

	return rec, nil
}

// DeleteByID removes a series record and its index entries.
func (s *Store) DeleteByID(_ context.Context, seriesID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(seriesKey(seriesID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return apperrors.NotFoundf("series %s not found", seriesID)
			}
			return err
		}

		var rec SeriesRecord
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return fmt.Errorf("unmarshal series: %w", err)
		}

		if err := txn.Delete(seriesKey(seriesID)); err != nil {
			return err
		}
		if err := txn.Delete(codeIndexKey(rec.Code)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Delete(nameIndexKey(rec.Name)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// ExistsByID reports whether a series with the given ID is stored.
func (s *Store) ExistsByID(_ context.Context, seriesID string) (bool, error) {
	return s.exists(seriesKey(seriesID))
}

// ExistsByCode reports whether any series holds the given code.
func (s *Store) ExistsByCode(_ context.Context, code string) (bool, error) {
	return s.exists(codeIndexKey(code))
}

// ExistsByName reports whether any series holds the given name.
// Name comparison is normalized (case- and whitespace-insensitive).
func (s *Store) ExistsByName(_ context.Context, name string) (bool, error) {
	return s.exists(nameIndexKey(name))
}

// FindByID retrieves a series record by ID.
func (s *Store) FindByID(_ context.Context, seriesID string) (*SeriesRecord, error) {
	var rec SeriesRecord
	if err := s.get(seriesKey(seriesID), &rec); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, apperrors.NotFoundf("series %s not found", seriesID)
		}
		return nil, fmt.Errorf("get series: %w", err)
	}
	return &rec, nil
}

// FindByCode retrieves a series record via the code index.
func (s *Store) FindByCode(ctx context.Context, code string) (*SeriesRecord, error) {
	return s.findByIndex(ctx, codeIndexKey(code), "code", code)
}

// FindByName retrieves a series record via the normalized name index.
func (s *Store) FindByName(ctx context.Context, name string) (*SeriesRecord, error) {
	return s.findByIndex(ctx, nameIndexKey(name), "name", name)
}

func (s *Store) findByIndex(_ context.Context, key []byte, field, value string) (*SeriesRecord, error) {
	var rec SeriesRecord
	err := s.db.View(func(txn *badger.Txn) error {
		owner, err := indexOwner(txn, key)
		if err != nil {
			return err
		}
		if owner == "" {
			return badger.ErrKeyNotFound
		}

		item, err := txn.Get(seriesKey(owner))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, apperrors.NotFoundf("series with %s %q not found", field, value)
		}
		return nil, fmt.Errorf("lookup series by %s: %w", field, err)
	}
	return &rec, nil
}

// FindAll returns one zero-based page of series records in key order.
func (s *Store) FindAll(_ context.Context, page, pageSize int) (*Page[SeriesRecord], error) {
	page, pageSize = NormalizePaging(page, pageSize)

	var records []SeriesRecord
	total := 0
	skip := page * pageSize

	prefix := []byte(seriesPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if total >= skip && len(records) < pageSize {
				var rec SeriesRecord
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &rec)
				})
				if err != nil {
					return err
				}
				records = append(records, rec)
			}
			total++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}

	return NewPage(records, page, pageSize, total), nil
}
