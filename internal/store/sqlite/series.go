package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/cardvault/cardvault-server/internal/errors"
	"github.com/cardvault/cardvault-server/internal/id"
	"github.com/cardvault/cardvault-server/internal/store"
)

// seriesColumns is the ordered list of columns selected in series queries.
// Must match the scan order in scanSeries.
const seriesColumns = `id, code, name, release_year, image_url, expansions, created_at, updated_at`

// scanSeries scans a sql.Row (or sql.Rows via its Scan method) into a series record.
func scanSeries(scanner interface{ Scan(dest ...any) error }) (*store.SeriesRecord, error) {
	var rec store.SeriesRecord

	var (
		imageURL  sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&rec.ID,
		&rec.Code,
		&rec.Name,
		&rec.ReleaseYear,
		&imageURL,
		&rec.Expansions,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		rec.ImageURL = imageURL.String
	}

	rec.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	rec.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// translateConstraintError maps SQLite unique-constraint failures to the
// domain error taxonomy, inspecting the failed index name.
func translateConstraintError(err error, rec store.SeriesRecord) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}
	if strings.Contains(msg, "series.name_normalized") {
		return apperrors.AlreadyExistsf("series with name %q already exists", rec.Name)
	}
	if strings.Contains(msg, "series.code") {
		return apperrors.AlreadyExistsf("series with code %q already exists", rec.Code)
	}
	return apperrors.ErrAlreadyExists.WithCause(err)
}

// Save upserts a series record. A record without an ID is treated as a
// creation and assigned one. The UNIQUE indexes on code and normalized name
// make the database the final arbiter of uniqueness.
func (s *Store) Save(ctx context.Context, rec store.SeriesRecord) (store.SeriesRecord, error) {
	if rec.ID == "" {
		newID, err := id.Generate("series")
		if err != nil {
			return store.SeriesRecord{}, fmt.Errorf("generate series ID: %w", err)
		}
		rec.ID = newID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO series (id, code, name, name_normalized, release_year, image_url, expansions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			name = excluded.name,
			name_normalized = excluded.name_normalized,
			release_year = excluded.release_year,
			image_url = excluded.image_url,
			expansions = excluded.expansions,
			updated_at = excluded.updated_at`,
		rec.ID,
		rec.Code,
		rec.Name,
		store.NormalizeName(rec.Name),
		rec.ReleaseYear,
		nullString(rec.ImageURL),
		rec.Expansions,
		formatTime(rec.CreatedAt),
		formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return store.SeriesRecord{}, translateConstraintError(err, rec)
	}

	// The upsert never touches created_at, so an update keeps the original
	// value; read it back so the returned record reflects what is stored.
	var createdAt string
	if err := s.db.QueryRowContext(ctx, `SELECT created_at FROM series WHERE id = ?`, rec.ID).Scan(&createdAt); err != nil {
		return store.SeriesRecord{}, fmt.Errorf("read back series: %w", err)
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return store.SeriesRecord{}, err
	}

	return rec, nil
}

// DeleteByID removes a series record.
func (s *Store) DeleteByID(ctx context.Context, seriesID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM series WHERE id = ?`, seriesID)
	if err != nil {
		return fmt.Errorf("delete series: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete series: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFoundf("series %s not found", seriesID)
	}
	return nil
}

// ExistsByID reports whether a series with the given ID is stored.
func (s *Store) ExistsByID(ctx context.Context, seriesID string) (bool, error) {
	return s.existsWhere(ctx, `id = ?`, seriesID)
}

// ExistsByCode reports whether any series holds the given code.
func (s *Store) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return s.existsWhere(ctx, `code = ?`, code)
}

// ExistsByName reports whether any series holds the given name.
// Name comparison is normalized (case- and whitespace-insensitive).
func (s *Store) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.existsWhere(ctx, `name_normalized = ?`, store.NormalizeName(name))
}

func (s *Store) existsWhere(ctx context.Context, where string, arg any) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM series WHERE `+where, arg).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check series exists: %w", err)
	}
	return n > 0, nil
}

// FindByID retrieves a series record by ID.
func (s *Store) FindByID(ctx context.Context, seriesID string) (*store.SeriesRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+seriesColumns+` FROM series WHERE id = ?`, seriesID)

	rec, err := scanSeries(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("series %s not found", seriesID)
		}
		return nil, fmt.Errorf("get series: %w", err)
	}
	return rec, nil
}

// FindByCode retrieves a series record by its code.
func (s *Store) FindByCode(ctx context.Context, code string) (*store.SeriesRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+seriesColumns+` FROM series WHERE code = ?`, code)

	rec, err := scanSeries(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("series with code %q not found", code)
		}
		return nil, fmt.Errorf("get series by code: %w", err)
	}
	return rec, nil
}

// FindByName retrieves a series record by its normalized name.
func (s *Store) FindByName(ctx context.Context, name string) (*store.SeriesRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+seriesColumns+` FROM series WHERE name_normalized = ?`, store.NormalizeName(name))

	rec, err := scanSeries(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("series with name %q not found", name)
		}
		return nil, fmt.Errorf("get series by name: %w", err)
	}
	return rec, nil
}

// FindAll returns one zero-based page of series records ordered by ID.
func (s *Store) FindAll(ctx context.Context, page, pageSize int) (*store.Page[store.SeriesRecord], error) {
	page, pageSize = store.NormalizePaging(page, pageSize)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM series`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count series: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+seriesColumns+` FROM series ORDER BY id LIMIT ? OFFSET ?`,
		pageSize, page*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var records []store.SeriesRecord
	for rows.Next() {
		rec, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}

	return store.NewPage(records, page, pageSize, total), nil
}
