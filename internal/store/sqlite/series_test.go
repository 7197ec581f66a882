package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cardvault/cardvault-server/internal/errors"
	"github.com/cardvault/cardvault-server/internal/store"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close() //nolint:errcheck // Test cleanup
	})

	return s
}

func testRecord(code, name string) store.SeriesRecord {
	now := time.Date(2023, 3, 31, 12, 0, 0, 0, time.UTC)
	return store.SeriesRecord{
		Code:        code,
		Name:        name,
		ReleaseYear: 2023,
		ImageURL:    "https://img.cardvault.test/" + code + ".png",
		Expansions:  "SV01,SV02",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestSQLiteStore_SaveAndFind(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, testRecord("SV", "Scarlet & Violet"))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Code, got.Code)
	assert.Equal(t, saved.Name, got.Name)
	assert.Equal(t, saved.ReleaseYear, got.ReleaseYear)
	assert.Equal(t, saved.ImageURL, got.ImageURL)
	assert.Equal(t, saved.Expansions, got.Expansions)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
}

func TestSQLiteStore_UniqueConstraints(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, testRecord("SV", "Scarlet & Violet"))
	require.NoError(t, err)

	_, err = s.Save(ctx, testRecord("SV", "Another Name"))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	_, err = s.Save(ctx, testRecord("XY", "SCARLET & violet"))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestSQLiteStore_Save_UpsertByID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, testRecord("SV", "Scarlet & Violet"))
	require.NoError(t, err)

	saved.Name = "Scarlet & Violet Era"
	saved.ReleaseYear = 2024
	updated, err := s.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)

	got, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scarlet & Violet Era", got.Name)
	assert.Equal(t, 2024, got.ReleaseYear)

	// Only one row for the ID.
	page, err := s.FindAll(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestSQLiteStore_ExistsLookups(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, testRecord("SWSH", "Sword & Shield"))
	require.NoError(t, err)

	exists, err := s.ExistsByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByCode(ctx, "SWSH")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByName(ctx, "  SWORD  & shield ")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByID(ctx, "series-missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteStore_FindByCodeAndName(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, testRecord("SM", "Sun & Moon"))
	require.NoError(t, err)

	byCode, err := s.FindByCode(ctx, "SM")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byCode.ID)

	byName, err := s.FindByName(ctx, "sun & moon")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byName.ID)

	_, err = s.FindByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, testRecord("SM", "Sun & Moon"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteByID(ctx, saved.ID))

	_, err = s.FindByID(ctx, saved.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = s.DeleteByID(ctx, saved.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSQLiteStore_FindAll_Pagination(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, code := range []string{"BW", "DP", "EX", "SM", "SV"} {
		_, err := s.Save(ctx, testRecord(code, "Series "+code))
		require.NoError(t, err)
	}

	first, err := s.FindAll(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, 5, first.Total)
	assert.True(t, first.HasMore)

	last, err := s.FindAll(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)
	assert.False(t, last.HasMore)

	empty, err := s.FindAll(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.False(t, empty.HasMore)
}
