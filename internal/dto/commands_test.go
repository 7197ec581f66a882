package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cardvault/cardvault-server/internal/errors"
)

func TestNewCreateSeriesCommand(t *testing.T) {
	t.Parallel()

	cmd, err := NewCreateSeriesCommand("SV01", "Scarlet & Violet", 2023, "https://img.example.com/sv01.png", []string{"Base"})
	require.NoError(t, err)
	assert.Equal(t, "SV01", cmd.Code)
	assert.Equal(t, "Scarlet & Violet", cmd.Name)
	assert.Equal(t, 2023, cmd.ReleaseYear)
}

func TestNewCreateSeriesCommand_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	cmd, err := NewCreateSeriesCommand("  SV01 ", "  Scarlet & Violet  ", 2023, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "SV01", cmd.Code)
	assert.Equal(t, "Scarlet & Violet", cmd.Name)
}

func TestNewCreateSeriesCommand_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		code        string
		seriesName  string
		releaseYear int
		imageURL    string
		field       string
	}{
		{"empty code", "", "Base Set", 1999, "", "code"},
		{"whitespace code", "   ", "Base Set", 1999, "", "code"},
		{"code too long", "ABCDEFGHIJK", "Base Set", 1999, "", "code"},
		{"empty name", "BS1", "", 1999, "", "name"},
		{"name too long", "BS1", strings.Repeat("a", 101), 1999, "", "name"},
		{"release year before 1999", "BS1", "Base Set", 1998, "", "release_year"},
		{"zero release year", "BS1", "Base Set", 0, "", "release_year"},
		{"malformed image url", "BS1", "Base Set", 1999, "not-a-url", "image_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewCreateSeriesCommand(tt.code, tt.seriesName, tt.releaseYear, tt.imageURL, nil)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

			var appErr *apperrors.Error
			require.True(t, apperrors.As(err, &appErr))
			assert.Contains(t, appErr.Details, tt.field)
		})
	}
}

func TestNewCreateSeriesCommand_ReleaseYearBoundary(t *testing.T) {
	t.Parallel()

	_, err := NewCreateSeriesCommand("BS1", "Base Set", 1998, "", nil)
	require.Error(t, err)

	cmd, err := NewCreateSeriesCommand("BS1", "Base Set", 1999, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1999, cmd.ReleaseYear)
}

func TestNewCreateSeriesCommand_MaxLengthsAccepted(t *testing.T) {
	t.Parallel()

	cmd, err := NewCreateSeriesCommand(strings.Repeat("A", 10), strings.Repeat("n", 100), 2020, "", nil)
	require.NoError(t, err)
	assert.Len(t, cmd.Code, 10)
	assert.Len(t, cmd.Name, 100)
}

func TestNewUpdateSeriesCommand(t *testing.T) {
	t.Parallel()

	cmd, err := NewUpdateSeriesCommand(" SWSH1 ", "Sword & Shield", 2020, "", []string{"Rebel Clash"})
	require.NoError(t, err)
	assert.Equal(t, "SWSH1", cmd.Code)
	assert.Equal(t, []string{"Rebel Clash"}, cmd.Expansions)
}

func TestNewUpdateSeriesCommand_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewUpdateSeriesCommand("", "Sword & Shield", 2020, "", nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}
