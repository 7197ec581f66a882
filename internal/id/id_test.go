package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("series")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "series-"))
	// "series-" plus the 21-character default NanoID.
	assert.Len(t, got, len("series-")+21)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		got, err := Generate("series")
		require.NoError(t, err)
		assert.False(t, seen[got], "duplicate ID generated: %s", got)
		seen[got] = true
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		got := MustGenerate("tok")
		assert.True(t, strings.HasPrefix(got, "tok-"))
	})
}
