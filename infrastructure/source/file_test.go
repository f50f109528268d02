package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reqdiff/infrastructure/source"
)

func TestFileSource_Diff(t *testing.T) {
	t.Parallel()

	t.Run("should read diff text from a file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "changes.diff")
		require.NoError(t, os.WriteFile(path, []byte("--- a/x\n+++ b/x\n"), 0o644))
		src := source.NewFileSource(path)

		// when
		diffText, err := src.Diff(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, "--- a/x\n+++ b/x\n", diffText)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		src := source.NewFileSource(filepath.Join(t.TempDir(), "nope.diff"))

		// when
		_, err := src.Diff(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read diff file")
	})
}
