package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reqdiff/domain"
	"github.com/rios0rios0/reqdiff/infrastructure/source"
	"github.com/rios0rios0/reqdiff/infrastructure/walker"
)

// commitFiles writes the given files and commits them, returning the repo
// rooted at dir for further commits.
func commitFiles(t *testing.T, repo *git.Repository, dir, message string, files map[string]string) {
	t.Helper()
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, addErr := worktree.Add(rel)
		require.NoError(t, addErr)
	}

	_, err = worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
}

func TestGitSource_Diff(t *testing.T) {
	t.Parallel()

	t.Run("should diff manifest files between two refs", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repo, err := git.PlainInit(dir, false)
		require.NoError(t, err)
		commitFiles(t, repo, dir, "initial requirements", map[string]string{
			"requirements/common.txt": "transformers==4.53.2\nnumpy==1.26.4\n",
		})
		commitFiles(t, repo, dir, "bump transformers", map[string]string{
			"requirements/common.txt": "transformers==4.55.0\nnumpy==1.26.4\n",
		})
		classifier := domain.NewPathClassifier(nil, nil)
		src := source.NewGitSource(dir, "HEAD~1", "HEAD", classifier)

		// when
		diffText, err := src.Diff(context.Background())

		// then
		require.NoError(t, err)
		changes, advisories := walker.New().Walk(diffText, classifier)
		assert.Empty(t, advisories)
		set, _ := domain.NewReconciler().Reconcile(changes, domain.ReconcileOptions{})
		require.Equal(t, 1, set.Len())
		rec, found := set.Get("transformers")
		require.True(t, found)
		assert.Equal(t, "4.53.2", rec.OldVersion)
		assert.Equal(t, "4.55.0", rec.NewVersion)
	})

	t.Run("should drop out-of-scope files before rendering the patch", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repo, err := git.PlainInit(dir, false)
		require.NoError(t, err)
		commitFiles(t, repo, dir, "initial", map[string]string{
			"requirements/test.txt": "pytest==8.0.0\n",
			"README.md":             "hello\n",
		})
		commitFiles(t, repo, dir, "touch out-of-scope files", map[string]string{
			"requirements/test.txt": "pytest==8.2.0\n",
			"README.md":             "hello world\n",
		})
		src := source.NewGitSource(dir, "HEAD~1", "HEAD", domain.NewPathClassifier(nil, nil))

		// when
		diffText, err := src.Diff(context.Background())

		// then
		require.NoError(t, err)
		assert.Empty(t, diffText)
	})

	t.Run("should fail for an unknown ref", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repo, err := git.PlainInit(dir, false)
		require.NoError(t, err)
		commitFiles(t, repo, dir, "initial", map[string]string{
			"requirements/common.txt": "numpy==1.26.4\n",
		})
		src := source.NewGitSource(dir, "no-such-ref", "HEAD", domain.NewPathClassifier(nil, nil))

		// when
		_, err = src.Diff(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `failed to resolve ref "no-such-ref"`)
	})

	t.Run("should fail for a path that is not a repository", func(t *testing.T) {
		t.Parallel()

		// given
		src := source.NewGitSource(t.TempDir(), "HEAD~1", "HEAD", nil)

		// when
		_, err := src.Diff(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open repository")
	})
}
