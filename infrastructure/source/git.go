package source

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reqdiff/domain"
)

// GitSource diffs manifest files between two refs of a local repository,
// entirely in-process — no git binary and no network access. The optional
// classifier narrows the tree diff to in-scope manifest paths before the
// patch is rendered.
type GitSource struct {
	RepoPath   string
	OldRef     string
	NewRef     string
	Classifier *domain.PathClassifier
}

// NewGitSource creates a diff source comparing two refs of a local repository.
func NewGitSource(repoPath, oldRef, newRef string, classifier *domain.PathClassifier) *GitSource {
	return &GitSource{
		RepoPath:   repoPath,
		OldRef:     oldRef,
		NewRef:     newRef,
		Classifier: classifier,
	}
}

// Name returns the source identifier.
func (s *GitSource) Name() string { return "git" }

// Diff renders the tree diff between the two refs as unified-diff text.
func (s *GitSource) Diff(ctx context.Context) (string, error) {
	repo, err := git.PlainOpen(s.RepoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open repository %q: %w", s.RepoPath, err)
	}

	oldTree, err := treeAt(repo, s.OldRef)
	if err != nil {
		return "", err
	}
	newTree, err := treeAt(repo, s.NewRef)
	if err != nil {
		return "", err
	}

	changes, err := object.DiffTreeContext(ctx, oldTree, newTree)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s..%s: %w", s.OldRef, s.NewRef, err)
	}

	filtered := make(object.Changes, 0, len(changes))
	for _, change := range changes {
		if s.Classifier == nil ||
			s.Classifier.Included(change.From.Name) ||
			s.Classifier.Included(change.To.Name) {
			filtered = append(filtered, change)
		}
	}
	logger.Debugf(
		"Git diff %s..%s: %d changed file(s), %d in scope",
		s.OldRef, s.NewRef, len(changes), len(filtered),
	)
	if len(filtered) == 0 {
		return "", nil
	}

	patch, err := filtered.PatchContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to render patch for %s..%s: %w", s.OldRef, s.NewRef, err)
	}
	return patch.String(), nil
}

// treeAt resolves a revision to its commit tree.
func treeAt(repo *git.Repository, ref string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ref %q: %w", ref, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree for commit %s: %w", hash, err)
	}
	return tree, nil
}
