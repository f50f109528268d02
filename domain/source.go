package domain

import "context"

// DiffSource produces unified-diff text for the extractor. Implementations
// decide where the diff comes from: a literal file, two directory snapshots,
// or two refs of a local repository. The extractor does not care which.
type DiffSource interface {
	// Name returns the source identifier (e.g. "file", "snapshot", "git").
	Name() string

	// Diff returns the unified-diff text to extract changes from.
	Diff(ctx context.Context) (string, error)
}

// DiffWalker turns unified-diff text into per-file manifest change sets,
// keeping only file sections the classifier marks as in scope. Walking the
// same text twice yields identical output.
type DiffWalker interface {
	Walk(diffText string, classifier *PathClassifier) ([]FileChange, []Advisory)
}
