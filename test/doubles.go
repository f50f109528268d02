// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"

	"github.com/rios0rios0/reqdiff/domain"
)

// ---------------------------------------------------------------------------
// StubDiffSource
// ---------------------------------------------------------------------------

// StubDiffSource implements domain.DiffSource with canned diff text.
type StubDiffSource struct {
	SourceName string
	DiffText   string
	Err        error

	// spy: number of times Diff was called
	DiffCalls int
}

var _ domain.DiffSource = (*StubDiffSource)(nil)

func (s *StubDiffSource) Name() string {
	if s.SourceName == "" {
		return "stub"
	}
	return s.SourceName
}

func (s *StubDiffSource) Diff(_ context.Context) (string, error) {
	s.DiffCalls++
	return s.DiffText, s.Err
}

// ---------------------------------------------------------------------------
// StubWalker
// ---------------------------------------------------------------------------

// StubWalker implements domain.DiffWalker with canned file changes.
type StubWalker struct {
	Changes    []domain.FileChange
	Advisories []domain.Advisory

	// spy: diff texts that were walked
	WalkedTexts []string
}

var _ domain.DiffWalker = (*StubWalker)(nil)

func (w *StubWalker) Walk(
	diffText string,
	_ *domain.PathClassifier,
) ([]domain.FileChange, []domain.Advisory) {
	w.WalkedTexts = append(w.WalkedTexts, diffText)
	return w.Changes, w.Advisories
}
