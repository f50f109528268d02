package application

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reqdiff/domain"
)

// ExtractOptions holds runtime options for a single extraction.
type ExtractOptions struct {
	IncludeRemovals bool
	Verbose         bool
}

// ExtractService runs the full extraction flow: obtain unified-diff text
// from a source, walk it into per-file manifest changes, and reconcile those
// into the package-level record set.
type ExtractService struct {
	classifier *domain.PathClassifier
	walker     domain.DiffWalker
	reconciler *domain.Reconciler
}

// NewExtractService creates a new service with the given components.
func NewExtractService(
	classifier *domain.PathClassifier,
	walker domain.DiffWalker,
	reconciler *domain.Reconciler,
) *ExtractService {
	return &ExtractService{
		classifier: classifier,
		walker:     walker,
		reconciler: reconciler,
	}
}

// Extract produces the change record set for one diff source. Malformed or
// unexpected input never fails the extraction — it shrinks the result and is
// surfaced through advisories. Only the source itself can error.
func (s *ExtractService) Extract(
	ctx context.Context,
	src domain.DiffSource,
	opts ExtractOptions,
) (*domain.RecordSet, []domain.Advisory, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	diffText, err := src.Diff(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to obtain diff from %s source: %w", src.Name(), err)
	}

	changes, advisories := s.walker.Walk(diffText, s.classifier)
	logger.Debugf("Walked %d in-scope file section(s)", len(changes))

	set, reconcileAdvisories := s.reconciler.Reconcile(changes, domain.ReconcileOptions{
		IncludeRemovals: opts.IncludeRemovals,
	})
	advisories = append(advisories, reconcileAdvisories...)

	logger.Infof("Extracted %d package change(s) from %s source", set.Len(), src.Name())
	return set, advisories, nil
}
