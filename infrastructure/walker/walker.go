// Package walker turns unified-diff text into per-file manifest change sets.
package walker

import (
	"errors"
	"fmt"
	"io"
	"strings"

	logger "github.com/sirupsen/logrus"
	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/rios0rios0/reqdiff/domain"
)

// UnifiedWalker walks unified-diff text, grouping added and removed manifest
// lines per file section. Context lines, hunk headers and diff metadata are
// ignored. Input that cannot be parsed never fails the walk: unreadable
// sections are skipped and reported as advisories.
type UnifiedWalker struct{}

var _ domain.DiffWalker = (*UnifiedWalker)(nil)

// New creates a new unified-diff walker.
func New() *UnifiedWalker {
	return &UnifiedWalker{}
}

// Walk produces one FileChange per in-scope file section of the diff text.
// Re-walking the same text yields identical output.
func (w *UnifiedWalker) Walk(
	diffText string,
	classifier *domain.PathClassifier,
) ([]domain.FileChange, []domain.Advisory) {
	reader := godiff.NewMultiFileDiffReader(strings.NewReader(diffText))

	var changes []domain.FileChange
	var advisories []domain.Advisory

	for {
		fileDiff, err := reader.ReadFile()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The reader cannot resync past a malformed section, so the
			// walk degrades to whatever was parsed before it.
			if strings.TrimSpace(diffText) != "" {
				advisories = append(advisories, domain.Advisory{
					Kind:   domain.AdvisoryMalformedDiffSection,
					Detail: err.Error(),
				})
			}
			break
		}
		changes = append(changes, fileChanges(fileDiff, classifier)...)
	}

	// The reader silently swallows content it cannot attribute to a file
	// section (a garbage tail after the last hunk, or input that never
	// forms a section at all), so unrecognized lines are reported from an
	// independent scan of the raw text.
	if len(advisories) == 0 {
		if adv := unrecognizedContent(diffText); adv != nil {
			advisories = append(advisories, *adv)
		}
	}

	return changes, advisories
}

// diffHeaderPrefixes are the metadata line prefixes a unified diff may carry
// besides hunk content (git extended headers, index lines, binary notices).
//
//nolint:gochecknoglobals // fixed lookup table
var diffHeaderPrefixes = []string{
	"diff ",
	"index ",
	"Index: ",
	"old mode",
	"new mode",
	"deleted file mode",
	"new file mode",
	"copy from",
	"copy to",
	"rename from",
	"rename to",
	"similarity index",
	"dissimilarity index",
	"Binary files",
	"GIT binary patch",
	"Only in ",
	"===",
}

// unrecognizedContent returns an advisory for the first line of the diff
// text that is not valid anywhere in a unified diff, or nil when every line
// is accounted for.
func unrecognizedContent(diffText string) *domain.Advisory {
	for i, line := range strings.Split(diffText, "\n") {
		if isDiffLine(line) {
			continue
		}
		return &domain.Advisory{
			Kind:   domain.AdvisoryMalformedDiffSection,
			Detail: fmt.Sprintf("unrecognized content at line %d: %q", i+1, line),
		}
	}
	return nil
}

// isDiffLine reports whether a line can occur in well-formed unified-diff
// text: hunk content ("+", "-", context, "\ No newline"), hunk headers, file
// headers (covered by the "+"/"-" cases) or diff metadata.
func isDiffLine(line string) bool {
	if line == "" {
		return true
	}
	switch line[0] {
	case '+', '-', ' ', '\\', '@':
		return true
	}
	for _, prefix := range diffHeaderPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// fileChanges converts one parsed file section into zero, one or two
// FileChange values. A renamed file is treated as two independent paths: the
// old path contributes only removals and the new path only additions, which
// mirrors how version-control diffs present renames and avoids guessing
// rename intent.
func fileChanges(
	fileDiff *godiff.FileDiff,
	classifier *domain.PathClassifier,
) []domain.FileChange {
	origPath := cleanDiffPath(fileDiff.OrigName)
	newPath := cleanDiffPath(fileDiff.NewName)
	added, removed := collectEntries(fileDiff)

	if origPath != "" && newPath != "" && origPath != newPath {
		var out []domain.FileChange
		if classifier.Included(origPath) && len(removed) > 0 {
			out = append(out, domain.FileChange{Path: origPath, Removed: removed})
		}
		if classifier.Included(newPath) && len(added) > 0 {
			out = append(out, domain.FileChange{Path: newPath, Added: added})
		}
		return out
	}

	path := newPath
	if path == "" {
		path = origPath
	}
	if path == "" {
		return nil
	}
	if !classifier.Included(path) {
		logger.Debugf("Skipping out-of-scope path %q", path)
		return nil
	}
	if len(added) == 0 && len(removed) == 0 {
		// Section touched only comments, blanks or directives.
		return nil
	}

	return []domain.FileChange{{Path: path, Added: added, Removed: removed}}
}

// collectEntries parses the "+" and "-" lines of every hunk in a file
// section through the manifest line parser.
func collectEntries(fileDiff *godiff.FileDiff) (added, removed []domain.ManifestEntry) {
	for _, hunk := range fileDiff.Hunks {
		for _, line := range strings.Split(string(hunk.Body), "\n") {
			if line == "" {
				continue
			}
			switch line[0] {
			case '+':
				if entry, ok := domain.ParseRequirementLine(line[1:]); ok {
					added = append(added, entry)
				}
			case '-':
				if entry, ok := domain.ParseRequirementLine(line[1:]); ok {
					removed = append(removed, entry)
				}
			}
		}
	}
	return added, removed
}

// cleanDiffPath strips the conventional a/ and b/ prefixes from a diff
// header path. /dev/null (file creation/deletion) maps to the empty string.
func cleanDiffPath(name string) string {
	if name == "" || name == "/dev/null" {
		return ""
	}
	for _, prefix := range []string{"a/", "b/"} {
		if strings.HasPrefix(name, prefix) {
			return name[len(prefix):]
		}
	}
	return name
}
