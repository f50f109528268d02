package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// SnapshotSource renders two directory snapshots of manifest files as
// unified-diff text. Every file that differs between the snapshots becomes
// one complete-replacement hunk: all old lines removed, all new lines added.
// Unchanged packages then cancel out during reconciliation, so only real
// transitions survive.
type SnapshotSource struct {
	OldDir string
	NewDir string
}

// NewSnapshotSource creates a diff source comparing two directory trees.
func NewSnapshotSource(oldDir, newDir string) *SnapshotSource {
	return &SnapshotSource{OldDir: oldDir, NewDir: newDir}
}

// Name returns the source identifier.
func (s *SnapshotSource) Name() string { return "snapshot" }

// Diff renders the snapshot comparison as unified-diff text.
func (s *SnapshotSource) Diff(_ context.Context) (string, error) {
	paths, err := relativePathUnion(s.OldDir, s.NewDir)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, rel := range paths {
		oldContent, oldExists, readErr := readIfExists(filepath.Join(s.OldDir, rel))
		if readErr != nil {
			return "", readErr
		}
		newContent, newExists, readErr := readIfExists(filepath.Join(s.NewDir, rel))
		if readErr != nil {
			return "", readErr
		}

		if oldExists && newExists && oldContent == newContent {
			continue
		}

		logger.Debugf("Snapshot difference in %q", rel)
		renderFileDiff(&b, rel, oldContent, newContent, oldExists, newExists)
	}
	return b.String(), nil
}

// relativePathUnion walks both snapshot directories and returns the sorted
// union of regular-file paths relative to their roots.
func relativePathUnion(oldDir, newDir string) ([]string, error) {
	seen := make(map[string]bool)
	for _, dir := range []string{oldDir, newDir} {
		if _, statErr := os.Stat(dir); statErr != nil {
			return nil, fmt.Errorf("failed to read snapshot directory %q: %w", dir, statErr)
		}
		walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, relErr := filepath.Rel(dir, p)
			if relErr != nil {
				return relErr
			}
			seen[filepath.ToSlash(rel)] = true
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("failed to walk snapshot directory %q: %w", dir, walkErr)
		}
	}

	paths := make([]string, 0, len(seen))
	for rel := range seen {
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	return paths, nil
}

func readIfExists(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read snapshot file %q: %w", path, err)
	}
	return string(data), true, nil
}

// renderFileDiff writes one file's comparison as a single unified hunk that
// removes every old line and adds every new line.
func renderFileDiff(b *strings.Builder, rel, oldContent, newContent string, oldExists, newExists bool) {
	oldLines := splitLines(oldContent)
	newLines := splitLines(newContent)
	if !oldExists {
		oldLines = nil
	}
	if !newExists {
		newLines = nil
	}

	oldName, newName := "a/"+rel, "b/"+rel
	oldStart, newStart := 1, 1
	if !oldExists {
		oldName = "/dev/null"
		oldStart = 0
	}
	if !newExists {
		newName = "/dev/null"
		newStart = 0
	}
	if len(oldLines) == 0 {
		oldStart = 0
	}
	if len(newLines) == 0 {
		newStart = 0
	}

	fmt.Fprintf(b, "--- %s\n", oldName)
	fmt.Fprintf(b, "+++ %s\n", newName)
	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", oldStart, len(oldLines), newStart, len(newLines))
	for _, line := range oldLines {
		fmt.Fprintf(b, "-%s\n", line)
	}
	for _, line := range newLines {
		fmt.Fprintf(b, "+%s\n", line)
	}
}

// splitLines splits file content into lines, dropping the trailing empty
// element produced by a final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
