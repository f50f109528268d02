// Package source provides the diff-producing inputs fed to the extractor:
// literal diff files, directory snapshots, and local git repositories.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileSource reads unified-diff text from a file on disk, or from stdin when
// the path is "-" or empty.
type FileSource struct {
	Path string
}

// NewFileSource creates a diff source backed by a file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name returns the source identifier.
func (s *FileSource) Name() string { return "file" }

// Diff returns the raw diff text.
func (s *FileSource) Diff(_ context.Context) (string, error) {
	if s.Path == "" || s.Path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read diff from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read diff file %q: %w", s.Path, err)
	}
	return string(data), nil
}
