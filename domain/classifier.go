package domain

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	logger "github.com/sirupsen/logrus"
)

// DefaultAllowedManifests returns the default closed allow-list of production
// requirement file basenames, as doublestar patterns.
func DefaultAllowedManifests() []string {
	return []string{"{common,build,cuda,rocm,tpu}.{txt,in}"}
}

// DefaultExcludedPrefixes returns the default basename prefixes that mark a
// manifest file as out of scope (test/nightly/cpu variants).
func DefaultExcludedPrefixes() []string {
	return []string{"test", "nightly", "cpu"}
}

// PathClassifier decides whether a changed file path is in scope for
// extraction. It is a pure function of its configuration: exclusion prefixes
// are checked first (so exclusion always wins on conflict), then the closed
// allow-list. Anything unmatched is excluded; unrecognized manifest files
// never silently generate records.
type PathClassifier struct {
	allowed          []string
	excludedPrefixes []string
}

// NewPathClassifier creates a classifier from basename allow patterns and
// exclusion prefixes. Empty arguments fall back to the defaults.
func NewPathClassifier(allowed, excludedPrefixes []string) *PathClassifier {
	if len(allowed) == 0 {
		allowed = DefaultAllowedManifests()
	}
	if len(excludedPrefixes) == 0 {
		excludedPrefixes = DefaultExcludedPrefixes()
	}
	return &PathClassifier{
		allowed:          append([]string(nil), allowed...),
		excludedPrefixes: append([]string(nil), excludedPrefixes...),
	}
}

// Included reports whether the given file path is in scope. Matching is done
// on the basename only, so the directory prefix stays flexible.
func (c *PathClassifier) Included(filePath string) bool {
	if filePath == "" {
		return false
	}
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))

	for _, prefix := range c.excludedPrefixes {
		if strings.HasPrefix(base, prefix) {
			return false
		}
	}

	for _, pattern := range c.allowed {
		matched, err := doublestar.Match(pattern, base)
		if err != nil {
			logger.Warnf("Invalid manifest pattern %q: %v", pattern, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
