package domain

import (
	"regexp"
	"strings"
)

// Version-spec delimiters recognized in requirement lines. Two-character
// operators must be matched before their single-character prefixes.
var (
	twoCharOperators    = []string{"==", ">=", "<=", "~=", "!="}
	singleCharOperators = []string{">", "<"}
)

var (
	// packageNamePattern validates a normalized package identifier.
	packageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*$`)

	// urlVersionPattern extracts a semantic version embedded in a URL
	// requirement (e.g. torch_xla wheels).
	urlVersionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+(?:\.dev\d+)?)`)

	// gitCommitPattern extracts a full git commit hash from a URL requirement.
	gitCommitPattern = regexp.MustCompile(`@([0-9a-f]{40})`)
)

const shortHashLen = 8

// NormalizePackageName lowercases a package identifier and collapses "_" to
// "-" (PEP 503), so that Some_Pkg and some-pkg reconcile as the same package.
func NormalizePackageName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// ParseRequirementLine parses one line of a requirements-style file into a
// ManifestEntry. The second return value is false for lines that declare no
// package: blanks, comments, pip directives (-r/-e/--*), and pip-compile
// "via" annotations.
func ParseRequirementLine(raw string) (ManifestEntry, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
		return ManifestEntry{}, false
	}

	// Environment markers and inline comments never carry the version.
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	if line == "" {
		return ManifestEntry{}, false
	}

	if strings.Contains(line, "@") && strings.Contains(line, "http") {
		return parseURLRequirement(line, raw)
	}

	name := line
	spec := ""
	if idx, opLen := firstOperator(line); idx >= 0 {
		name = strings.TrimSpace(line[:idx])
		spec = firstConstraintValue(line[idx+opLen:])
	}

	name = normalizeDeclaredName(name)
	if !isPackageName(name) {
		return ManifestEntry{}, false
	}

	return ManifestEntry{Name: name, VersionSpec: spec, RawLine: raw}, true
}

// parseURLRequirement handles "name[extras] @ https://..." lines, extracting
// the version from a pinned git commit (short form) or from a semantic
// version embedded in the URL.
func parseURLRequirement(line, raw string) (ManifestEntry, bool) {
	at := strings.Index(line, "@")
	name := normalizeDeclaredName(line[:at])
	if !isPackageName(name) {
		return ManifestEntry{}, false
	}

	spec := ""
	if m := gitCommitPattern.FindStringSubmatch(line); m != nil {
		spec = m[1][:shortHashLen]
	} else if v := urlVersionPattern.FindString(line[at+1:]); v != "" {
		spec = v
	}

	return ManifestEntry{Name: name, VersionSpec: spec, RawLine: raw}, true
}

// firstOperator returns the index and length of the earliest version-spec
// delimiter in the line, or (-1, 0) when there is none.
func firstOperator(line string) (int, int) {
	best, length := -1, 0
	for _, op := range twoCharOperators {
		if idx := strings.Index(line, op); idx >= 0 && (best < 0 || idx < best) {
			best, length = idx, len(op)
		}
	}
	for _, op := range singleCharOperators {
		if idx := strings.Index(line, op); idx >= 0 && (best < 0 || idx < best) {
			best, length = idx, len(op)
		}
	}
	return best, length
}

// firstConstraintValue returns the value of the first constraint in a
// version-spec tail, cutting multi-constraint specs like "1.0,<2.0" at the
// comma.
func firstConstraintValue(tail string) string {
	if idx := strings.Index(tail, ","); idx >= 0 {
		tail = tail[:idx]
	}
	return strings.TrimSpace(tail)
}

// normalizeDeclaredName strips an extras suffix ("[cuda]") and normalizes
// the remaining identifier.
func normalizeDeclaredName(name string) string {
	if idx := strings.Index(name, "["); idx >= 0 {
		name = name[:idx]
	}
	return NormalizePackageName(name)
}

// isPackageName reports whether a normalized identifier is a real package
// declaration. "via" is the pip-compile provenance annotation, not a package.
func isPackageName(name string) bool {
	return name != "" && name != "via" && packageNamePattern.MatchString(name)
}
