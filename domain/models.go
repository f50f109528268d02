package domain

// ChangeType classifies the net externally-visible effect of a package change.
type ChangeType string

const (
	ChangeNew    ChangeType = "NEW"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeRemove ChangeType = "REMOVE"
)

// Sentinel version strings used when one side of a transition does not exist.
const (
	VersionNone    = "N/A"     // package was not declared before the change
	VersionRemoved = "REMOVED" // package is no longer declared after the change
	VersionLatest  = "latest"  // declared without a pinned version
)

// ManifestEntry is one declared dependency line from a requirements-style file.
type ManifestEntry struct {
	Name        string // normalized package identifier (lowercase, "_" -> "-")
	VersionSpec string // version constraint value; empty when unpinned
	RawLine     string // original text, preserved for diagnostics
}

// FileChange holds the added/removed manifest entries for one file path
// within a diff. It is created once per file section and never mutated
// after the section ends.
type FileChange struct {
	Path    string
	Added   []ManifestEntry
	Removed []ManifestEntry
}

// PackageChange is the unit the rest of the system consumes: one record per
// distinct package, with aggregated file provenance.
type PackageChange struct {
	Name       string
	OldVersion string
	NewVersion string
	Type       ChangeType
	Files      []string // deduplicated, insertion order preserved
}

// AdvisoryKind identifies a non-fatal condition observed during extraction.
type AdvisoryKind string

const (
	AdvisoryMalformedDiffSection AdvisoryKind = "MalformedDiffSection"
	AdvisoryAmbiguousVersion     AdvisoryKind = "AmbiguousVersionReconciliation"
)

// Advisory is a non-fatal data-quality note surfaced to the caller so it can
// be shown alongside a preview. Advisories never abort extraction.
type Advisory struct {
	Kind    AdvisoryKind
	Package string // affected package name, when known
	Path    string // affected file path, when known
	Detail  string
}

// RecordSet is the reconciled output: one PackageChange per normalized
// package name, ordered by first observation in the diff. Only the
// Reconciler constructs and mutates record sets; consumers get copies.
type RecordSet struct {
	records []PackageChange
}

// Len returns the number of records in the set.
func (s *RecordSet) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in first-observed diff order.
func (s *RecordSet) Records() []PackageChange {
	out := make([]PackageChange, len(s.records))
	for i, rec := range s.records {
		out[i] = rec
		out[i].Files = append([]string(nil), rec.Files...)
	}
	return out
}

// Get returns the record for a normalized package name, if present.
func (s *RecordSet) Get(name string) (PackageChange, bool) {
	for _, rec := range s.records {
		if rec.Name == name {
			rec.Files = append([]string(nil), rec.Files...)
			return rec, true
		}
	}
	return PackageChange{}, false
}
