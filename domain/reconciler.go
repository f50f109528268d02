package domain

import (
	"fmt"
)

// ReconcileOptions holds the caller-facing switches for reconciliation.
type ReconcileOptions struct {
	// IncludeRemovals keeps REMOVE records in the final set. Removals are
	// not actionable by default, so they are dropped unless opted in.
	IncludeRemovals bool
}

// Reconciler merges per-file added/removed manifest entries into one
// package-level change record per normalized name. It exclusively owns the
// construction of record sets.
type Reconciler struct{}

// NewReconciler creates a new reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// observation is one file's view of a single package: its version before
// and/or after the change in that file.
type observation struct {
	name string
	path string
	old  *string
	new  *string
}

// pending accumulates observations for one package across files until the
// final classification is derived.
type pending struct {
	name  string
	old   *string
	new   *string
	files []string
}

// Reconcile folds the per-file change sequence into the global record set,
// keyed by normalized package name and ordered by first observation.
//
// The net change type is derived from the merged before/after versions:
// a package with no before-version is NEW, one with no after-version is
// REMOVE, and one with both is an UPDATE. Equal before/after versions drop
// the record as having no externally-visible effect, which makes a rename
// (removals on the old path, identical additions on the new path) cancel
// out and lets UPDATE dominate NEW and REMOVE when files disagree.
func (r *Reconciler) Reconcile(changes []FileChange, opts ReconcileOptions) (*RecordSet, []Advisory) {
	var order []string
	byName := make(map[string]*pending)
	var advisories []Advisory

	for _, fc := range changes {
		for _, obs := range observeFile(fc) {
			rec, ok := byName[obs.name]
			if !ok {
				rec = &pending{name: obs.name}
				byName[obs.name] = rec
				order = append(order, obs.name)
			}

			if obs.old != nil {
				rec.old = obs.old
			}
			if obs.new != nil {
				// Later-processed files win on conflicting new versions;
				// divergence is a data-quality condition, not fatal.
				if rec.new != nil && *rec.new != *obs.new {
					advisories = append(advisories, Advisory{
						Kind:    AdvisoryAmbiguousVersion,
						Package: obs.name,
						Path:    obs.path,
						Detail: fmt.Sprintf(
							"new version %q from %s replaces earlier %q",
							*obs.new, obs.path, *rec.new,
						),
					})
				}
				rec.new = obs.new
			}

			rec.files = appendPath(rec.files, obs.path)
		}
	}

	set := &RecordSet{}
	for _, name := range order {
		if record, keep := finalize(byName[name], opts); keep {
			set.records = append(set.records, record)
		}
	}
	return set, advisories
}

// observeFile pairs entries with the same normalized name appearing in both
// the removed and added sets of one file (an in-file update), and treats
// unmatched entries as file-local additions or removals.
func observeFile(fc FileChange) []observation {
	var order []string
	seen := make(map[string]bool)
	oldVersions := make(map[string]string)
	newVersions := make(map[string]string)

	for _, entry := range fc.Removed {
		if !seen[entry.Name] {
			seen[entry.Name] = true
			order = append(order, entry.Name)
		}
		if _, dup := oldVersions[entry.Name]; !dup {
			oldVersions[entry.Name] = declaredVersion(entry)
		}
	}
	for _, entry := range fc.Added {
		if !seen[entry.Name] {
			seen[entry.Name] = true
			order = append(order, entry.Name)
		}
		if _, dup := newVersions[entry.Name]; !dup {
			newVersions[entry.Name] = declaredVersion(entry)
		}
	}

	observations := make([]observation, 0, len(order))
	for _, name := range order {
		obs := observation{name: name, path: fc.Path}
		if v, ok := oldVersions[name]; ok {
			obs.old = &v
		}
		if v, ok := newVersions[name]; ok {
			obs.new = &v
		}
		observations = append(observations, obs)
	}
	return observations
}

// declaredVersion maps an unpinned declaration to the "latest" sentinel.
func declaredVersion(entry ManifestEntry) string {
	if entry.VersionSpec == "" {
		return VersionLatest
	}
	return entry.VersionSpec
}

// finalize derives the record for one package, or drops it when there is no
// net change (or it is an excluded removal).
func finalize(rec *pending, opts ReconcileOptions) (PackageChange, bool) {
	switch {
	case rec.old == nil && rec.new == nil:
		return PackageChange{}, false
	case rec.old == nil:
		return PackageChange{
			Name:       rec.name,
			OldVersion: VersionNone,
			NewVersion: *rec.new,
			Type:       ChangeNew,
			Files:      rec.files,
		}, true
	case rec.new == nil:
		if !opts.IncludeRemovals {
			return PackageChange{}, false
		}
		return PackageChange{
			Name:       rec.name,
			OldVersion: *rec.old,
			NewVersion: VersionRemoved,
			Type:       ChangeRemove,
			Files:      rec.files,
		}, true
	case *rec.old == *rec.new:
		return PackageChange{}, false
	default:
		return PackageChange{
			Name:       rec.name,
			OldVersion: *rec.old,
			NewVersion: *rec.new,
			Type:       ChangeUpdate,
			Files:      rec.files,
		}, true
	}
}

// appendPath adds a path to the provenance list, skipping duplicates while
// preserving insertion order.
func appendPath(files []string, path string) []string {
	for _, existing := range files {
		if existing == path {
			return files
		}
	}
	return append(files, path)
}
