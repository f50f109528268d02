package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/reqdiff/domain"
)

// PackageChangeBuilder helps create test package changes with a fluent interface.
type PackageChangeBuilder struct {
	*testkit.BaseBuilder
	name       string
	oldVersion string
	newVersion string
	changeType domain.ChangeType
	files      []string
}

// NewPackageChangeBuilder creates a new builder with sensible defaults.
func NewPackageChangeBuilder() *PackageChangeBuilder {
	return &PackageChangeBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "transformers",
		oldVersion:  "4.53.2",
		newVersion:  "4.55.0",
		changeType:  domain.ChangeUpdate,
		files:       []string{"requirements/common.txt"},
	}
}

// WithName sets the package name.
func (b *PackageChangeBuilder) WithName(name string) *PackageChangeBuilder {
	b.name = name
	return b
}

// WithOldVersion sets the old version.
func (b *PackageChangeBuilder) WithOldVersion(version string) *PackageChangeBuilder {
	b.oldVersion = version
	return b
}

// WithNewVersion sets the new version.
func (b *PackageChangeBuilder) WithNewVersion(version string) *PackageChangeBuilder {
	b.newVersion = version
	return b
}

// WithChangeType sets the change type.
func (b *PackageChangeBuilder) WithChangeType(changeType domain.ChangeType) *PackageChangeBuilder {
	b.changeType = changeType
	return b
}

// WithFiles sets the file provenance list.
func (b *PackageChangeBuilder) WithFiles(files ...string) *PackageChangeBuilder {
	b.files = files
	return b
}

// Build creates the package change (satisfies testkit.Builder interface).
func (b *PackageChangeBuilder) Build() interface{} {
	return b.BuildPackageChange()
}

// BuildPackageChange creates the package change with a concrete return type.
func (b *PackageChangeBuilder) BuildPackageChange() domain.PackageChange {
	return domain.PackageChange{
		Name:       b.name,
		OldVersion: b.oldVersion,
		NewVersion: b.newVersion,
		Type:       b.changeType,
		Files:      append([]string(nil), b.files...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageChangeBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "transformers"
	b.oldVersion = "4.53.2"
	b.newVersion = "4.55.0"
	b.changeType = domain.ChangeUpdate
	b.files = []string{"requirements/common.txt"}
	return b
}

// Clone creates a deep copy of the PackageChangeBuilder.
func (b *PackageChangeBuilder) Clone() testkit.Builder {
	return &PackageChangeBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		oldVersion:  b.oldVersion,
		newVersion:  b.newVersion,
		changeType:  b.changeType,
		files:       append([]string(nil), b.files...),
	}
}
