package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reqdiff/domain"
	"github.com/rios0rios0/reqdiff/infrastructure/report"
	"github.com/rios0rios0/reqdiff/test/domain/entitybuilders"
)

func TestRenderPreview(t *testing.T) {
	t.Parallel()

	t.Run("should render one row per record in order", func(t *testing.T) {
		t.Parallel()

		// given
		records := []domain.PackageChange{
			entitybuilders.NewPackageChangeBuilder().BuildPackageChange(),
			entitybuilders.NewPackageChangeBuilder().
				WithName("setproctitle").
				WithOldVersion(domain.VersionNone).
				WithNewVersion(domain.VersionLatest).
				WithChangeType(domain.ChangeNew).
				BuildPackageChange(),
		}
		var buf bytes.Buffer

		// when
		report.RenderPreview(&buf, records, nil)

		// then
		out := buf.String()
		assert.Contains(t, out, "Package")
		assert.Contains(t, out, "transformers")
		assert.Contains(t, out, "setproctitle")
		assert.Contains(t, out, "Total changes: 2")
		transformersIdx := strings.Index(out, "transformers")
		setproctitleIdx := strings.Index(out, "setproctitle")
		assert.Less(t, transformersIdx, setproctitleIdx)
	})

	t.Run("should truncate long file lists", func(t *testing.T) {
		t.Parallel()

		// given
		rec := entitybuilders.NewPackageChangeBuilder().
			WithFiles("requirements/common.txt", "requirements/cuda.txt", "requirements/rocm.txt").
			BuildPackageChange()
		var buf bytes.Buffer

		// when
		report.RenderPreview(&buf, []domain.PackageChange{rec}, nil)

		// then
		assert.Contains(t, buf.String(), "(+1 more)")
		assert.NotContains(t, buf.String(), "requirements/rocm.txt")
	})

	t.Run("should mark semantic downgrades", func(t *testing.T) {
		t.Parallel()

		// given
		rec := entitybuilders.NewPackageChangeBuilder().
			WithOldVersion("4.55.0").
			WithNewVersion("4.53.2").
			BuildPackageChange()
		var buf bytes.Buffer

		// when
		report.RenderPreview(&buf, []domain.PackageChange{rec}, nil)

		// then
		assert.Contains(t, buf.String(), "(downgrade)")
	})

	t.Run("should append advisories after the table", func(t *testing.T) {
		t.Parallel()

		// given
		advisories := []domain.Advisory{{
			Kind:    domain.AdvisoryAmbiguousVersion,
			Package: "ray",
			Detail:  "conflicting new versions",
		}}
		var buf bytes.Buffer

		// when
		report.RenderPreview(&buf, nil, advisories)

		// then
		assert.Contains(t, buf.String(), "advisory: AmbiguousVersionReconciliation [ray]: conflicting new versions")
	})
}

func TestRenderYAML(t *testing.T) {
	t.Parallel()

	t.Run("should serialize the five record fields", func(t *testing.T) {
		t.Parallel()

		// given
		records := []domain.PackageChange{
			entitybuilders.NewPackageChangeBuilder().BuildPackageChange(),
		}
		var buf bytes.Buffer

		// when
		err := report.RenderYAML(&buf, records)

		// then
		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "name: transformers")
		assert.Contains(t, out, `old_version: 4.53.2`)
		assert.Contains(t, out, `new_version: 4.55.0`)
		assert.Contains(t, out, "change_type: UPDATE")
		assert.Contains(t, out, "requirements/common.txt")
	})
}
