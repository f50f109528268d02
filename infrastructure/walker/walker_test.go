package walker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reqdiff/domain"
	"github.com/rios0rios0/reqdiff/infrastructure/walker"
)

func defaultClassifier() *domain.PathClassifier {
	return domain.NewPathClassifier(nil, nil)
}

func TestUnifiedWalker_Walk(t *testing.T) {
	t.Parallel()

	t.Run("should group added and removed entries per file and ignore context", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := `--- a/requirements/common.txt
+++ b/requirements/common.txt
@@ -1,3 +1,3 @@
 numpy==1.26.4
-transformers==4.53.2
+transformers==4.55.0
 # trailing comment
`

		// when
		changes, advisories := walker.New().Walk(diffText, defaultClassifier())

		// then
		require.Len(t, changes, 1)
		assert.Equal(t, "requirements/common.txt", changes[0].Path)
		require.Len(t, changes[0].Added, 1)
		require.Len(t, changes[0].Removed, 1)
		assert.Equal(t, "4.55.0", changes[0].Added[0].VersionSpec)
		assert.Equal(t, "4.53.2", changes[0].Removed[0].VersionSpec)
		assert.Empty(t, advisories)
	})

	t.Run("should skip sections whose path is out of scope", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := `--- a/requirements/test.txt
+++ b/requirements/test.txt
@@ -1,1 +1,1 @@
-pytest==8.0.0
+pytest==8.2.0
`

		// when
		changes, advisories := walker.New().Walk(diffText, defaultClassifier())

		// then
		assert.Empty(t, changes)
		assert.Empty(t, advisories)
	})

	t.Run("should drop sections that touch only comments", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := `--- a/requirements/common.txt
+++ b/requirements/common.txt
@@ -1,1 +1,1 @@
-# old comment
+# new comment
`

		// when
		changes, _ := walker.New().Walk(diffText, defaultClassifier())

		// then
		assert.Empty(t, changes)
	})

	t.Run("should attribute a new file entirely to additions", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := `--- /dev/null
+++ b/requirements/tpu.txt
@@ -0,0 +1,2 @@
+torch-xla==2.8.0
+tpu-info==0.4.0
`

		// when
		changes, _ := walker.New().Walk(diffText, defaultClassifier())

		// then
		require.Len(t, changes, 1)
		assert.Equal(t, "requirements/tpu.txt", changes[0].Path)
		assert.Len(t, changes[0].Added, 2)
		assert.Empty(t, changes[0].Removed)
	})

	t.Run("should split a rename into two independent paths", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := `--- a/requirements/common.txt
+++ b/requirements/common.in
@@ -1,2 +1,2 @@
-numpy==1.26.4
-transformers==4.53.2
+numpy==1.26.4
+transformers==4.53.2
`

		// when
		changes, _ := walker.New().Walk(diffText, defaultClassifier())

		// then
		require.Len(t, changes, 2)
		assert.Equal(t, "requirements/common.txt", changes[0].Path)
		assert.Empty(t, changes[0].Added)
		assert.Len(t, changes[0].Removed, 2)
		assert.Equal(t, "requirements/common.in", changes[1].Path)
		assert.Len(t, changes[1].Added, 2)
		assert.Empty(t, changes[1].Removed)
	})

	t.Run("should degrade to an empty walk on unrecognizable input", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := "this is not a unified diff\njust some prose\n"

		// when
		changes, advisories := walker.New().Walk(diffText, defaultClassifier())

		// then
		assert.Empty(t, changes)
		require.Len(t, advisories, 1)
		assert.Equal(t, domain.AdvisoryMalformedDiffSection, advisories[0].Kind)
	})

	t.Run("should keep leading sections and flag a garbage tail", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := `--- a/requirements/common.txt
+++ b/requirements/common.txt
@@ -1,1 +1,1 @@
-transformers==4.53.2
+transformers==4.55.0
this line is not part of any diff
neither is this one
`

		// when
		changes, advisories := walker.New().Walk(diffText, defaultClassifier())

		// then
		require.Len(t, changes, 1)
		assert.Equal(t, "requirements/common.txt", changes[0].Path)
		require.Len(t, advisories, 1)
		assert.Equal(t, domain.AdvisoryMalformedDiffSection, advisories[0].Kind)
		assert.Contains(t, advisories[0].Detail, "line 6")
	})

	t.Run("should return nothing for empty input", func(t *testing.T) {
		t.Parallel()

		// when
		changes, advisories := walker.New().Walk("", defaultClassifier())

		// then
		assert.Empty(t, changes)
		assert.Empty(t, advisories)
	})

	t.Run("should yield identical output when re-walking the same text", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := `--- a/requirements/cuda.txt
+++ b/requirements/cuda.txt
@@ -1,2 +1,2 @@
-torch==2.7.1
+torch==2.8.0
 flashinfer-python==0.2.8
`
		w := walker.New()

		// when
		first, _ := w.Walk(diffText, defaultClassifier())
		second, _ := w.Walk(diffText, defaultClassifier())

		// then
		assert.Equal(t, first, second)
	})
}
