package textdiff_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/vermap/internal/infrastructure/textdiff"
)

func TestUnified(t *testing.T) {
	t.Parallel()

	t.Run("should render empty string for identical contents", func(t *testing.T) {
		t.Parallel()

		// given
		content := "torch==2.7.0\nnumpy<2.0\n"

		// when
		diff := textdiff.Unified("requirements/common.txt", content, content)

		// then
		assert.Empty(t, diff)
	})

	t.Run("should render one hunk with context for a single change", func(t *testing.T) {
		t.Parallel()

		// given
		oldContent := "a\nb\nc\nd\ne\nf\ng\n"
		newContent := "a\nb\nc\nX\ne\nf\ng\n"

		// when
		diff := textdiff.Unified("requirements/common.txt", oldContent, newContent)

		// then
		expected := "--- a/requirements/common.txt\n" +
			"+++ b/requirements/common.txt\n" +
			"@@ -1,7 +1,7 @@\n" +
			" a\n b\n c\n-d\n+X\n e\n f\n g\n"
		assert.Equal(t, expected, diff)
	})

	t.Run("should split distant changes into separate hunks", func(t *testing.T) {
		t.Parallel()

		// given
		var oldLines, newLines []string
		for i := 1; i <= 20; i++ {
			line := fmt.Sprintf("line%d", i)
			oldLines = append(oldLines, line)
			newLines = append(newLines, line)
		}
		newLines[1] = "LINE2"
		newLines[17] = "LINE18"
		oldContent := strings.Join(oldLines, "\n") + "\n"
		newContent := strings.Join(newLines, "\n") + "\n"

		// when
		diff := textdiff.Unified("requirements/test.txt", oldContent, newContent)

		// then
		assert.Equal(t, 2, strings.Count(diff, "@@ -"))
		assert.Contains(t, diff, "@@ -1,5 +1,5 @@")
		assert.Contains(t, diff, "@@ -15,6 +15,6 @@")
		assert.Contains(t, diff, "-line2\n+LINE2\n")
		assert.Contains(t, diff, "-line18\n+LINE18\n")
	})

	t.Run("should keep the file path in both headers for an added file", func(t *testing.T) {
		t.Parallel()

		// when
		diff := textdiff.Unified("requirements/nightly_torch_test.txt", "", "a\nb\n")

		// then
		expected := "--- a/requirements/nightly_torch_test.txt\n" +
			"+++ b/requirements/nightly_torch_test.txt\n" +
			"@@ -0,0 +1,2 @@\n" +
			"+a\n+b\n"
		assert.Equal(t, expected, diff)
	})

	t.Run("should render a removed file as pure deletions", func(t *testing.T) {
		t.Parallel()

		// when
		diff := textdiff.Unified("requirements/kv_connectors.txt", "a\n", "")

		// then
		expected := "--- a/requirements/kv_connectors.txt\n" +
			"+++ b/requirements/kv_connectors.txt\n" +
			"@@ -1,1 +0,0 @@\n" +
			"-a\n"
		assert.Equal(t, expected, diff)
	})
}
