package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/vermap/internal/domain/entities"
)

func TestParseRequirementLineSkips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
	}{
		{
			name: "should skip empty line",
			line: "",
		},
		{
			name: "should skip whitespace-only line",
			line: "   \t  ",
		},
		{
			name: "should skip comment line",
			line: "# via -r requirements/common.txt",
		},
		{
			name: "should skip indented via annotation",
			line: "    # via torch",
		},
		{
			name: "should skip pip option",
			line: "--extra-index-url https://download.pytorch.org/whl/cu128",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			decl := entities.ParseRequirementLine(tt.line)

			// then
			assert.Nil(t, decl)
		})
	}
}

func TestParseRequirementLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		pkg     string
		version string
	}{
		{
			name:    "should prefer lower bound over upper bound",
			line:    "torch>=2.7.0,<2.8",
			pkg:     "torch",
			version: "2.7.0",
		},
		{
			name:    "should read exact pin",
			line:    "transformers==4.55.0",
			pkg:     "transformers",
			version: "4.55.0",
		},
		{
			name:    "should keep upper-bound-only constraint verbatim",
			line:    "numpy<2.0",
			pkg:     "numpy",
			version: "<2.0",
		},
		{
			name:    "should report latest when no constraint is given",
			line:    "ninja",
			pkg:     "ninja",
			version: "latest",
		},
		{
			name:    "should strip extras from the package name",
			line:    "ray[cgraph]>=2.48.0",
			pkg:     "ray",
			version: "2.48.0",
		},
		{
			name:    "should ignore environment markers",
			line:    "setuptools>=77.0.3,<80; python_version > '3.11'",
			pkg:     "setuptools",
			version: "77.0.3",
		},
		{
			name:    "should keep local version suffix",
			line:    "torch==2.7.0+cpu",
			pkg:     "torch",
			version: "2.7.0+cpu",
		},
		{
			name:    "should shorten pinned commit hash in URL declaration",
			line:    "flashinfer-python @ git+https://github.com/flashinfer-ai/flashinfer.git@21ea1d2545f74782b91eb8c08fd503ac4c0743fc",
			pkg:     "flashinfer-python",
			version: "21ea1d25",
		},
		{
			name:    "should read semantic version embedded in wheel URL",
			line:    "torch @ https://download.pytorch.org/whl/nightly/torch-2.9.0.dev20250804-cp312.whl",
			pkg:     "torch",
			version: "2.9.0.dev20250804",
		},
		{
			name:    "should report unknown for URL without readable version",
			line:    "mypkg @ https://example.com/archive/main.tar.gz",
			pkg:     "mypkg",
			version: "unknown",
		},
		{
			name:    "should strip extras from URL declaration name",
			line:    "deep-ep[nvshmem] @ git+https://github.com/deepseek-ai/DeepEP.git@e3908bf5bd0a38ad8d5b2e687626f6d088c0672a",
			pkg:     "deep-ep",
			version: "e3908bf5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			decl := entities.ParseRequirementLine(tt.line)

			// then
			require.NotNil(t, decl)
			assert.Equal(t, tt.pkg, decl.Name)
			assert.Equal(t, tt.version, decl.Version)
		})
	}
}
