package catalog

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
)

// catalogRow describes one spreadsheet row. Rows either carry a fixed value
// (no extractor) or an extractor whose failures degrade to the fallback.
type catalogRow struct {
	slot     int
	label    string
	fixed    string
	fallback string
	extract  extractFunc
}

//nolint:exhaustruct // Fixed and merged rows only carry the fields they need
func catalogRows() []catalogRow {
	return []catalogRow{
		{slot: 16, label: "python", extract: extractPythonVersion, fallback: entities.PlaceholderTBD},
		{slot: 17, label: "RHEL", fixed: entities.PlaceholderTBD},
		{slot: 18, label: "gcc [specific to Spyre]", extract: extractGCCVersion, fallback: entities.PlaceholderTBD},
		{slot: 19, label: "CUDA", extract: extractCUDAVersion, fallback: entities.PlaceholderTBD},
		{slot: 20, label: "ROCM", extract: extractROCmVersion, fallback: entities.PlaceholderTBD},
		{slot: 21, label: "Spyre x86 plugin", fixed: entities.PlaceholderSpyre},
		{slot: 22, label: "Spyre s390x plugin", fixed: entities.PlaceholderSpyre},
		{slot: 23, label: "Spyre ppc64le plugin", fixed: entities.PlaceholderSpyre},
		{slot: 24, label: entities.MergedCellLabel},
		{slot: 25, label: "torch [CUDA]", extract: extractTorchCUDA, fallback: entities.PlaceholderTBD},
		{slot: 26, label: "torch [ROCM]", extract: extractTorchROCm, fallback: entities.PlaceholderTBD},
		{slot: 27, label: "torch [TPU]", extract: extractTorchTPU, fallback: entities.PlaceholderTPU},
		{slot: 28, label: "torch [Spyre]", fixed: entities.PlaceholderSpyre},
		{slot: 29, label: entities.MergedCellLabel},
		{slot: 30, label: "aiter [ROCM]", extract: extractAiterRef, fallback: entities.PlaceholderTBD},
		{
			slot:     31,
			label:    "compressed-tensors [CUDA, ROCM, TPU, Spyre]",
			extract:  extractCompressedTensorsVersion,
			fallback: entities.PlaceholderTBD,
		},
		{slot: 32, label: "flashinfer [CUDA]", extract: extractFlashinferVersion, fallback: entities.PlaceholderTBD},
		{slot: 33, label: "flash_attn [ROCM]", extract: extractFlashAttnRef, fallback: entities.PlaceholderTBD},
		{slot: 34, label: "nccl", extract: extractNCCLVersion, fallback: entities.PlaceholderTBD},
		{slot: 35, label: "nvshmem", extract: extractNVSHMEMVersion, fallback: entities.PlaceholderTBD},
		{
			slot:     36,
			label:    "tokenizers [CUDA, ROCM, TPU from 3.2.1]",
			extract:  extractTokenizersVersion,
			fallback: entities.PlaceholderTBD,
		},
		{slot: 37, label: "tokenizers [Spyre]", fixed: entities.PlaceholderSpyre},
		{slot: 38, label: "tpu-info [TPU]", extract: extractTPUInfoVersion, fallback: entities.PlaceholderTPU},
		{
			slot:     39,
			label:    "transformers [CUDA, ROCM, TPU from 3.2.1]",
			extract:  extractTransformersVersion,
			fallback: entities.PlaceholderTBD,
		},
		{slot: 40, label: "transformers [Spyre]", fixed: entities.PlaceholderSpyre},
		{
			slot:     41,
			label:    "triton [CUDA, ROCM,TPU from 3.2.1]",
			extract:  extractTritonVersion,
			fallback: entities.PlaceholderTBD,
		},
		{slot: 42, label: "triton [Spyre]", fixed: entities.PlaceholderSpyre},
		{slot: 43, label: "vllm-tgis-adapter [CUDA, ROCM, Spyre]", fixed: entities.PlaceholderTBD},
	}
}

//nolint:exhaustruct // Fixed and merged rows only carry the fields they need
func extendedRows() []catalogRow {
	return []catalogRow{
		{slot: 44, label: entities.MergedCellLabel},
		{slot: 45, label: "pplx-kernels", extract: extractPplxKernelsRef, fallback: entities.PlaceholderTBD},
		{slot: 46, label: "DeepEP", extract: extractDeepEPRef, fallback: entities.PlaceholderTBD},
		{slot: 47, label: "DeepGEMM", extract: extractDeepGEMMRef, fallback: entities.PlaceholderTBD},
		{slot: 48, label: "nixl", extract: extractNixlVersion, fallback: entities.PlaceholderTBD},
	}
}

// ComponentCatalogRepository implements repositories.CatalogRepository over
// the fixed spreadsheet row table.
type ComponentCatalogRepository struct{}

// NewComponentCatalogRepository creates a resolver for the component catalogue.
func NewComponentCatalogRepository() *ComponentCatalogRepository {
	return &ComponentCatalogRepository{}
}

// ResolveAll resolves every catalogue row against the tree. Extraction
// failures never abort the run; the affected rows fall back to their
// placeholder and the cause is logged.
func (r *ComponentCatalogRepository) ResolveAll(
	ctx context.Context,
	tree repositories.SourceTree,
	opts entities.CatalogOptions,
) []entities.ComponentEntry {
	rows := catalogRows()
	if opts.Extended {
		rows = append(rows, extendedRows()...)
	}

	components := make([]entities.ComponentEntry, 0, len(rows))
	for _, row := range rows {
		components = append(components, entities.ComponentEntry{
			Slot:  row.slot,
			Label: row.label,
			Value: r.resolve(ctx, tree, row),
		})
	}
	return components
}

func (r *ComponentCatalogRepository) resolve(
	ctx context.Context,
	tree repositories.SourceTree,
	row catalogRow,
) string {
	if row.extract == nil {
		return row.fixed
	}

	value, err := row.extract(ctx, tree)
	if err != nil {
		logger.Warnf("[catalog] Failed to extract %s: %v", row.label, err)
		return row.fallback
	}
	if value == "" {
		return row.fallback
	}
	return value
}
