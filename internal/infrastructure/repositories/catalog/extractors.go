package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
)

const (
	dockerDir          = "docker"
	requirementsDir    = "requirements"
	cudaDockerfile     = "Dockerfile"
	rocmBaseDockerfile = "Dockerfile.rocm_base"
	pyprojectFile      = "pyproject.toml"
	epKernelsScript    = "tools/ep_kernels/install_python_libraries.sh"
	deepGEMMScript     = "tools/install_deepgemm.sh"

	commonManifest       = "common.txt"
	cudaManifest         = "cuda.txt"
	rocmManifest         = "rocm.txt"
	rocmBuildManifest    = "rocm-build.txt"
	tpuManifest          = "tpu.txt"
	testManifest         = "test.txt"
	kvConnectorsManifest = "kv_connectors.txt"

	shortRefLen = 8
)

var (
	// Matches "ARG NAME=value" with optional quoting around the value.
	dockerfileArgPattern = regexp.MustCompile(`^ARG\s+([A-Za-z_][A-Za-z0-9_]*)=(.+)$`)

	// Shell assignment forms, most specific first:
	// NAME=${NAME:-"value"}, NAME="value", NAME=value.
	defaultedVarPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=\$\{([A-Za-z_][A-Za-z0-9_]*):-"([^"]+)"}`)
	quotedVarPattern    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)="([^"]+)"`)
	plainVarPattern     = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=([^\s#]+)`)

	requiresPythonPattern = regexp.MustCompile(`^requires-python\s*=\s*">=(\d+\.\d+)`)
	imageTagPattern       = regexp.MustCompile(`:(\d+\.\d+)`)
	gccPackagePattern     = regexp.MustCompile(`gcc-(\d+)`)
	hexRefPattern         = regexp.MustCompile(`^[0-9a-f]+$`)
)

// extractFunc resolves one catalogue value from a checked-out tree. An empty
// value with a nil error means the source file exists but carries no answer.
type extractFunc func(ctx context.Context, tree repositories.SourceTree) (string, error)

// dockerfileArg returns the default value of an ARG declared in a Dockerfile
// under docker/, with surrounding quotes stripped.
func dockerfileArg(
	ctx context.Context,
	tree repositories.SourceTree,
	dockerfile string,
	argName string,
) (string, error) {
	path := dockerDir + "/" + dockerfile
	if !tree.HasFile(ctx, path) {
		return "", nil
	}

	content, err := tree.GetFileContent(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, line := range strings.Split(content, "\n") {
		matches := dockerfileArgPattern.FindStringSubmatch(strings.TrimSpace(line))
		if len(matches) == 0 || matches[1] != argName {
			continue
		}
		return strings.Trim(matches[2], `"'`), nil
	}
	return "", nil
}

// scriptVar returns the value assigned to a shell variable in a script,
// honoring the ${NAME:-"default"} idiom used by the install scripts.
func scriptVar(
	ctx context.Context,
	tree repositories.SourceTree,
	scriptPath string,
	varName string,
) (string, error) {
	if !tree.HasFile(ctx, scriptPath) {
		return "", nil
	}

	content, err := tree.GetFileContent(ctx, scriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", scriptPath, err)
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if matches := defaultedVarPattern.FindStringSubmatch(line); len(matches) > 0 &&
			matches[1] == varName && matches[2] == varName {
			return matches[3], nil
		}
		if matches := quotedVarPattern.FindStringSubmatch(line); len(matches) > 0 && matches[1] == varName {
			return matches[2], nil
		}
		if matches := plainVarPattern.FindStringSubmatch(line); len(matches) > 0 && matches[1] == varName {
			return matches[2], nil
		}
	}
	return "", nil
}

// manifestPackage returns the version declared for a package in a requirement
// manifest under requirements/. Package names compare case-insensitively.
func manifestPackage(
	ctx context.Context,
	tree repositories.SourceTree,
	manifest string,
	packageName string,
) (string, error) {
	path := requirementsDir + "/" + manifest
	if !tree.HasFile(ctx, path) {
		return "", nil
	}

	content, err := tree.GetFileContent(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, line := range strings.Split(content, "\n") {
		declaration := entities.ParseRequirementLine(line)
		if declaration != nil && strings.EqualFold(declaration.Name, packageName) {
			return declaration.Version, nil
		}
	}
	return "", nil
}

// shortenCommitRef abbreviates full git hashes to their short form and leaves
// branch or tag names untouched.
func shortenCommitRef(ref string) string {
	if len(ref) >= shortRefLen && hexRefPattern.MatchString(ref) {
		return ref[:shortRefLen]
	}
	return ref
}

// extractPythonVersion prefers the image build default over the pyproject
// floor, so "3.12" wins over ">=3.10".
func extractPythonVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	version, err := dockerfileArg(ctx, tree, cudaDockerfile, "PYTHON_VERSION")
	if err != nil || version != "" {
		return version, err
	}

	if !tree.HasFile(ctx, pyprojectFile) {
		return "", nil
	}
	content, err := tree.GetFileContent(ctx, pyprojectFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pyprojectFile, err)
	}

	for _, line := range strings.Split(content, "\n") {
		matches := requiresPythonPattern.FindStringSubmatch(strings.TrimSpace(line))
		if len(matches) > 0 {
			return matches[1], nil
		}
	}
	return "", nil
}

func extractCUDAVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	return dockerfileArg(ctx, tree, cudaDockerfile, "CUDA_VERSION")
}

// extractROCmVersion pulls the tag off the base image reference, for example
// "rocm/dev-ubuntu-22.04:7.1-complete" yields "7.1".
func extractROCmVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	baseImage, err := dockerfileArg(ctx, tree, rocmBaseDockerfile, "BASE_IMAGE")
	if err != nil || baseImage == "" {
		return "", err
	}

	matches := imageTagPattern.FindStringSubmatch(baseImage)
	if len(matches) > 0 {
		return matches[1], nil
	}
	return "", nil
}

// extractGCCVersion scans the whole Dockerfile for a gcc-NN package install.
func extractGCCVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	path := dockerDir + "/" + cudaDockerfile
	if !tree.HasFile(ctx, path) {
		return "", nil
	}

	content, err := tree.GetFileContent(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	matches := gccPackagePattern.FindStringSubmatch(content)
	if len(matches) > 0 {
		return matches[1], nil
	}
	return "", nil
}

func extractAiterRef(ctx context.Context, tree repositories.SourceTree) (string, error) {
	branch, err := dockerfileArg(ctx, tree, rocmBaseDockerfile, "AITER_BRANCH")
	return shortenCommitRef(branch), err
}

func extractFlashAttnRef(ctx context.Context, tree repositories.SourceTree) (string, error) {
	branch, err := dockerfileArg(ctx, tree, rocmBaseDockerfile, "FA_BRANCH")
	return shortenCommitRef(branch), err
}

func extractTorchCUDA(ctx context.Context, tree repositories.SourceTree) (string, error) {
	return manifestPackage(ctx, tree, cudaManifest, "torch")
}

func extractTorchROCm(ctx context.Context, tree repositories.SourceTree) (string, error) {
	version, err := manifestPackage(ctx, tree, rocmBuildManifest, "torch")
	if err != nil || version != "" {
		return version, err
	}
	return manifestPackage(ctx, tree, rocmManifest, "torch")
}

func extractTorchTPU(ctx context.Context, tree repositories.SourceTree) (string, error) {
	return manifestPackage(ctx, tree, tpuManifest, "torch")
}

func extractTransformersVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	return manifestPackage(ctx, tree, commonManifest, "transformers")
}

func extractTokenizersVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	return manifestPackage(ctx, tree, commonManifest, "tokenizers")
}

func extractCompressedTensorsVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	return manifestPackage(ctx, tree, commonManifest, "compressed-tensors")
}

func extractFlashinferVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	version, err := manifestPackage(ctx, tree, cudaManifest, "flashinfer-python")
	if err != nil || version != "" {
		return version, err
	}
	return manifestPackage(ctx, tree, cudaManifest, "flashinfer")
}

// extractNCCLVersion reads the CUDA wheel pin, which is the only place the
// nccl version is declared.
func extractNCCLVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	return manifestPackage(ctx, tree, testManifest, "nvidia-nccl-cu12")
}

func extractTritonVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	version, err := manifestPackage(ctx, tree, rocmBuildManifest, "triton")
	if err != nil || version != "" {
		return version, err
	}
	return manifestPackage(ctx, tree, testManifest, "triton")
}

func extractTPUInfoVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	version, err := manifestPackage(ctx, tree, tpuManifest, "tpu_info")
	if err != nil || version != "" {
		return version, err
	}
	return manifestPackage(ctx, tree, tpuManifest, "tpu-info")
}

func extractNVSHMEMVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	return scriptVar(ctx, tree, epKernelsScript, "NVSHMEM_VER")
}

func extractPplxKernelsRef(ctx context.Context, tree repositories.SourceTree) (string, error) {
	hash, err := scriptVar(ctx, tree, epKernelsScript, "PPLX_COMMIT_HASH")
	return shortenCommitRef(hash), err
}

func extractDeepEPRef(ctx context.Context, tree repositories.SourceTree) (string, error) {
	hash, err := scriptVar(ctx, tree, epKernelsScript, "DEEPEP_COMMIT_HASH")
	return shortenCommitRef(hash), err
}

func extractDeepGEMMRef(ctx context.Context, tree repositories.SourceTree) (string, error) {
	ref, err := scriptVar(ctx, tree, deepGEMMScript, "DEEPGEMM_GIT_REF")
	return shortenCommitRef(ref), err
}

func extractNixlVersion(ctx context.Context, tree repositories.SourceTree) (string, error) {
	version, err := manifestPackage(ctx, tree, tpuManifest, "nixl")
	if err != nil || version != "" {
		return version, err
	}
	return manifestPackage(ctx, tree, kvConnectorsManifest, "nixl")
}
