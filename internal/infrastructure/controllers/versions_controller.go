package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/vermap/internal/domain/commands"
	"github.com/rios0rios0/vermap/internal/domain/entities"
)

// VersionsController handles the "versions" subcommand (catalogue extraction).
type VersionsController struct {
	command commands.Versions
}

// NewVersionsController creates a new VersionsController.
func NewVersionsController(command commands.Versions) *VersionsController {
	return &VersionsController{command: command}
}

// GetBind returns the Cobra command metadata for the versions controller.
func (it *VersionsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "versions",
		Short: "Extract component versions at an upstream ref",
		Long: `Extract the component versions the release spreadsheet tracks
from the upstream build files at a given tag, branch, or commit.

The default output is one spreadsheet column: values in row order,
ready to paste. Use --output validation for a review table with
undetermined rows flagged, or --output csv for row,name,version lines.`,
	}
}

// Execute runs the catalogue extraction and prints the rendered report.
func (it *VersionsController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	ref, _ := cmd.Flags().GetString("ref")
	sourceName, _ := cmd.Flags().GetString("source")
	format, _ := cmd.Flags().GetString("output")
	showLabels, _ := cmd.Flags().GetBool("show-labels")
	extended, _ := cmd.Flags().GetBool("extended")

	settings, err := loadSettings(cmd)
	if err != nil {
		return
	}

	report, err := it.command.Execute(ctx, settings, commands.VersionsOptions{
		Ref:        ref,
		SourceName: sourceName,
		Format:     format,
		ShowLabels: showLabels,
		Extended:   extended,
	})
	if err != nil {
		logger.Errorf("Version extraction failed: %v", err)
		return
	}

	fmt.Println(report)
}

// AddFlags adds the versions-specific flags to the given Cobra command.
func (it *VersionsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("ref", "", "Upstream tag/branch/commit (default: newest tag)")
	cmd.Flags().String("source", "", "Source type to use (git, github)")
	cmd.Flags().String("output", "simple", "Output format (simple, validation, csv)")
	cmd.Flags().Bool("show-labels", false, "Show component names alongside values")
	cmd.Flags().Bool("extended", false, "Include the kernel pin rows past the spreadsheet block")
}
