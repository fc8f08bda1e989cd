package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/vermap/internal/domain/commands"
	"github.com/rios0rios0/vermap/internal/domain/entities"
)

// DiffController handles the "diff" subcommand (manifest reconciliation).
type DiffController struct {
	command commands.Diff
}

// NewDiffController creates a new DiffController.
func NewDiffController(command commands.Diff) *DiffController {
	return &DiffController{command: command}
}

// GetBind returns the Cobra command metadata for the diff controller.
func (it *DiffController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "diff",
		Short: "Reconcile manifest changes into ticket drafts",
		Long: `Reconcile requirement manifest changes between two upstream refs,
or from a prepared unified diff, into per-package change records,
and write one ticket draft per changed package.`,
	}
}

// Execute runs the reconciliation and logs the resulting change set.
func (it *DiffController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	diffFile, _ := cmd.Flags().GetString("diff-file")
	fromRef, _ := cmd.Flags().GetString("from-ref")
	toRef, _ := cmd.Flags().GetString("to-ref")
	ticketsDir, _ := cmd.Flags().GetString("tickets-dir")
	sourceName, _ := cmd.Flags().GetString("source")

	settings, err := loadSettings(cmd)
	if err != nil {
		return
	}

	tickets, err := it.command.Execute(ctx, settings, commands.DiffOptions{
		DiffFile:   diffFile,
		FromRef:    fromRef,
		ToRef:      toRef,
		TicketsDir: ticketsDir,
		SourceName: sourceName,
	})
	if err != nil {
		logger.Errorf("Diff failed: %v", err)
		return
	}

	for _, ticket := range tickets {
		oldVersion := ticket.OldVersion
		if oldVersion == "" {
			oldVersion = "N/A"
		}
		newVersion := ticket.NewVersion
		if newVersion == "" {
			newVersion = "N/A"
		}
		logger.Infof("  %s: %s -> %s", ticket.PackageName, oldVersion, newVersion)
	}
}

// AddFlags adds the diff-specific flags to the given Cobra command.
func (it *DiffController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("diff-file", "", "Path to a prepared unified diff")
	cmd.Flags().String("from-ref", "", "Baseline upstream ref")
	cmd.Flags().String("to-ref", "", "Target upstream ref")
	cmd.Flags().String("tickets-dir", "", "Directory for ticket drafts (default from config)")
	cmd.Flags().String("source", "", "Source type to use (git, github)")
}
