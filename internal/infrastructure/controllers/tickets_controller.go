package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/vermap/internal/domain/commands"
	"github.com/rios0rios0/vermap/internal/domain/entities"
)

// TicketsController handles the "tickets" subcommand (batch submission).
type TicketsController struct {
	command commands.Tickets
}

// NewTicketsController creates a new TicketsController.
func NewTicketsController(command commands.Tickets) *TicketsController {
	return &TicketsController{command: command}
}

// GetBind returns the Cobra command metadata for the tickets controller.
func (it *TicketsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "tickets",
		Short: "Submit drafted tickets to the issue tracker",
		Long: `Load the drafted ticket files, show a preview table, and submit
them to the configured tracker.

Submissions are a dry run unless --no-dry-run is set, so the default
never touches the tracker.`,
	}
}

// Execute previews the drafted tickets and submits them unless preview-only.
func (it *TicketsController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	ticketsDir, _ := cmd.Flags().GetString("tickets-dir")
	packageName, _ := cmd.Flags().GetString("package")
	previewOnly, _ := cmd.Flags().GetBool("preview-only")
	noDryRun, _ := cmd.Flags().GetBool("no-dry-run")

	settings, err := loadSettings(cmd)
	if err != nil {
		return
	}

	opts := commands.TicketsOptions{
		TicketsDir:  ticketsDir,
		PackageName: packageName,
		DryRun:      !noDryRun,
	}

	tickets, err := it.command.Load(settings, opts)
	if err != nil {
		logger.Errorf("Failed to load tickets: %v", err)
		return
	}
	if len(tickets) == 0 {
		logger.Warn("No tickets found")
		return
	}

	fmt.Println(entities.RenderTicketPreview(tickets))

	if previewOnly {
		return
	}

	summary, err := it.command.Submit(ctx, settings, tickets, opts)
	if err != nil {
		logger.Errorf("Submission failed: %v", err)
		return
	}

	logSummary(summary)
}

// AddFlags adds the tickets-specific flags to the given Cobra command.
func (it *TicketsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("tickets-dir", "", "Directory containing ticket drafts (default from config)")
	cmd.Flags().String("package", "", "Only process this package")
	cmd.Flags().Bool("preview-only", false, "Only show the preview, do not submit")
	cmd.Flags().Bool("no-dry-run", false, "Actually create tracker tickets")
}

func logSummary(summary *commands.SubmitSummary) {
	logger.Infof("Successfully created: %d tickets", len(summary.Created))
	logger.Infof("Failed to create: %d tickets", len(summary.Failed))

	for _, created := range summary.Created {
		logger.Infof("  %s: %s", created.Package, created.Key)
	}
	for _, failed := range summary.Failed {
		logger.Errorf("  %s: %s", failed.Package, failed.Reason)
	}
}
