package controllers

import (
	"github.com/rios0rios0/vermap/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewVersionsController); err != nil {
		return err
	}
	if err := container.Provide(NewDiffController); err != nil {
		return err
	}
	if err := container.Provide(NewTicketsController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	versionsController *VersionsController,
	diffController *DiffController,
	ticketsController *TicketsController,
) *[]entities.Controller {
	return &[]entities.Controller{
		versionsController,
		diffController,
		ticketsController,
	}
}
