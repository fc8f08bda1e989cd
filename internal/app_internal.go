package internal

import (
	"github.com/rios0rios0/vermap/internal/domain/entities"
)

// AppInternal holds the wired application graph the CLI layer consumes.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (a *AppInternal) GetControllers() []entities.Controller {
	return *a.controllers
}
