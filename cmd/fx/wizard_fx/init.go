package wizard_fx

import (
	"go.uber.org/fx"

	"tripwise/internal/services"
	"tripwise/internal/wizard"
)

var Module = fx.Provide(
	provideStepController,
	services.NewWizardService,
)

func provideStepController() *wizard.Controller {
	return wizard.NewController()
}
