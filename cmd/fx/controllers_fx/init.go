package controllers_fx

import (
	"html/template"

	"go.uber.org/fx"

	"tripwise/internal/api/controllers"
	"tripwise/internal/api/views"
)

var Module = fx.Options(
	fx.Provide(provideTemplates),
	fx.Provide(controllers.NewWizardController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewPageController))

func provideTemplates() (*template.Template, error) {
	return views.Templates()
}
