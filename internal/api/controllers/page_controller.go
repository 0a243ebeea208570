package controllers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"

	"tripwise/internal/models/request_models"
	"tripwise/internal/services"
	"tripwise/internal/wizard"
	"tripwise/pkg/middleware"
	"tripwise/pkg/utils"
)

type formOptions struct {
	Budgets        []string
	Purposes       []string
	Dietary        []string
	ActivityLevels []string
	Accommodation  []string
	Interests      []string
}

var wizardOptions = formOptions{
	Budgets:        wizard.Budgets,
	Purposes:       wizard.Purposes,
	Dietary:        wizard.DietaryOptions,
	ActivityLevels: wizard.ActivityLevels,
	Accommodation:  wizard.AccommodationOptions,
	Interests:      wizard.SpecialInterestOptions,
}

type pageData struct {
	Step        int
	TotalSteps  int
	Progress    int
	Inputs      wizard.UserInputs
	Errors      []string
	Options     formOptions
	Itinerary   template.HTML
	DownloadURL string
	FileName    string
}

// PageController renders the browser wizard. Forms post back and are answered
// with a redirect to "/" on success, so a refresh never resubmits.
type PageController struct {
	wizardService services.WizardServiceInterface
	pages         *template.Template
	logger        *zap.Logger
}

func NewPageController(wizardService services.WizardServiceInterface, pages *template.Template, logger *zap.Logger) *PageController {
	return &PageController{
		wizardService: wizardService,
		pages:         pages,
		logger:        logger.Named("pages"),
	}
}

func (p *PageController) Index(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	state, err := p.wizardService.Current(ctx, sid)
	if err != nil {
		p.renderError(c, err)
		return
	}

	if state.Step != wizard.StepItinerary {
		p.render(c, http.StatusOK, state.Step, state.Inputs, nil, pageData{})
		return
	}

	state, itinerary, err := p.wizardService.Itinerary(ctx, sid)
	if err != nil {
		if state == nil {
			p.renderError(c, err)
			return
		}
		code, message := utils.StatusFor(err)
		if code >= http.StatusInternalServerError && !errors.Is(err, utils.ErrRemoteService) {
			p.logger.Error("itinerary page failed", zap.String("session_id", sid), zap.Error(err))
		}
		p.render(c, code, wizard.StepItinerary, state.Inputs, []string{message}, pageData{})
		return
	}

	p.render(c, http.StatusOK, wizard.StepItinerary, state.Inputs, nil, pageData{
		Itinerary:   utils.ItineraryHTML(itinerary.Text),
		DownloadURL: itineraryPDFPath,
		FileName:    services.PDFFileName,
	})
}

func (p *PageController) SubmitBasicInfo(c *gin.Context) {
	var req request_models.BasicInfoRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	res, err := p.wizardService.SubmitBasicInfo(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		p.submitFailed(c, err)
		return
	}
	if !res.Advanced() {
		inputs := res.Next.Inputs
		inputs.Destination = req.Destination
		inputs.StartDate = req.StartDate
		inputs.EndDate = req.EndDate
		inputs.Budget = req.Budget
		inputs.Purpose = req.Purpose
		p.render(c, http.StatusUnprocessableEntity, wizard.StepBasicInfo, inputs, res.Errors.Messages(), pageData{})
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (p *PageController) SubmitPreferences(c *gin.Context) {
	var req request_models.PreferencesRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	res, err := p.wizardService.SubmitPreferences(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		p.submitFailed(c, err)
		return
	}
	if !res.Advanced() {
		inputs := res.Next.Inputs
		inputs.DietaryPreferences = req.DietaryPreferences
		inputs.ActivityLevel = req.ActivityLevel
		inputs.AccommodationPreferences = req.AccommodationPreferences
		inputs.SpecialInterests = req.SpecialInterests
		p.render(c, http.StatusUnprocessableEntity, wizard.StepPreferences, inputs, res.Errors.Messages(), pageData{})
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// submitFailed sends a stale form (posted for a step the session already left)
// back to the current step.
func (p *PageController) submitFailed(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrStepOutOfOrder) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	p.renderError(c, err)
}

func (p *PageController) renderError(c *gin.Context, err error) {
	code, message := utils.StatusFor(err)
	p.logger.Error("page request failed", zap.Error(err), zap.String("trace_id", c.GetString(middleware.TraceIDKey)))
	c.String(code, message)
}

func (p *PageController) render(c *gin.Context, code int, step wizard.Step, inputs wizard.UserInputs, errs []string, data pageData) {
	total := int(wizard.StepItinerary)
	data.Step = int(step)
	data.TotalSteps = total
	data.Progress = int(step) * 100 / total
	if inputs.Budget == "" {
		inputs.Budget = wizard.DefaultBudget
	}
	if inputs.ActivityLevel == "" {
		inputs.ActivityLevel = wizard.DefaultActivityLevel
	}
	data.Inputs = inputs
	data.Errors = errs
	data.Options = wizardOptions

	c.Render(code, render.HTML{
		Template: p.pages,
		Name:     step.String() + ".html",
		Data:     data,
	})
}
