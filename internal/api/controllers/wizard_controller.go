package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/services"
	"tripwise/internal/wizard"
	"tripwise/pkg/middleware"
	"tripwise/pkg/utils"
)

const itineraryPDFPath = "/api/wizard/itinerary.pdf"

type WizardController struct {
	wizardService services.WizardServiceInterface
}

func NewWizardController(wizardService services.WizardServiceInterface) *WizardController {
	return &WizardController{
		wizardService: wizardService,
	}
}

// GetState godoc
// @Summary Current wizard state
// @Description Returns the current step and the inputs collected so far
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/wizard [get]
func (w *WizardController) GetState(c *gin.Context) {
	state, err := w.wizardService.Current(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewWizardStateResponse(state), "Wizard state fetched successfully")
}

// SubmitBasicInfo godoc
// @Summary Continue to Preferences
// @Description Validates destination, dates, budget and purpose and advances to step 2
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body request_models.BasicInfoRequest true "Basic trip information"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /api/wizard/basic [post]
func (w *WizardController) SubmitBasicInfo(c *gin.Context) {
	var req request_models.BasicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	res, err := w.wizardService.SubmitBasicInfo(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	respondStep(c, res, "Basic information saved")
}

// SubmitPreferences godoc
// @Summary Generate Itinerary
// @Description Validates the travel preferences and advances to step 3
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body request_models.PreferencesRequest true "Travel preferences"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /api/wizard/preferences [post]
func (w *WizardController) SubmitPreferences(c *gin.Context) {
	var req request_models.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	res, err := w.wizardService.SubmitPreferences(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	respondStep(c, res, "Preferences saved")
}

// GetItinerary godoc
// @Summary Itinerary for the current session
// @Description Generates the itinerary on first view and serves the stored one afterwards
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/wizard/itinerary [get]
func (w *WizardController) GetItinerary(c *gin.Context) {
	state, itinerary, err := w.wizardService.Itinerary(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ItineraryResponse{
		Wizard:      response_models.NewWizardStateResponse(state),
		Itinerary:   itinerary.Text,
		Provider:    itinerary.Provider,
		Model:       itinerary.Model,
		ArchiveID:   itinerary.ArchiveID,
		DownloadURL: itineraryPDFPath,
		FileName:    services.PDFFileName,
	}, "Itinerary generated successfully")
}

// DownloadItinerary godoc
// @Summary Download Itinerary as PDF
// @Tags Wizard
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/wizard/itinerary.pdf [get]
func (w *WizardController) DownloadItinerary(c *gin.Context) {
	pdf, err := w.wizardService.ItineraryPDF(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	sendPDF(c, pdf)
}

func respondStep(c *gin.Context, res wizard.Result, message string) {
	body := response_models.NewWizardStateResponse(&res.Next)
	if !res.Advanced() {
		utils.RespondValidation(c, res.Errors, body)
		return
	}
	utils.RespondSuccess(c, body, message)
}

func sendPDF(c *gin.Context, pdf []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.PDFFileName))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
