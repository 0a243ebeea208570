package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/models/response_models"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

// ItineraryController serves archived itineraries by id.
type ItineraryController struct {
	wizardService services.WizardServiceInterface
}

func NewItineraryController(wizardService services.WizardServiceInterface) *ItineraryController {
	return &ItineraryController{
		wizardService: wizardService,
	}
}

// GetArchived godoc
// @Summary Get an archived itinerary
// @Tags Itineraries
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/itineraries/{id} [get]
func (i *ItineraryController) GetArchived(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	record, err := i.wizardService.Archived(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ArchivedItineraryResponse{
		ID:          record.ID.String(),
		UserInputs:  record.Inputs(),
		Itinerary:   record.Content,
		Provider:    record.Provider,
		Model:       record.Model,
		CreatedAt:   record.CreatedAt,
		DownloadURL: "/api/itineraries/" + record.ID.String() + "/pdf",
	}, "Itinerary fetched successfully")
}

// DownloadArchived godoc
// @Summary Download an archived itinerary as PDF
// @Tags Itineraries
// @Produce application/pdf
// @Param id path string true "Itinerary ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Router /api/itineraries/{id}/pdf [get]
func (i *ItineraryController) DownloadArchived(c *gin.Context) {
	pdf, err := i.wizardService.ArchivedPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	sendPDF(c, pdf)
}
