package response_models

import "tripwise/internal/wizard"

type WizardStateResponse struct {
	CurrentStep int               `json:"current_step"`
	StepName    string            `json:"step_name"`
	TotalSteps  int               `json:"total_steps"`
	UserInputs  wizard.UserInputs `json:"user_inputs"`
}

func NewWizardStateResponse(s *wizard.State) WizardStateResponse {
	return WizardStateResponse{
		CurrentStep: int(s.Step),
		StepName:    s.Step.String(),
		TotalSteps:  int(wizard.StepItinerary),
		UserInputs:  s.Inputs,
	}
}

type ItineraryResponse struct {
	Wizard      WizardStateResponse `json:"wizard"`
	Itinerary   string              `json:"itinerary"`
	Provider    string              `json:"provider,omitempty"`
	Model       string              `json:"model,omitempty"`
	ArchiveID   string              `json:"archive_id,omitempty"`
	DownloadURL string              `json:"download_url"`
	FileName    string              `json:"file_name"`
}

type ArchivedItineraryResponse struct {
	ID          string            `json:"id"`
	UserInputs  wizard.UserInputs `json:"user_inputs"`
	Itinerary   string            `json:"itinerary"`
	Provider    string            `json:"provider"`
	Model       string            `json:"model"`
	CreatedAt   int64             `json:"created_at"`
	DownloadURL string            `json:"download_url"`
}
