package request_models

// BasicInfoRequest is the "Continue to Preferences" form. Dates are YYYY-MM-DD.
// Field requirements are enforced by the wizard, not by binding tags, so each
// field gets its own message.
type BasicInfoRequest struct {
	Destination string   `json:"destination" form:"destination"`
	StartDate   string   `json:"start_date" form:"start_date"`
	EndDate     string   `json:"end_date" form:"end_date"`
	Budget      string   `json:"budget" form:"budget"`
	Purpose     []string `json:"purpose" form:"purpose"`
}

// PreferencesRequest is the "Generate Itinerary" form.
type PreferencesRequest struct {
	DietaryPreferences       []string `json:"dietary_preferences" form:"dietary_preferences"`
	ActivityLevel            string   `json:"activity_level" form:"activity_level"`
	AccommodationPreferences []string `json:"accommodation_preferences" form:"accommodation_preferences"`
	SpecialInterests         []string `json:"special_interests" form:"special_interests"`
}
