package db_models

import (
	"github.com/lib/pq"

	"tripwise/internal/wizard"
)

// Itinerary is an archived generation: the inputs it was produced from and the text.
type Itinerary struct {
	BaseModel
	SessionID                string         `gorm:"size:64;index"`
	InputHash                string         `gorm:"size:64;index"`
	Destination              string         `gorm:"not null"`
	StartDate                string         `gorm:"size:10"`
	EndDate                  string         `gorm:"size:10"`
	Duration                 int
	Budget                   string         `gorm:"size:16"`
	Purpose                  pq.StringArray `gorm:"type:text[]"`
	DietaryPreferences       pq.StringArray `gorm:"type:text[]"`
	ActivityLevel            string         `gorm:"size:16"`
	AccommodationPreferences pq.StringArray `gorm:"type:text[]"`
	SpecialInterests         pq.StringArray `gorm:"type:text[]"`
	Provider                 string         `gorm:"size:32"`
	Model                    string         `gorm:"size:64"`
	Content                  string         `gorm:"type:text"`
}

func NewItineraryRecord(sessionID, inputHash string, in wizard.UserInputs, provider, model, content string) *Itinerary {
	return &Itinerary{
		SessionID:                sessionID,
		InputHash:                inputHash,
		Destination:              in.Destination,
		StartDate:                in.StartDate,
		EndDate:                  in.EndDate,
		Duration:                 in.Duration,
		Budget:                   in.Budget,
		Purpose:                  pq.StringArray(in.Purpose),
		DietaryPreferences:       pq.StringArray(in.DietaryPreferences),
		ActivityLevel:            in.ActivityLevel,
		AccommodationPreferences: pq.StringArray(in.AccommodationPreferences),
		SpecialInterests:         pq.StringArray(in.SpecialInterests),
		Provider:                 provider,
		Model:                    model,
		Content:                  content,
	}
}

// Inputs rebuilds the wizard inputs the itinerary was generated from.
func (i *Itinerary) Inputs() wizard.UserInputs {
	return wizard.UserInputs{
		Destination:              i.Destination,
		StartDate:                i.StartDate,
		EndDate:                  i.EndDate,
		Duration:                 i.Duration,
		Budget:                   i.Budget,
		Purpose:                  nonNil(i.Purpose),
		DietaryPreferences:       nonNil(i.DietaryPreferences),
		ActivityLevel:            i.ActivityLevel,
		AccommodationPreferences: nonNil(i.AccommodationPreferences),
		SpecialInterests:         nonNil(i.SpecialInterests),
	}
}

func nonNil(a pq.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}
