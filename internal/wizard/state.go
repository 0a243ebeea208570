package wizard

import (
	"sort"
	"strings"

	"tripwise/pkg/utils"
)

// Step is a wizard page. Steps only move forward: 1 -> 2 -> 3.
type Step int

const (
	StepBasicInfo   Step = 1
	StepPreferences Step = 2
	StepItinerary   Step = 3
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic_info"
	case StepPreferences:
		return "preferences"
	case StepItinerary:
		return "itinerary"
	default:
		return "unknown"
	}
}

func (s Step) Valid() bool { return s >= StepBasicInfo && s <= StepItinerary }

// UserInputs accumulates the answers collected across steps.
type UserInputs struct {
	Destination              string   `json:"destination" yaml:"destination"`
	StartDate                string   `json:"start_date" yaml:"start_date"`
	EndDate                  string   `json:"end_date" yaml:"end_date"`
	Duration                 int      `json:"duration" yaml:"-"`
	Budget                   string   `json:"budget" yaml:"budget"`
	Purpose                  []string `json:"purpose" yaml:"purpose"`
	DietaryPreferences       []string `json:"dietary_preferences" yaml:"dietary_preferences"`
	ActivityLevel            string   `json:"activity_level" yaml:"activity_level"`
	AccommodationPreferences []string `json:"accommodation_preferences" yaml:"accommodation_preferences"`
	SpecialInterests         []string `json:"special_interests" yaml:"special_interests"`
}

// Key identifies the inputs for itinerary memoization.
func (u UserInputs) Key() (string, error) {
	return utils.Fingerprint(u)
}

// Itinerary is the memoized result of the last successful generation.
type Itinerary struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	ArchiveID string `json:"archive_id,omitempty"`
}

// State is the per-session wizard state.
type State struct {
	Step      Step       `json:"current_step"`
	Inputs    UserInputs `json:"user_inputs"`
	Itinerary *Itinerary `json:"itinerary,omitempty"`
}

func NewState() *State {
	return &State{Step: StepBasicInfo}
}

// MemoFor returns the memoized itinerary when it was generated for key.
func (s *State) MemoFor(key string) (*Itinerary, bool) {
	if s.Itinerary == nil || s.Itinerary.Key != key {
		return nil, false
	}
	return s.Itinerary, true
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

var fieldOrder = []string{
	"destination", "start_date", "end_date", "budget", "purpose",
	"dietary_preferences", "activity_level", "accommodation_preferences", "special_interests",
}

// Messages lists the messages in form order.
func (f FieldErrors) Messages() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	rank := func(k string) int {
		for i, name := range fieldOrder {
			if name == k {
				return i
			}
		}
		return len(fieldOrder)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, f[k])
	}
	return out
}

func (f FieldErrors) Error() string {
	return strings.Join(f.Messages(), " ")
}
