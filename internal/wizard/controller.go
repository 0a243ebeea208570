package wizard

import (
	"fmt"
	"strings"
	"time"

	"tripwise/pkg/utils"
)

// BasicInfo is the step 1 form.
type BasicInfo struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      string
	Purpose     []string
}

// Preferences is the step 2 form.
type Preferences struct {
	DietaryPreferences       []string
	ActivityLevel            string
	AccommodationPreferences []string
	SpecialInterests         []string
}

// Outcome tags a step Result.
type Outcome int

const (
	Advance Outcome = iota + 1
	Reject
)

func (o Outcome) String() string {
	switch o {
	case Advance:
		return "advance"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Result of a step submission. On Advance, Next is the new state. On Reject,
// Errors holds the field messages and Next is the unchanged input state.
type Result struct {
	Outcome Outcome
	Next    State
	Errors  FieldErrors
}

func (r Result) Advanced() bool { return r.Outcome == Advance }

// Controller implements the step transitions. It never mutates the state it is given.
type Controller struct {
	now func() time.Time
}

type ControllerOption func(*Controller)

// WithClock sets the clock used to reject start dates in the past.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitBasicInfo handles "Continue to Preferences" (step 1 -> 2).
func (c *Controller) SubmitBasicInfo(s State, form BasicInfo) (Result, error) {
	if s.Step != StepBasicInfo {
		return Result{}, fmt.Errorf("%w: basic info submitted at step %d", utils.ErrStepOutOfOrder, s.Step)
	}

	errs := FieldErrors{}
	destination := strings.TrimSpace(form.Destination)
	if destination == "" {
		errs["destination"] = "Please enter a destination."
	}

	switch {
	case form.StartDate.IsZero():
		errs["start_date"] = "Please select a start date."
	case utils.DateOnly(form.StartDate).Before(utils.DateOnly(c.now())):
		errs["start_date"] = "Start date cannot be in the past."
	}
	switch {
	case form.EndDate.IsZero():
		errs["end_date"] = "Please select an end date."
	case !form.StartDate.IsZero() && utils.DateOnly(form.EndDate).Before(utils.DateOnly(form.StartDate)):
		errs["end_date"] = "End date must be on or after the start date."
	}

	budget := form.Budget
	if budget == "" {
		budget = DefaultBudget
	}
	if !contains(Budgets, budget) {
		errs["budget"] = fmt.Sprintf("Unknown budget level %q.", budget)
	}

	if len(form.Purpose) == 0 {
		errs["purpose"] = "Please select at least one purpose for your trip."
	} else if v, bad := unknown(Purposes, form.Purpose); bad {
		errs["purpose"] = fmt.Sprintf("Unknown trip purpose %q.", v)
	}

	if len(errs) > 0 {
		return Result{Outcome: Reject, Next: s, Errors: errs}, nil
	}

	next := s
	next.Inputs.Destination = destination
	next.Inputs.StartDate = utils.FormatDate(form.StartDate)
	next.Inputs.EndDate = utils.FormatDate(form.EndDate)
	next.Inputs.Duration = utils.DaysInclusive(form.StartDate, form.EndDate)
	next.Inputs.Budget = budget
	next.Inputs.Purpose = dedupe(form.Purpose)
	next.Step = StepPreferences
	return Result{Outcome: Advance, Next: next}, nil
}

// SubmitPreferences handles "Generate Itinerary" (step 2 -> 3).
func (c *Controller) SubmitPreferences(s State, form Preferences) (Result, error) {
	if s.Step != StepPreferences {
		return Result{}, fmt.Errorf("%w: preferences submitted at step %d", utils.ErrStepOutOfOrder, s.Step)
	}

	errs := FieldErrors{}
	if v, bad := unknown(DietaryOptions, form.DietaryPreferences); bad {
		errs["dietary_preferences"] = fmt.Sprintf("Unknown dietary preference %q.", v)
	}

	level := form.ActivityLevel
	if level == "" {
		level = DefaultActivityLevel
	}
	if !contains(ActivityLevels, level) {
		errs["activity_level"] = fmt.Sprintf("Unknown activity level %q.", level)
	}

	if len(form.AccommodationPreferences) == 0 {
		errs["accommodation_preferences"] = "Please select at least one accommodation preference."
	} else if v, bad := unknown(AccommodationOptions, form.AccommodationPreferences); bad {
		errs["accommodation_preferences"] = fmt.Sprintf("Unknown accommodation preference %q.", v)
	}

	if v, bad := unknown(SpecialInterestOptions, form.SpecialInterests); bad {
		errs["special_interests"] = fmt.Sprintf("Unknown special interest %q.", v)
	}

	if len(errs) > 0 {
		return Result{Outcome: Reject, Next: s, Errors: errs}, nil
	}

	next := s
	next.Inputs.DietaryPreferences = dedupe(form.DietaryPreferences)
	next.Inputs.ActivityLevel = level
	next.Inputs.AccommodationPreferences = dedupe(form.AccommodationPreferences)
	next.Inputs.SpecialInterests = dedupe(form.SpecialInterests)
	next.Step = StepItinerary
	return Result{Outcome: Advance, Next: next}, nil
}
