package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/internal/repositories"
	"tripwise/internal/wizard"
	"tripwise/pkg/metrics"
	"tripwise/pkg/utils"
)

type WizardServiceInterface interface {
	Current(ctx context.Context, sessionID string) (*wizard.State, error)
	SubmitBasicInfo(ctx context.Context, sessionID string, req request_models.BasicInfoRequest) (wizard.Result, error)
	SubmitPreferences(ctx context.Context, sessionID string, req request_models.PreferencesRequest) (wizard.Result, error)
	Itinerary(ctx context.Context, sessionID string) (*wizard.State, *wizard.Itinerary, error)
	ItineraryPDF(ctx context.Context, sessionID string) ([]byte, error)
	Archived(ctx context.Context, id string) (*db_models.Itinerary, error)
	ArchivedPDF(ctx context.Context, id string) ([]byte, error)
}

type WizardService struct {
	sessions    repositories.SessionRepository
	steps       *wizard.Controller
	itineraries ItineraryServiceInterface
	documents   DocumentServiceInterface
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewWizardService(
	sessions repositories.SessionRepository,
	steps *wizard.Controller,
	itineraries ItineraryServiceInterface,
	documents DocumentServiceInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
) WizardServiceInterface {
	return &WizardService{
		sessions:    sessions,
		steps:       steps,
		itineraries: itineraries,
		documents:   documents,
		metrics:     m,
		logger:      logger.Named("wizard"),
	}
}

// Current returns the session state. Unknown sessions start at step 1 and are
// only persisted on their first successful transition.
func (w *WizardService) Current(ctx context.Context, sessionID string) (*wizard.State, error) {
	state, err := w.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return wizard.NewState(), nil
	}
	return state, nil
}

func (w *WizardService) SubmitBasicInfo(ctx context.Context, sessionID string, req request_models.BasicInfoRequest) (wizard.Result, error) {
	state, err := w.Current(ctx, sessionID)
	if err != nil {
		return wizard.Result{}, err
	}

	dateErrs := wizard.FieldErrors{}
	start := parseFormDate(req.StartDate, "start_date", "Start date", dateErrs)
	end := parseFormDate(req.EndDate, "end_date", "End date", dateErrs)

	res, err := w.steps.SubmitBasicInfo(*state, wizard.BasicInfo{
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      req.Budget,
		Purpose:     req.Purpose,
	})
	if err != nil {
		return wizard.Result{}, err
	}
	// a malformed date reaches the controller as a zero date; keep the more precise message
	for field, msg := range dateErrs {
		res.Errors[field] = msg
	}

	return w.commit(ctx, sessionID, wizard.StepBasicInfo, res)
}

func (w *WizardService) SubmitPreferences(ctx context.Context, sessionID string, req request_models.PreferencesRequest) (wizard.Result, error) {
	state, err := w.Current(ctx, sessionID)
	if err != nil {
		return wizard.Result{}, err
	}

	res, err := w.steps.SubmitPreferences(*state, wizard.Preferences{
		DietaryPreferences:       req.DietaryPreferences,
		ActivityLevel:            req.ActivityLevel,
		AccommodationPreferences: req.AccommodationPreferences,
		SpecialInterests:         req.SpecialInterests,
	})
	if err != nil {
		return wizard.Result{}, err
	}

	return w.commit(ctx, sessionID, wizard.StepPreferences, res)
}

// commit persists an advanced state. Rejections leave the session untouched.
func (w *WizardService) commit(ctx context.Context, sessionID string, step wizard.Step, res wizard.Result) (wizard.Result, error) {
	w.metrics.Transitions.WithLabelValues(step.String(), res.Outcome.String()).Inc()
	if !res.Advanced() {
		w.logger.Debug("step rejected",
			zap.String("session_id", sessionID),
			zap.Stringer("step", step),
			zap.Strings("errors", res.Errors.Messages()),
		)
		return res, nil
	}

	if err := w.sessions.Save(ctx, sessionID, &res.Next); err != nil {
		return wizard.Result{}, err
	}
	w.logger.Info("step advanced",
		zap.String("session_id", sessionID),
		zap.Stringer("from", step),
		zap.Stringer("to", res.Next.Step),
	)
	return res, nil
}

// Itinerary returns the itinerary for the session's inputs, generating it on the
// first view and serving the memo afterwards. A failed generation is returned
// as an error and the session stays on step 3 so a later view retries.
func (w *WizardService) Itinerary(ctx context.Context, sessionID string) (*wizard.State, *wizard.Itinerary, error) {
	state, err := w.Current(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if state.Step != wizard.StepItinerary {
		return state, nil, fmt.Errorf("%w: itinerary requested at step %d", utils.ErrStepOutOfOrder, state.Step)
	}

	key, err := state.Inputs.Key()
	if err != nil {
		return state, nil, err
	}
	if memo, ok := state.MemoFor(key); ok {
		w.metrics.MemoHits.Inc()
		return state, memo, nil
	}

	itinerary, err := w.itineraries.Generate(ctx, sessionID, state.Inputs)
	if err != nil {
		return state, nil, err
	}

	state.Itinerary = itinerary
	if err := w.sessions.Save(ctx, sessionID, state); err != nil {
		// the itinerary is still good for this response; the next view regenerates
		w.logger.Warn("failed to memoize itinerary", zap.String("session_id", sessionID), zap.Error(err))
	}
	return state, itinerary, nil
}

// ItineraryPDF renders the current itinerary. Nothing is rendered when the
// itinerary cannot be produced.
func (w *WizardService) ItineraryPDF(ctx context.Context, sessionID string) ([]byte, error) {
	state, itinerary, err := w.Itinerary(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return w.documents.RenderItineraryPDF(state.Inputs, itinerary.Text)
}

func (w *WizardService) Archived(ctx context.Context, id string) (*db_models.Itinerary, error) {
	return w.itineraries.Archived(ctx, id)
}

func (w *WizardService) ArchivedPDF(ctx context.Context, id string) ([]byte, error) {
	record, err := w.itineraries.Archived(ctx, id)
	if err != nil {
		return nil, err
	}
	return w.documents.RenderItineraryPDF(record.Inputs(), record.Content)
}

func parseFormDate(raw, field, label string, errs wizard.FieldErrors) time.Time {
	if raw == "" {
		return time.Time{}
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		errs[field] = label + " must be a valid date (YYYY-MM-DD)."
		return time.Time{}
	}
	return d
}
