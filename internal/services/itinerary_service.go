package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tripwise/internal/models/db_models"
	"tripwise/internal/repositories"
	"tripwise/internal/wizard"
	"tripwise/pkg/metrics"
	"tripwise/pkg/utils"
)

type ItineraryServiceInterface interface {
	BuildPrompt(inputs wizard.UserInputs) string
	Generate(ctx context.Context, sessionID string, inputs wizard.UserInputs) (*wizard.Itinerary, error)
	Archived(ctx context.Context, id string) (*db_models.Itinerary, error)
}

type ItineraryService struct {
	generator utils.TextGenerator
	archive   repositories.ItineraryRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewItineraryService(
	generator utils.TextGenerator,
	archive repositories.ItineraryRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		generator: generator,
		archive:   archive,
		metrics:   m,
		logger:    logger.Named("itinerary"),
	}
}

// BuildPrompt renders the generation prompt. The output depends only on inputs.
func (s *ItineraryService) BuildPrompt(in wizard.UserInputs) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Generate a detailed, day-by-day travel itinerary for a trip to %s.\n", in.Destination))
	prompt.WriteString(fmt.Sprintf("The trip duration is %d days, from %s to %s.\n", in.Duration, in.StartDate, in.EndDate))
	prompt.WriteString("The user's preferences are:\n")
	prompt.WriteString(fmt.Sprintf("- Budget: %s\n", in.Budget))
	prompt.WriteString(fmt.Sprintf("- Purpose: %s\n", strings.Join(in.Purpose, ", ")))
	prompt.WriteString(fmt.Sprintf("- Dietary Preferences: %s\n", strings.Join(in.DietaryPreferences, ", ")))
	prompt.WriteString(fmt.Sprintf("- Activity Level: %s\n", in.ActivityLevel))
	prompt.WriteString(fmt.Sprintf("- Accommodation Preferences: %s\n", strings.Join(in.AccommodationPreferences, ", ")))
	prompt.WriteString(fmt.Sprintf("- Special Interests: %s\n", strings.Join(in.SpecialInterests, ", ")))
	prompt.WriteString("\nProvide a detailed itinerary with morning, afternoon, and evening activities for each day.\n")

	return prompt.String()
}

// Generate calls the text-generation service once. There is no retry; a failed
// call returns a RemoteServiceError and nothing is archived.
func (s *ItineraryService) Generate(ctx context.Context, sessionID string, inputs wizard.UserInputs) (*wizard.Itinerary, error) {
	key, err := inputs.Key()
	if err != nil {
		return nil, err
	}

	provider := s.generator.Provider()
	log := s.logger.With(
		zap.String("session_id", sessionID),
		zap.String("provider", provider),
		zap.String("input_key", key[:12]),
	)

	text, err := s.generator.Generate(ctx, s.BuildPrompt(inputs))
	if err != nil {
		s.metrics.Generations.WithLabelValues(provider, "error").Inc()
		log.Warn("itinerary generation failed", zap.Error(err))
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		s.metrics.Generations.WithLabelValues(provider, "empty").Inc()
		log.Warn("itinerary generation returned no text")
		return nil, fmt.Errorf("%w: %s returned an empty completion", utils.ErrItineraryUnavailable, provider)
	}
	s.metrics.Generations.WithLabelValues(provider, "success").Inc()

	itinerary := &wizard.Itinerary{
		Key:      key,
		Text:     text,
		Provider: provider,
		Model:    s.generator.Model(),
	}

	if s.archive.Enabled() {
		record := db_models.NewItineraryRecord(sessionID, key, inputs, provider, itinerary.Model, text)
		if err := s.archive.Create(ctx, record); err != nil {
			log.Error("failed to archive itinerary", zap.Error(err))
		} else {
			itinerary.ArchiveID = record.ID.String()
		}
	}

	log.Info("itinerary generated", zap.Int("chars", len(text)), zap.String("archive_id", itinerary.ArchiveID))
	return itinerary, nil
}

func (s *ItineraryService) Archived(ctx context.Context, id string) (*db_models.Itinerary, error) {
	record, err := s.archive.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if record == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return record, nil
}
