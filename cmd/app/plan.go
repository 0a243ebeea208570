package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"

	"tripwise/internal/models/request_models"
	"tripwise/internal/services"
	"tripwise/internal/wizard"
)

func newPlanCmd() *cobra.Command {
	var tripFile, outFile string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate an itinerary PDF from a YAML trip file",
		Example: `  tripwise plan --trip lisbon.yaml --out travel_itinerary.pdf

  # lisbon.yaml
  destination: Lisbon
  start_date: "2026-06-10"
  end_date: "2026-06-14"
  budget: Moderate
  purpose: [Culture, Food]
  activity_level: Active
  accommodation_preferences: [Boutique Hotel]`,
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := loadTrip(tripFile)
			if err != nil {
				return err
			}

			var wizardService services.WizardServiceInterface
			app := fx.New(
				coreModules(),
				fx.Populate(&wizardService),
			)
			if err := app.Err(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer func() { _ = app.Stop(context.Background()) }()

			itinerary, pdf, err := runPlan(ctx, wizardService, trip)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outFile, pdf, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), itinerary)
			fmt.Fprintf(cmd.ErrOrStderr(), "itinerary written to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tripFile, "trip", "t", "", "YAML file with the trip details and preferences")
	cmd.Flags().StringVarP(&outFile, "out", "o", services.PDFFileName, "where to write the PDF")
	_ = cmd.MarkFlagRequired("trip")
	return cmd
}

func loadTrip(path string) (wizard.UserInputs, error) {
	var trip wizard.UserInputs
	raw, err := os.ReadFile(path)
	if err != nil {
		return trip, fmt.Errorf("read trip file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &trip); err != nil {
		return trip, fmt.Errorf("parse trip file %s: %w", path, err)
	}
	return trip, nil
}

// runPlan drives a fresh session through both form steps and renders the result,
// exactly as a browser session would.
func runPlan(ctx context.Context, svc services.WizardServiceInterface, trip wizard.UserInputs) (string, []byte, error) {
	sid := "cli-" + uuid.New().String()

	res, err := svc.SubmitBasicInfo(ctx, sid, request_models.BasicInfoRequest{
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Budget:      trip.Budget,
		Purpose:     trip.Purpose,
	})
	if err != nil {
		return "", nil, err
	}
	if !res.Advanced() {
		return "", nil, fmt.Errorf("invalid trip details: %w", res.Errors)
	}

	res, err = svc.SubmitPreferences(ctx, sid, request_models.PreferencesRequest{
		DietaryPreferences:       trip.DietaryPreferences,
		ActivityLevel:            trip.ActivityLevel,
		AccommodationPreferences: trip.AccommodationPreferences,
		SpecialInterests:         trip.SpecialInterests,
	})
	if err != nil {
		return "", nil, err
	}
	if !res.Advanced() {
		return "", nil, fmt.Errorf("invalid preferences: %w", res.Errors)
	}

	_, itinerary, err := svc.Itinerary(ctx, sid)
	if err != nil {
		return "", nil, err
	}
	pdf, err := svc.ItineraryPDF(ctx, sid)
	if err != nil {
		return "", nil, err
	}
	return itinerary.Text, pdf, nil
}
