package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dbm "tripwise/internal/models/db_models"
	"tripwise/internal/repositories"
	"tripwise/internal/wizard"
	mem "tripwise/pkg/memcache"
	"tripwise/pkg/metrics"
	"tripwise/pkg/utils"
)

var testNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

// stubGenerator answers every prompt with text, or fails with err.
type stubGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *stubGenerator) Provider() string { return "mistral" }
func (g *stubGenerator) Model() string    { return "mistral-tiny" }

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// memoryArchive is an in-memory ItineraryRepository.
type memoryArchive struct {
	records map[string]*dbm.Itinerary
	err     error
}

func newMemoryArchive() *memoryArchive {
	return &memoryArchive{records: map[string]*dbm.Itinerary{}}
}

func (a *memoryArchive) Enabled() bool { return true }

func (a *memoryArchive) Create(_ context.Context, it *dbm.Itinerary) error {
	if a.err != nil {
		return a.err
	}
	it.ID = uuid.New()
	it.CreatedAt = testNow.Unix()
	a.records[it.ID.String()] = it
	return nil
}

func (a *memoryArchive) GetByID(_ context.Context, id string) (*dbm.Itinerary, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.records[id], nil
}

func remoteFailure(status int) error {
	return &utils.RemoteServiceError{Provider: "mistral", StatusCode: status}
}

func sampleInputs() wizard.UserInputs {
	return wizard.UserInputs{
		Destination:              "lisbon",
		StartDate:                "2026-06-10",
		EndDate:                  "2026-06-12",
		Duration:                 3,
		Budget:                   "Moderate",
		Purpose:                  []string{"Food", "Culture"},
		DietaryPreferences:       []string{"Vegetarian"},
		ActivityLevel:            "Active",
		AccommodationPreferences: []string{"Boutique Hotel"},
		SpecialInterests:         []string{"History"},
	}
}

type testEnv struct {
	wizard    WizardServiceInterface
	generator *stubGenerator
	archive   *memoryArchive
	sessions  repositories.SessionRepository
	metrics   *metrics.Metrics
}

func newTestEnv(text string, genErr error) *testEnv {
	gen := &stubGenerator{text: text, err: genErr}
	archive := newMemoryArchive()
	sessions := repositories.NewMemorySessionRepository(mem.NewStore(), time.Hour)
	m := metrics.NewNop()
	logger := zap.NewNop()

	itineraries := NewItineraryService(gen, archive, m, logger)
	documents := NewDocumentService(false, m, logger)
	steps := wizard.NewController(wizard.WithClock(func() time.Time { return testNow }))

	return &testEnv{
		wizard:    NewWizardService(sessions, steps, itineraries, documents, m, logger),
		generator: gen,
		archive:   archive,
		sessions:  sessions,
		metrics:   m,
	}
}
