package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripwise/internal/api/views"
	"tripwise/internal/repositories"
	"tripwise/internal/services"
	"tripwise/internal/wizard"
	mem "tripwise/pkg/memcache"
	"tripwise/pkg/metrics"
	"tripwise/pkg/middleware"
	"tripwise/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	g.calls++
	return g.text, g.err
}
func (g *stubGenerator) Provider() string { return "mistral" }
func (g *stubGenerator) Model() string    { return "mistral-tiny" }

type harness struct {
	router    *gin.Engine
	generator *stubGenerator
	cookies   []*http.Cookie
}

func newHarness(t *testing.T, text string, genErr error) *harness {
	t.Helper()
	gen := &stubGenerator{text: text, err: genErr}
	m := metrics.NewNop()
	logger := zap.NewNop()

	sessions := repositories.NewMemorySessionRepository(mem.NewStore(), time.Hour)
	steps := wizard.NewController(wizard.WithClock(func() time.Time {
		return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	}))
	itineraries := services.NewItineraryService(gen, repositories.NewDisabledItineraryRepository(), m, logger)
	documents := services.NewDocumentService(false, m, logger)
	svc := services.NewWizardService(sessions, steps, itineraries, documents, m, logger)

	pages, err := views.Templates()
	require.NoError(t, err)

	wizardCtl := NewWizardController(svc)
	archiveCtl := NewItineraryController(svc)
	pageCtl := NewPageController(svc, pages, logger)

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.SessionMiddleware(utils.NewSessionSigner("test-secret", time.Hour), middleware.SessionCookie{Name: "sess"}))

	api := r.Group("/api")
	api.GET("/wizard", wizardCtl.GetState)
	api.POST("/wizard/basic", wizardCtl.SubmitBasicInfo)
	api.POST("/wizard/preferences", wizardCtl.SubmitPreferences)
	api.GET("/wizard/itinerary", wizardCtl.GetItinerary)
	api.GET("/wizard/itinerary.pdf", wizardCtl.DownloadItinerary)
	api.GET("/itineraries/:id", archiveCtl.GetArchived)
	api.GET("/itineraries/:id/pdf", archiveCtl.DownloadArchived)

	r.GET("/", pageCtl.Index)
	r.POST("/steps/basic", pageCtl.SubmitBasicInfo)
	r.POST("/steps/preferences", pageCtl.SubmitPreferences)

	return &harness{router: r, generator: gen}
}

// do sends req with the harness session cookie and keeps the refreshed one.
func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range h.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		h.cookies = set
	}
	return w
}

func (h *harness) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return h.do(req)
}

func (h *harness) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req)
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	return h.do(httptest.NewRequest(http.MethodGet, path, nil))
}

type envelope struct {
	Status  string            `json:"status"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	TraceID string            `json:"trace_id"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

var basicInfoBody = map[string]any{
	"destination": "Lisbon",
	"start_date":  "2026-06-10",
	"end_date":    "2026-06-12",
	"budget":      "Moderate",
	"purpose":     []string{"Food"},
}

var preferencesBody = map[string]any{
	"activity_level":            "Active",
	"accommodation_preferences": []string{"Hotel"},
}

func TestWizardAPI_FullFlow(t *testing.T) {
	h := newHarness(t, "Day 1: Walk the old town.", nil)

	w := h.get("/api/wizard")
	require.Equal(t, http.StatusOK, w.Code)
	var state struct {
		CurrentStep int    `json:"current_step"`
		StepName    string `json:"step_name"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &state))
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, "basic_info", state.StepName)

	w = h.postJSON("/api/wizard/basic", basicInfoBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.postJSON("/api/wizard/preferences", preferencesBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.get("/api/wizard/itinerary")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var itinerary struct {
		Itinerary   string `json:"itinerary"`
		DownloadURL string `json:"download_url"`
		FileName    string `json:"file_name"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &itinerary))
	assert.Equal(t, "Day 1: Walk the old town.", itinerary.Itinerary)
	assert.Equal(t, "/api/wizard/itinerary.pdf", itinerary.DownloadURL)
	assert.Equal(t, "travel_itinerary.pdf", itinerary.FileName)

	w = h.get("/api/wizard/itinerary.pdf")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="travel_itinerary.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "(Travel Itinerary - Lisbon) Tj")

	assert.Equal(t, 1, h.generator.calls)
}

func TestWizardAPI_ValidationErrors(t *testing.T) {
	h := newHarness(t, "Day 1", nil)

	w := h.postJSON("/api/wizard/basic", map[string]any{
		"destination": "",
		"start_date":  "2026-06-10",
		"end_date":    "2026-06-12",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Please enter a destination.", env.Errors["destination"])
	assert.Equal(t, "Please select at least one purpose for your trip.", env.Errors["purpose"])

	w = h.get("/api/wizard")
	assert.Contains(t, w.Body.String(), `"current_step":1`)
}

func TestWizardAPI_OutOfOrder(t *testing.T) {
	h := newHarness(t, "Day 1", nil)

	w := h.postJSON("/api/wizard/preferences", preferencesBody)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.get("/api/wizard/itinerary.pdf")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, h.generator.calls)
}

func TestWizardAPI_BadJSON(t *testing.T) {
	h := newHarness(t, "Day 1", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/wizard/basic", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := h.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWizardAPI_RemoteFailure(t *testing.T) {
	h := newHarness(t, "", &utils.RemoteServiceError{Provider: "mistral", StatusCode: 401})
	h.postJSON("/api/wizard/basic", basicInfoBody)
	h.postJSON("/api/wizard/preferences", preferencesBody)

	w := h.get("/api/wizard/itinerary")
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, utils.MsgRemoteService, decode(t, w).Message)

	w = h.get("/api/wizard/itinerary.pdf")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotEqual(t, "application/pdf", w.Header().Get("Content-Type"))

	w = h.get("/api/wizard")
	assert.Contains(t, w.Body.String(), `"current_step":3`)
}

func TestItineraryAPI_NotFound(t *testing.T) {
	h := newHarness(t, "Day 1", nil)

	w := h.get("/api/itineraries/8f14e45f-ceea-4d7a-9f35-2bd8a1f0c9d1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.get("/api/itineraries/not-a-uuid/pdf")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPages_FormFlow(t *testing.T) {
	h := newHarness(t, "Day 1: <b>Tram</b> 28\nDay 2: Sintra", nil)

	w := h.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Continue to Preferences")
	assert.Contains(t, w.Body.String(), "Step 1 of 3")

	w = h.postForm("/steps/basic", url.Values{
		"destination": {"Lisbon"},
		"start_date":  {"2026-06-10"},
		"end_date":    {"2026-06-12"},
		"budget":      {"Luxury"},
		"purpose":     {"Food", "Culture"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = h.get("/")
	assert.Contains(t, w.Body.String(), "Generate Itinerary")

	w = h.postForm("/steps/preferences", url.Values{
		"activity_level":            {"Light"},
		"accommodation_preferences": {"Hostel"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = h.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Day 1: Tram 28<br>")
	assert.NotContains(t, body, "<b>Tram</b>")
	assert.Contains(t, body, "Download Itinerary as PDF")

	// a stale step 1 form goes back to the current page
	w = h.postForm("/steps/basic", url.Values{"destination": {"Oslo"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestPages_RejectRerendersWithErrors(t *testing.T) {
	h := newHarness(t, "Day 1", nil)

	w := h.postForm("/steps/basic", url.Values{
		"destination": {"Lisbon"},
		"start_date":  {"2026-06-10"},
		"end_date":    {"2026-06-12"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Please select at least one purpose for your trip.")
	assert.Contains(t, body, `value="Lisbon"`)
}

func TestPages_RemoteFailureShowsError(t *testing.T) {
	h := newHarness(t, "", &utils.RemoteServiceError{Provider: "mistral", StatusCode: 500})
	h.postJSON("/api/wizard/basic", basicInfoBody)
	h.postJSON("/api/wizard/preferences", preferencesBody)

	w := h.get("/")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate your itinerary. Please check your API key and try again.")
	assert.NotContains(t, w.Body.String(), "Download Itinerary as PDF")
}
