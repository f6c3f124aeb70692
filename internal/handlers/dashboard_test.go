package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildcanada/trade-tracker/internal/model"
)

type dashboardResponse struct {
	Agreements []model.Agreement `json:"agreements"`
	Stats      model.Stats       `json:"stats"`
	Themes     []string          `json:"themes"`
}

func dashboardApp(agreements AgreementStore) *fiber.App {
	app := fiber.New()
	app.Get("/api/dashboard", DashboardHandler(agreements))
	app.Get("/api/activity", ActivityHandler(agreements))
	app.Get("/api/agreements/:id/timeline", TimelineHandler(agreements))
	return app
}

func TestDashboardHandler(t *testing.T) {
	theme := "Labour Mobility"
	agreements := &stubAgreementStore{agreements: []model.Agreement{
		{ID: "a1", Title: "Alpha Pact", Status: model.StatusImplemented, Theme: &theme},
		{ID: "a2", Title: "Beta Accord", Status: model.StatusUnderNegotiation},
		{ID: "a3", Title: "Gamma Deal", Status: model.StatusImplemented},
	}}
	app := dashboardApp(agreements)

	t.Run("stats reflect the full set when unfiltered", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/dashboard", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body dashboardResponse
		decodeBody(t, resp, &body)
		assert.Len(t, body.Agreements, 3)
		assert.Equal(t, 3, body.Stats.Total)
		assert.Equal(t, 2, body.Stats.Implemented)
		assert.Equal(t, 1, body.Stats.UnderNegotiation)
		assert.Equal(t, []string{"Labour Mobility"}, body.Themes)
	})

	t.Run("stats recompute over the filtered set", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/dashboard?q=alpha", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body dashboardResponse
		decodeBody(t, resp, &body)
		require.Len(t, body.Agreements, 1)
		assert.Equal(t, "Alpha Pact", body.Agreements[0].Title)
		assert.Equal(t, 1, body.Stats.Total)
		assert.Equal(t, 1, body.Stats.Implemented)
		assert.Equal(t, 0, body.Stats.UnderNegotiation)

		// Theme facets stay global so the filter UI keeps all options.
		assert.Equal(t, []string{"Labour Mobility"}, body.Themes)
	})

	t.Run("status filter narrows the agreement list", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/dashboard?status=Under+Negotiation", nil))
		require.NoError(t, err)

		var body dashboardResponse
		decodeBody(t, resp, &body)
		require.Len(t, body.Agreements, 1)
		assert.Equal(t, "Beta Accord", body.Agreements[0].Title)
	})

	t.Run("no matches yields an empty array, not null", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/dashboard?q=zzzz", nil))
		require.NoError(t, err)

		var body dashboardResponse
		decodeBody(t, resp, &body)
		assert.NotNil(t, body.Agreements)
		assert.Empty(t, body.Agreements)
		assert.Equal(t, 0, body.Stats.Total)
	})
}

func TestActivityHandler(t *testing.T) {
	app := dashboardApp(&stubAgreementStore{})

	t.Run("defaults to the trailing twelve months", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/activity", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Range   string           `json:"range"`
			Buckets []map[string]any `json:"buckets"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "12months", body.Range)
		assert.Len(t, body.Buckets, 12)
	})

	t.Run("rejects an unknown range", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/activity?range=weekly", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "range must be 12months or alltime", body["error"])
	})
}

func TestTimelineHandler(t *testing.T) {
	t.Run("missing agreement is 404", func(t *testing.T) {
		app := dashboardApp(&stubAgreementStore{})

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/agreements/nope/timeline", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("history is laid out into segments and labels", func(t *testing.T) {
		app := dashboardApp(&stubAgreementStore{agreements: []model.Agreement{{
			ID:     "a1",
			Title:  "Alpha Pact",
			Status: model.StatusUnderNegotiation,
			History: []model.HistoryEntry{
				{Status: "Awaiting Sponsorship", DateEntered: "2024-01-15"},
				{Status: "Under Negotiation", DateEntered: "2024-09-15"},
			},
		}}})

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/agreements/a1/timeline", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Segments []map[string]any `json:"segments"`
			Labels   []map[string]any `json:"labels"`
		}
		decodeBody(t, resp, &body)
		assert.Len(t, body.Segments, 2)
		assert.Len(t, body.Labels, 2)
	})
}
