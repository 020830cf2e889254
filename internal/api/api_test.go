package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-io/verdant/internal/disclosure"
	"github.com/verdant-io/verdant/internal/events"
	"github.com/verdant-io/verdant/internal/factors"
	"github.com/verdant-io/verdant/internal/scoring"
	"github.com/verdant-io/verdant/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)

	svc := scoring.NewService(st, events.Nop{})
	srv := NewServer(st, svc, factors.NewTable(), zerolog.Nop())

	ts := httptest.NewServer(srv.Router(nil))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func putJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestActivityIngestionAndCompute(t *testing.T) {
	ts := newTestServer(t)
	companyID := uuid.New()

	resp := postJSON(t, fmt.Sprintf("%s/v1/companies/%s/activities", ts.URL, companyID), map[string]any{
		"records": []map[string]any{
			{"activity_type": "naturalGasKwh", "quantity": 1000, "unit": "kWh", "scope": 1, "recorded_at": "2025-03-10T00:00:00Z"},
			{"activity_type": "gridElectricityKwh", "quantity": 5000, "unit": "kWh", "scope": 2, "recorded_at": "2025-03-12T00:00:00Z"},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, fmt.Sprintf("%s/v1/companies/%s/emissions/compute?year=2025&month=3", ts.URL, companyID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var compute struct {
		Results map[string]struct {
			TotalKgCO2e float64 `json:"total_kg_co2e"`
		} `json:"results"`
	}
	decodeBody(t, resp, &compute)
	assert.InDelta(t, 183.16, compute.Results["scope1"].TotalKgCO2e, 1e-6)
	assert.InDelta(t, 5000*0.20705, compute.Results["scope2"].TotalKgCO2e, 1e-6)
	assert.Zero(t, compute.Results["scope3"].TotalKgCO2e)
}

func TestActivityIngestionRejectsNegative(t *testing.T) {
	ts := newTestServer(t)
	companyID := uuid.New()

	resp := postJSON(t, fmt.Sprintf("%s/v1/companies/%s/activities", ts.URL, companyID), map[string]any{
		"records": []map[string]any{
			{"activity_type": "dieselLiters", "quantity": -5, "scope": 1},
		},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestFinancedEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/emissions/financed", map[string]any{
		"reported_emissions_tonnes": 100000,
		"outstanding_amount_usd":    5000000,
		"total_asset_or_equity_usd": 50000000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		AttributionFactor       float64 `json:"attribution_factor"`
		FinancedEmissionsTonnes float64 `json:"financed_emissions_tonnes"`
		DataQualityTier         int     `json:"data_quality_tier"`
	}
	decodeBody(t, resp, &result)
	assert.InDelta(t, 0.1, result.AttributionFactor, 1e-9)
	assert.InDelta(t, 10000, result.FinancedEmissionsTonnes, 1e-6)
	assert.Equal(t, 1, result.DataQualityTier)
}

func TestFrameworkEditUpdatesScores(t *testing.T) {
	ts := newTestServer(t)
	companyID := uuid.New()

	resp := putJSON(t,
		fmt.Sprintf("%s/v1/companies/%s/frameworks/tcfd/fields/gov-a", ts.URL, companyID),
		map[string]any{"value": "board oversight documented"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var scores scoring.Scores
	decodeBody(t, resp, &scores)
	assert.Greater(t, scores.Environmental, 0)
	assert.Greater(t, scores.Governance, 0)

	// The scores endpoint serves the same persisted snapshot.
	resp2, err := http.Get(fmt.Sprintf("%s/v1/companies/%s/scores", ts.URL, companyID))
	require.NoError(t, err)
	var persisted scoring.Scores
	decodeBody(t, resp2, &persisted)
	assert.Equal(t, scores.Overall, persisted.Overall)
	assert.Contains(t, persisted.PerFramework, disclosure.FrameworkTCFD)
}

func TestScoresEmptyCompany(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(fmt.Sprintf("%s/v1/companies/%s/scores", ts.URL, uuid.New()))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var scores scoring.Scores
	decodeBody(t, resp, &scores)
	assert.Zero(t, scores.Overall)
}

func TestGetFrameworkReturnsTemplateWhenUnstarted(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(fmt.Sprintf("%s/v1/companies/%s/frameworks/sdg", ts.URL, uuid.New()))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var inst struct {
		FrameworkID string `json:"framework_id"`
		Version     int64  `json:"version"`
	}
	decodeBody(t, resp, &inst)
	assert.Equal(t, "sdg", inst.FrameworkID)
	assert.Zero(t, inst.Version)

	resp, err = http.Get(fmt.Sprintf("%s/v1/companies/%s/frameworks/iso9001", ts.URL, uuid.New()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestForecastEndpoint(t *testing.T) {
	ts := newTestServer(t)
	companyID := uuid.New()

	// Seed three months of activity and compute each.
	for month := 1; month <= 3; month++ {
		resp := postJSON(t, fmt.Sprintf("%s/v1/companies/%s/activities", ts.URL, companyID), map[string]any{
			"records": []map[string]any{{
				"activity_type": "naturalGasKwh",
				"quantity":      1000 * month,
				"unit":          "kWh",
				"scope":         1,
				"recorded_at":   fmt.Sprintf("2025-%02d-15T00:00:00Z", month),
			}},
		})
		resp.Body.Close()
		resp = postJSON(t, fmt.Sprintf("%s/v1/companies/%s/emissions/compute?year=2025&month=%d", ts.URL, companyID, month), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Get(fmt.Sprintf("%s/v1/companies/%s/emissions/forecast?periods=2", ts.URL, companyID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Points []struct {
			TotalKgCO2e float64 `json:"total_kg_co2e"`
			Forecast    bool    `json:"forecast"`
		} `json:"points"`
		Forecasted bool `json:"forecasted"`
	}
	decodeBody(t, resp, &out)
	assert.True(t, out.Forecasted)
	require.Len(t, out.Points, 5)
	assert.True(t, out.Points[3].Forecast)
	// Linear history 183.16, 366.32, 549.48 continues upward.
	assert.Greater(t, out.Points[3].TotalKgCO2e, out.Points[2].TotalKgCO2e)
}

func TestListFactors(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/factors?category=" + factors.CategoryScope1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []factors.Factor
	decodeBody(t, resp, &out)
	assert.NotEmpty(t, out)
	for _, f := range out {
		assert.Equal(t, factors.CategoryScope1, f.Category)
	}
}
