package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ventilation-voi/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	voi := NewVoiHandler()
	cor := NewCorrosionHandler()
	v1 := r.Group("/api/v1")
	{
		v1.POST("/decide", voi.Decide)
		v1.POST("/voi", voi.RunVoi)
		v1.POST("/corrosion/fit", cor.Fit)
	}
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func lectureHallConfig() models.ScenarioConfig {
	return models.ScenarioConfig{
		Room: models.RoomSpec{
			VolumeM3:               300,
			BreathingRateM3PerHour: 0.5,
			EmissionQuantaPerHour:  0.05,
			InfectiousDoseQuanta:   1.0,
			HorizonHours:           8,
			Steps:                  96,
		},
		Actions: []models.ActionSpec{
			{Name: "Poorly_Ventilated", FixedCostUSD: 5, LossRatePerHour: 1.17},
			{Name: "Standard", FixedCostUSD: 30, LossRatePerHour: 3.87},
			{Name: "Well_Ventilated", FixedCostUSD: 45, LossRatePerHour: 6.87},
			{Name: "Hospital_Grade", FixedCostUSD: 90, LossRatePerHour: 12.87},
		},
		SickCostPerCaseUSD: 345,
	}
}

func TestDecideKnownOccupancy(t *testing.T) {
	r := testRouter()
	occ := 30

	w := postJSON(t, r, "/api/v1/decide", models.DecideRequest{
		Config:    lectureHallConfig(),
		Occupancy: &occ,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.DecideResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Action)
	assert.Greater(t, resp.ExpectedCost, 0.0)
	require.Len(t, resp.CostByAction, 4)

	// The chosen action carries the minimum cost in the breakdown.
	for _, ac := range resp.CostByAction {
		assert.GreaterOrEqual(t, ac.ExpectedCost, resp.ExpectedCost-1e-9, ac.Action)
	}
}

func TestDecideWithPrior(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/decide", models.DecideRequest{
		Config:  lectureHallConfig(),
		Prior:   &models.PriorSpec{Type: "poisson", Mean: 30},
		Options: models.RunOptions{Samples: 200},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.DecideResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, []string{"Standard", "Well_Ventilated"}, resp.Action)
}

func TestDecideRequiresOccupancyOrPrior(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/decide", models.DecideRequest{Config: lectureHallConfig()})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestDecideRejectsNegativeOccupancy(t *testing.T) {
	r := testRouter()
	occ := -1

	w := postJSON(t, r, "/api/v1/decide", models.DecideRequest{
		Config:    lectureHallConfig(),
		Occupancy: &occ,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecideRejectsBadConfig(t *testing.T) {
	r := testRouter()
	occ := 30
	cfg := lectureHallConfig()
	cfg.Room.VolumeM3 = 0

	w := postJSON(t, r, "/api/v1/decide", models.DecideRequest{
		Config:    cfg,
		Occupancy: &occ,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CONFIG", resp.Error.Code)
}

func TestRunVoi(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/voi", models.VoiRequest{
		Config:  lectureHallConfig(),
		Prior:   models.PriorSpec{Type: "poisson", Mean: 30},
		Options: models.RunOptions{Samples: 300, IncludeLedger: true},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.VoiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 300, resp.Summary.Samples)
	assert.Equal(t, "poisson", resp.Summary.Prior)
	assert.GreaterOrEqual(t, resp.Summary.EVPI, 0.0)
	assert.InDelta(t, resp.Summary.PriorExpectedCost-resp.Summary.MeanPosteriorCost,
		resp.Summary.EVPI, 1e-9)
	require.Len(t, resp.Ledger, 300)
	require.Len(t, resp.Summary.CostByAction, 4)

	share := 0.0
	for _, s := range resp.Summary.PosteriorActionShare {
		share += s
	}
	assert.InDelta(t, 1.0, share, 1e-9)
}

func TestRunVoiOmitsLedgerByDefault(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/voi", models.VoiRequest{
		Config:  lectureHallConfig(),
		Prior:   models.PriorSpec{Type: "poisson", Mean: 30},
		Options: models.RunOptions{Samples: 100},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.VoiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Ledger)
}

func TestRunVoiEmpiricalPrior(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/voi", models.VoiRequest{
		Config: lectureHallConfig(),
		Prior: models.PriorSpec{
			Type:         "empirical",
			Observations: []int{27, 31, 24, 35, 29, 33, 26, 30},
		},
		Options: models.RunOptions{Samples: 100},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.VoiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 24, resp.Summary.MinOccupancy)
	assert.Equal(t, 35, resp.Summary.MaxOccupancy)
}

func TestRunVoiRejectsUnknownPrior(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/voi", models.VoiRequest{
		Config: lectureHallConfig(),
		Prior:  models.PriorSpec{Type: "gamma", Mean: 30},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_PRIOR", resp.Error.Code)
}

func TestRunVoiRejectsMalformedJSON(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voi", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func corrosionMeasurements() []models.MeasurementSpec {
	// Linear growth at 0.18 mm/year from a 0.4 mm baseline, hand-jittered.
	ms := []models.MeasurementSpec{}
	depths := []float64{0.61, 0.74, 0.97, 1.05, 1.32, 1.48, 1.69, 1.80, 2.04, 2.19,
		2.35, 2.57, 2.71, 2.88, 3.11, 3.24, 3.39, 3.62, 3.78, 3.95}
	for i, d := range depths {
		ms = append(ms, models.MeasurementSpec{
			WallLossMM:        d,
			ErrorSDMM:         0.25,
			YearsSinceInstall: float64(i + 1),
		})
	}
	ms[5].Missing = true
	ms[5].WallLossMM = 0
	return ms
}

func TestCorrosionFit(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/corrosion/fit", models.CorrosionFitRequest{
		Measurements: corrosionMeasurements(),
		Options:      models.CorrosionFitOptions{Iterations: 6000, Seed: 7},
		Plan: &models.PlanSpec{
			CriticalDepthMM: 5,
			HorizonYears:    25,
			RepairCostUSD:   1000,
			FailureCostUSD:  10000,
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CorrosionFitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Greater(t, resp.Draws, 20)
	assert.InDelta(t, 0.18, resp.RateMeanMM, 0.08)
	assert.Len(t, resp.ImputedDepthMeansMM, 1)

	require.NotNil(t, resp.Plan)
	assert.GreaterOrEqual(t, resp.Plan.FailureProbability, 0.0)
	assert.LessOrEqual(t, resp.Plan.FailureProbability, 1.0)
	assert.GreaterOrEqual(t, resp.Plan.InspectionValue, 0.0)
}

func TestCorrosionFitRejectsTooFewMeasurements(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/corrosion/fit", models.CorrosionFitRequest{
		Measurements: []models.MeasurementSpec{
			{WallLossMM: 1, ErrorSDMM: 0.1, YearsSinceInstall: 3},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "TOO_FEW_MEASUREMENTS", resp.Error.Code)
}
