package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bootcomp/internal/api/models"
	"bootcomp/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	cache := data.NewRunCache(time.Minute)
	t.Cleanup(cache.Close)
	return NewRouter(Deps{Cache: cache})
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func seed(v int64) *int64 { return &v }

func separated() []models.ScenarioInput {
	return []models.ScenarioInput{
		{Label: "low", Values: []float64{1, 2, 3, 4, 5}},
		{Label: "high", Values: []float64{10, 11, 12, 13, 14}},
	}
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestCompare_WinProbabilityAndRunLookup(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/v1/compare", models.CompareRequest{
		Scenarios: separated(),
		Bootstrap: models.BootstrapSettings{NBoots: 200, Summary: "win_probability", Seed: seed(7)},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.CompareResponse](t, w)
	assert.Equal(t, []string{"low", "high"}, resp.Labels)
	require.Len(t, resp.Matrix, 2)
	assert.Equal(t, "none", resp.Matrix[0][0].Kind)
	assert.Equal(t, "-", resp.Matrix[0][0].Text)
	require.NotNil(t, resp.Matrix[0][1].Probability)
	assert.InDelta(t, 1.0, *resp.Matrix[0][1].Probability, 1e-9)
	require.NotNil(t, resp.Matrix[1][0].Probability)
	assert.InDelta(t, 0.0, *resp.Matrix[1][0].Probability, 1e-9)
	require.NotEmpty(t, resp.ID)

	w = do(t, r, http.MethodGet, "/api/v1/runs/"+resp.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	run := decode[models.RunResponse](t, w)
	assert.Equal(t, "compare", run.Operation)
}

func TestCompare_PercentileAgainstControl(t *testing.T) {
	r := newTestRouter(t)
	control := 1
	w := do(t, r, http.MethodPost, "/api/v1/compare", models.CompareRequest{
		Scenarios: append(separated(), models.ScenarioInput{Values: []float64{20, 21, 22}}),
		Bootstrap: models.BootstrapSettings{NBoots: 100, Seed: seed(3)},
		Control:   &control,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.CompareResponse](t, w)
	assert.Empty(t, resp.Matrix)
	require.Len(t, resp.Comparisons, 2)
	assert.Equal(t, 1, resp.Comparisons[0].Control)
	assert.Equal(t, 2, resp.Comparisons[0].Comparator)
	assert.Equal(t, "S3", resp.Comparisons[1].ComparatorLabel)
	cell := resp.Comparisons[0].Result
	assert.Equal(t, "interval", cell.Kind)
	require.NotNil(t, cell.Upper)
	assert.Less(t, *cell.Upper, 0.0)
}

func TestCompare_Errors(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/compare", gin.H{"scenarios": []gin.H{{"values": []float64{1}}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.CodeInvalidRequest, decode[models.ErrorResponse](t, w).Error.Code)

	w = do(t, r, http.MethodPost, "/api/v1/compare", models.CompareRequest{
		Scenarios: []models.ScenarioInput{{Values: []float64{1, 2, 3}}, {Values: []float64{1, 2}}},
		Bootstrap: models.BootstrapSettings{NBoots: 10, Resampling: "dependent", Seed: seed(1)},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, models.CodeMisalignedScenarios, decode[models.ErrorResponse](t, w).Error.Code)

	w = do(t, r, http.MethodPost, "/api/v1/compare", models.CompareRequest{
		Scenarios: separated(),
		Bootstrap: models.BootstrapSettings{Summary: "median_of_means"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.CodeInvalidConfig, decode[models.ErrorResponse](t, w).Error.Code)
}

func TestRank(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/rank", models.RankRequest{
		Scenarios: separated(),
		Bootstrap: models.BootstrapSettings{NBoots: 50, Seed: seed(11)},
		Rule:      "max",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.RankResponse](t, w)
	assert.Equal(t, "max", resp.Rule)
	require.Len(t, resp.Rankings, 1)
	assert.Equal(t, 2, resp.Rankings[0].Scenario)
	assert.Equal(t, "high", resp.Rankings[0].Label)
	assert.Equal(t, 50, resp.Rankings[0].Frequency)
	assert.InDelta(t, 1.0, resp.Rankings[0].Proportion, 1e-9)
}

func TestRank_BestOutOfRange(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/rank", models.RankRequest{
		Scenarios: separated(),
		Bootstrap: models.BootstrapSettings{NBoots: 10, Seed: seed(1)},
		Rule:      "msmallest",
		M:         5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.CodeInvalidArgument, decode[models.ErrorResponse](t, w).Error.Code)
}

func TestSelect(t *testing.T) {
	r := newTestRouter(t)
	flat := func(v float64) []models.ScenarioInput {
		return []models.ScenarioInput{{Values: []float64{v, v, v}}, {Values: []float64{v, v, v}}}
	}
	req := models.SelectRequest{
		KPIs: []models.KPIInput{
			{Name: "service", Scenarios: flat(1)},
			{Name: "cost", Scenarios: []models.ScenarioInput{{Values: []float64{1, 1, 1}}, {Values: []float64{5, 5, 5}}}},
		},
		Constraints: []models.ConstraintInput{{KPI: "service", Threshold: 0.5, Gamma: 0.9, Direction: "lower"}},
		Quality:     models.QualityInput{KPI: "cost", Tolerance: 0.1, Confidence: 0.9},
		Bootstrap:   models.BootstrapSettings{NBoots: 50, Seed: seed(5)},
	}
	w := do(t, r, http.MethodPost, "/api/v1/select", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.SelectResponse](t, w)
	assert.Equal(t, []string{"S1", "S2"}, resp.Feasible)
	assert.Equal(t, "S1", resp.Best)
	assert.Equal(t, []string{"S1"}, resp.Selected)
	require.Len(t, resp.Stages, 2)
	assert.True(t, strings.HasPrefix(resp.Stages[1].Name, "quality"))

	req.Constraints[0].Threshold = 2
	w = do(t, r, http.MethodPost, "/api/v1/select", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decode[models.SelectResponse](t, w)
	assert.Empty(t, resp.Best)
	assert.Empty(t, resp.Selected)

	req.Constraints[0].Direction = "sideways"
	w = do(t, r, http.MethodPost, "/api/v1/select", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.CodeInvalidArgument, decode[models.ErrorResponse](t, w).Error.Code)
}

func TestDescribe(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/describe", models.DescribeRequest{Scenarios: separated()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.DescribeResponse](t, w)
	require.Len(t, resp.Scenarios, 2)
	assert.InDelta(t, 3.0, resp.Scenarios[0].Mean, 1e-9)
	assert.Equal(t, 5, resp.Scenarios[1].Count)
}

func TestGetRun_Errors(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/runs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/runs/6f1c1f7e-3f1a-4a55-9a1c-0d1f5e8f2b11", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.CodeNotFound, decode[models.ErrorResponse](t, w).Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/v1/describe", models.DescribeRequest{Scenarios: separated()})
	w := do(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bootcomp_runs_total{operation="describe",result="ok"} 1`)
	assert.Contains(t, w.Body.String(), "bootcomp_http_requests_total")
}
