package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"bootcomp/internal/api/models"
	"bootcomp/internal/config"
	"bootcomp/internal/data"
	"bootcomp/internal/model"

	"github.com/gin-gonic/gin"
)

// RunObserver is told about every engine run a handler performs.
type RunObserver interface {
	ObserveRun(operation string, err error)
}

// Handler serves the comparison, ranking, selection and describe endpoints
// and keeps their results in a run cache.
type Handler struct {
	cache   *data.RunCache
	metrics RunObserver
}

// New creates a handler. Either argument may be nil.
func New(cache *data.RunCache, metrics RunObserver) *Handler {
	return &Handler{cache: cache, metrics: metrics}
}

func (h *Handler) observe(operation string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveRun(operation, err)
	}
	if err != nil {
		slog.Warn("run failed", "operation", operation, "error", err)
	}
}

// store caches a finished run and returns its id. setID is called with the
// id before the run becomes visible to readers.
func (h *Handler) store(operation string, result any, setID func(string)) {
	if h.cache == nil {
		return
	}
	run := &models.RunResponse{Operation: operation, CreatedAt: time.Now().UTC(), Result: result}
	id := newRunID()
	run.ID = id
	setID(id)
	h.cache.Set(id, run)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    models.CodeInvalidRequest,
				Message: err.Error(),
			},
		})
		return false
	}
	return true
}

// writeError maps engine sentinel errors onto API error codes.
func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, models.CodeInternal
	switch {
	case errors.Is(err, model.ErrInsufficientData):
		status, code = http.StatusUnprocessableEntity, models.CodeInsufficientData
	case errors.Is(err, model.ErrMisalignedScenarios):
		status, code = http.StatusUnprocessableEntity, models.CodeMisalignedScenarios
	case errors.Is(err, model.ErrInvalidArgument):
		status, code = http.StatusBadRequest, models.CodeInvalidArgument
	}
	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func invalidConfig(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    models.CodeInvalidConfig,
			Message: err.Error(),
		},
	})
}

func toScenarios(in []models.ScenarioInput) (model.Scenarios, error) {
	docs := make([]data.ScenarioDoc, len(in))
	for i, s := range in {
		docs[i] = data.ScenarioDoc{Label: s.Label, Values: s.Values}
	}
	return data.FromDocs(docs)
}

// bootstrapConfig overlays request settings on the server defaults.
func bootstrapConfig(s models.BootstrapSettings) config.BootstrapConfig {
	return config.MergeBootstrap(config.Default().Bootstrap, config.BootstrapConfig{
		NBoots:     s.NBoots,
		Confidence: s.Confidence,
		Correction: s.Correction,
		Design:     s.Design,
		Estimator:  s.Estimator,
		Summary:    s.Summary,
		Resampling: s.Resampling,
		Mode:       s.Mode,
		Workers:    s.Workers,
		Seed:       s.Seed,
		Decimals:   s.Decimals,
	})
}
