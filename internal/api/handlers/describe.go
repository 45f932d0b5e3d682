package handlers

import (
	"net/http"

	"bootcomp/internal/analysis"
	"bootcomp/internal/api/models"

	"github.com/gin-gonic/gin"
)

// Describe handles POST /api/v1/describe
func (h *Handler) Describe(c *gin.Context) {
	var req models.DescribeRequest
	if !bindJSON(c, &req) {
		return
	}
	sc, err := toScenarios(req.Scenarios)
	if err != nil {
		writeError(c, err)
		return
	}
	sums, err := analysis.DescribeAll(sc)
	h.observe("describe", err)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := &models.DescribeResponse{Scenarios: make([]models.Summary, len(sums))}
	for i, s := range sums {
		resp.Scenarios[i] = models.Summary{
			Scenario: s.Scenario,
			Label:    s.Label,
			Count:    s.Count,
			Mean:     s.Mean,
			StdDev:   s.StdDev,
			Min:      s.Min,
			Max:      s.Max,
			P05:      s.P05,
			P95:      s.P95,
		}
	}
	h.store("describe", resp, func(id string) { resp.ID = id })
	c.JSON(http.StatusOK, resp)
}
