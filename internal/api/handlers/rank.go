package handlers

import (
	"net/http"

	"bootcomp/internal/analysis"
	"bootcomp/internal/api/models"

	"github.com/gin-gonic/gin"
)

// Rank handles POST /api/v1/rank
func (h *Handler) Rank(c *gin.Context) {
	var req models.RankRequest
	if !bindJSON(c, &req) {
		return
	}
	rule, err := analysis.ParseRule(req.Rule)
	if err != nil {
		writeError(c, err)
		return
	}
	sc, err := toScenarios(req.Scenarios)
	if err != nil {
		writeError(c, err)
		return
	}
	rs, err := bootstrapConfig(req.Bootstrap).NewResampler(len(sc))
	if err != nil {
		invalidConfig(c, err)
		return
	}

	m, err := rs.Resample(sc)
	var ranked []analysis.Ranking
	if err == nil {
		ranked, err = analysis.Rank(m, rule, req.M)
	}
	h.observe("rank", err)
	if err != nil {
		writeError(c, err)
		return
	}
	ranked = analysis.WithLabels(ranked, sc.Labels())

	resp := &models.RankResponse{
		Rule:     string(rule),
		M:        req.M,
		NBoots:   rs.Config().NBoots(),
		Rankings: make([]models.Ranking, len(ranked)),
	}
	for i, r := range ranked {
		resp.Rankings[i] = models.Ranking{
			Scenario:   r.Scenario,
			Label:      r.Label,
			Frequency:  r.Frequency,
			Proportion: r.Proportion,
		}
	}
	h.store("rank", resp, func(id string) { resp.ID = id })
	c.JSON(http.StatusOK, resp)
}
