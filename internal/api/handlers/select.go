package handlers

import (
	"fmt"
	"net/http"

	"bootcomp/internal/api/models"
	"bootcomp/internal/selection"

	"github.com/gin-gonic/gin"
)

// Select handles POST /api/v1/select
func (h *Handler) Select(c *gin.Context) {
	var req models.SelectRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := toPipeline(req)
	if err != nil {
		writeError(c, err)
		return
	}
	rs, err := bootstrapConfig(req.Bootstrap).NewResampler(len(p.KPIs[0].Data))
	if err != nil {
		invalidConfig(c, err)
		return
	}

	out, err := p.Run(rs)
	h.observe("select", err)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := &models.SelectResponse{
		Feasible: labelsOf(out.Feasible, out.Labels),
		Selected: labelsOf(out.Selected, out.Labels),
	}
	for i, res := range out.Constraints {
		stage := p.Constraints[i]
		resp.Stages = append(resp.Stages, models.Stage{
			Name:      fmt.Sprintf("constraint %d (%s %s)", i+1, stage.KPI, stage.Direction),
			Threshold: stage.Threshold,
			Screens:   toScreens(res.Screens),
		})
	}
	if out.Best >= 0 {
		resp.Best = out.Labels[out.Best]
	}
	if out.Quality != nil {
		resp.Stages = append(resp.Stages, models.Stage{
			Name:      "quality (" + p.Quality.KPI + ")",
			Threshold: out.Quality.Threshold,
			Screens:   toScreens(out.Quality.Screens),
		})
	}
	h.store("select", resp, func(id string) { resp.ID = id })
	c.JSON(http.StatusOK, resp)
}

func toPipeline(req models.SelectRequest) (*selection.Pipeline, error) {
	p := &selection.Pipeline{}
	for _, k := range req.KPIs {
		sc, err := toScenarios(k.Scenarios)
		if err != nil {
			return nil, fmt.Errorf("KPI %q: %w", k.Name, err)
		}
		obj, err := selection.ParseObjective(k.Objective)
		if err != nil {
			return nil, err
		}
		p.KPIs = append(p.KPIs, selection.KPI{Name: k.Name, Data: sc, Objective: obj})
	}
	for _, cc := range req.Constraints {
		dir, err := selection.ParseDirection(cc.Direction)
		if err != nil {
			return nil, err
		}
		p.Constraints = append(p.Constraints, selection.ConstraintStage{
			KPI:        cc.KPI,
			Constraint: selection.Constraint{Threshold: cc.Threshold, Gamma: cc.Gamma, Direction: dir},
		})
	}
	obj, err := selection.ParseObjective(req.Quality.Objective)
	if err != nil {
		return nil, err
	}
	p.Quality = selection.QualityStage{
		KPI:        req.Quality.KPI,
		Tolerance:  req.Quality.Tolerance,
		Confidence: req.Quality.Confidence,
		Objective:  obj,
	}
	return p, p.Validate()
}

func toScreens(screens []selection.Screen) []models.Screen {
	out := make([]models.Screen, len(screens))
	for i, s := range screens {
		out[i] = models.Screen{
			Scenario:   s.Scenario + 1,
			Label:      s.Label,
			Proportion: s.Proportion,
			Passed:     s.Passed,
			Reason:     s.Reason,
		}
	}
	return out
}

func labelsOf(idx []int, labels []string) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = labels[j]
	}
	return out
}
