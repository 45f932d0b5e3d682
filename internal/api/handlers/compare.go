package handlers

import (
	"log/slog"
	"net/http"

	"bootcomp/internal/api/models"
	"bootcomp/internal/bootstrap"
	"bootcomp/internal/comparison"

	"github.com/gin-gonic/gin"
)

// Compare handles POST /api/v1/compare
func (h *Handler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if !bindJSON(c, &req) {
		return
	}
	sc, err := toScenarios(req.Scenarios)
	if err != nil {
		writeError(c, err)
		return
	}

	bc := bootstrapConfig(req.Bootstrap)
	if req.Control != nil && bc.Design == "" {
		bc.Design = string(bootstrap.DesignListwise)
	}
	rs, err := bc.NewResampler(len(sc))
	if err != nil {
		invalidConfig(c, err)
		return
	}
	decimals := bc.DecimalsOrDefault()
	eng, err := comparison.New(rs,
		comparison.WithDecimals(decimals),
		comparison.WithObserver(comparison.ObserverFunc(func(control, completed, total int) {
			slog.Debug("listwise comparison complete", "control", control+1, "completed", completed, "total", total)
		})),
	)
	if err != nil {
		invalidConfig(c, err)
		return
	}

	cfg := rs.Config()
	resp := &models.CompareResponse{
		Labels:             sc.Labels(),
		Summary:            string(cfg.Summary()),
		NBoots:             cfg.NBoots(),
		NComparisons:       cfg.NComparisons(),
		AdjustedConfidence: cfg.AdjustedConfidence(),
	}
	if req.Control != nil {
		rows, err := eng.CompareAgainst(sc, *req.Control-1)
		h.observe("compare", err)
		if err != nil {
			writeError(c, err)
			return
		}
		resp.Comparisons = toComparisons(rows, decimals)
	} else {
		res, err := eng.Run(sc)
		h.observe("compare", err)
		if err != nil {
			writeError(c, err)
			return
		}
		resp.Matrix = toMatrix(res.Matrix, decimals)
		if req.IncludeLedger {
			resp.Comparisons = toComparisons(res.Ledger, decimals)
		}
	}

	h.store("compare", resp, func(id string) { resp.ID = id })
	c.JSON(http.StatusOK, resp)
}

func toCell(cell comparison.Cell, decimals int) models.Cell {
	out := models.Cell{Text: cell.Format(decimals)}
	switch cell.Kind {
	case comparison.Interval:
		lo, hi := cell.Lower, cell.Upper
		out.Kind, out.Lower, out.Upper = "interval", &lo, &hi
	case comparison.Probability:
		p := cell.P
		out.Kind, out.Probability = "probability", &p
	default:
		out.Kind = "none"
	}
	return out
}

func toMatrix(m *comparison.Matrix, decimals int) [][]models.Cell {
	out := make([][]models.Cell, m.Size())
	for i := range out {
		out[i] = make([]models.Cell, m.Size())
		for j := range out[i] {
			out[i][j] = toCell(m.At(i, j), decimals)
		}
	}
	return out
}

func toComparisons(rows []comparison.Row, decimals int) []models.Comparison {
	out := make([]models.Comparison, len(rows))
	for i, r := range rows {
		out[i] = models.Comparison{
			Control:         r.Control + 1,
			Comparator:      r.Comparator + 1,
			ControlLabel:    r.ControlLabel,
			ComparatorLabel: r.ComparatorLabel,
			Result:          toCell(r.Cell, decimals),
		}
	}
	return out
}
