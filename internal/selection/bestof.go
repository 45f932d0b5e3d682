package selection

import (
	"fmt"

	"bootcomp/internal/model"

	"github.com/montanaflynn/stats"
)

// KPI is one performance measure observed for every scenario.
type KPI struct {
	Name      string
	Data      model.Scenarios
	Objective Objective
}

// KPIMeans holds a scenario's mean on each KPI, in KPI order.
type KPIMeans struct {
	Scenario int
	Label    string
	Means    []float64
}

type BestOfResult struct {
	Best  int
	KPIs  []string
	Table []KPIMeans
}

// BestOf computes KPI means for the subset (nil means every scenario) and
// picks the apparent best by lexicographic order over kpis: the first KPI
// decides, later ones break ties, and a complete tie keeps the lower
// scenario index.
func BestOf(kpis []KPI, subset []int) (*BestOfResult, error) {
	if len(kpis) == 0 {
		return nil, fmt.Errorf("%w: no KPIs", model.ErrInvalidArgument)
	}
	n := len(kpis[0].Data)
	for _, k := range kpis[1:] {
		if len(k.Data) != n {
			return nil, fmt.Errorf("%w: KPI %q has %d scenarios, %q has %d",
				model.ErrInvalidArgument, k.Name, len(k.Data), kpis[0].Name, n)
		}
	}
	cands, err := candidateSet(kpis[0].Data, subset)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: empty subset", model.ErrInsufficientData)
	}

	labels := kpis[0].Data.Labels()
	res := &BestOfResult{Best: -1, KPIs: make([]string, len(kpis))}
	for k, kpi := range kpis {
		res.KPIs[k] = kpi.Name
	}
	for _, i := range cands {
		row := KPIMeans{Scenario: i, Label: labels[i], Means: make([]float64, len(kpis))}
		for k, kpi := range kpis {
			if kpi.Data[i].Len() == 0 {
				return nil, fmt.Errorf("%w: KPI %q scenario %s has no replications", model.ErrInsufficientData, kpi.Name, labels[i])
			}
			m, err := stats.Mean(kpi.Data[i].Values())
			if err != nil {
				return nil, err
			}
			row.Means[k] = m
		}
		res.Table = append(res.Table, row)
	}

	bestRow := 0
	for r := 1; r < len(res.Table); r++ {
		if better(res.Table[r].Means, res.Table[bestRow].Means, kpis) {
			bestRow = r
		}
	}
	res.Best = res.Table[bestRow].Scenario
	return res, nil
}

func better(a, b []float64, kpis []KPI) bool {
	for k, kpi := range kpis {
		if a[k] == b[k] {
			continue
		}
		if kpi.Objective == Maximize {
			return a[k] > b[k]
		}
		return a[k] < b[k]
	}
	return false
}
