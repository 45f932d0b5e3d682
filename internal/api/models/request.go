package models

// ScenarioInput is one scenario's replications.
type ScenarioInput struct {
	Label  string    `json:"label,omitempty"`
	Values []float64 `json:"values" binding:"required,min=1"`
}

// BootstrapSettings mirrors the bootstrap section of a run config.
// Zero values take the server defaults.
type BootstrapSettings struct {
	NBoots     int     `json:"nboots,omitempty" binding:"omitempty,gt=0,lte=1000000"`
	Confidence float64 `json:"confidence,omitempty" binding:"omitempty,gt=0,lt=100"`
	Correction string  `json:"correction,omitempty"`
	Design     string  `json:"design,omitempty"`
	Estimator  string  `json:"estimator,omitempty"`
	Summary    string  `json:"summary,omitempty"`
	Resampling string  `json:"resampling,omitempty"`
	Mode       string  `json:"mode,omitempty"`
	Workers    int     `json:"workers,omitempty" binding:"gte=0"`
	Seed       *int64  `json:"seed,omitempty"`
	Decimals   *int    `json:"decimals,omitempty" binding:"omitempty,gte=0,lte=12"`
}

// CompareRequest represents the request body for a pairwise comparison.
// With Control set (1-based) only that scenario is compared against the rest.
type CompareRequest struct {
	Scenarios     []ScenarioInput   `json:"scenarios" binding:"required,min=2,dive"`
	Bootstrap     BootstrapSettings `json:"bootstrap"`
	Control       *int              `json:"control,omitempty" binding:"omitempty,gte=1"`
	IncludeLedger bool              `json:"include_ledger,omitempty"`
}

type RankRequest struct {
	Scenarios []ScenarioInput   `json:"scenarios" binding:"required,min=1,dive"`
	Bootstrap BootstrapSettings `json:"bootstrap"`
	Rule      string            `json:"rule,omitempty" binding:"omitempty,oneof=min max msmallest mlargest"`
	M         int               `json:"m,omitempty" binding:"gte=0"`
}

type KPIInput struct {
	Name      string          `json:"name" binding:"required"`
	Objective string          `json:"objective,omitempty" binding:"omitempty,oneof=min max"`
	Scenarios []ScenarioInput `json:"scenarios" binding:"required,min=1,dive"`
}

type ConstraintInput struct {
	KPI       string  `json:"kpi" binding:"required"`
	Threshold float64 `json:"threshold"`
	Gamma     float64 `json:"gamma" binding:"gte=0,lte=1"`
	Direction string  `json:"direction" binding:"required"`
}

type QualityInput struct {
	KPI        string  `json:"kpi" binding:"required"`
	Tolerance  float64 `json:"tolerance" binding:"gte=0"`
	Confidence float64 `json:"confidence" binding:"gte=0,lte=1"`
	Objective  string  `json:"objective,omitempty" binding:"omitempty,oneof=min max"`
}

// SelectRequest runs the constraint and indifference-zone pipeline.
type SelectRequest struct {
	KPIs        []KPIInput        `json:"kpis" binding:"required,min=1,dive"`
	Constraints []ConstraintInput `json:"constraints" binding:"dive"`
	Quality     QualityInput      `json:"quality" binding:"required"`
	Bootstrap   BootstrapSettings `json:"bootstrap"`
}

type DescribeRequest struct {
	Scenarios []ScenarioInput `json:"scenarios" binding:"required,min=1,dive"`
}
