package models

import "time"

// Error codes returned in ErrorDetail.Code.
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidConfig       = "INVALID_CONFIG"
	CodeInsufficientData    = "INSUFFICIENT_DATA"
	CodeMisalignedScenarios = "MISALIGNED_SCENARIOS"
	CodeInvalidArgument     = "INVALID_ARGUMENT"
	CodeNotFound            = "NOT_FOUND"
	CodeInternal            = "INTERNAL_ERROR"
)

// Cell is one comparison result. Kind is "interval", "probability" or
// "none"; Text is the rounded rendering, "-" for none.
type Cell struct {
	Kind        string   `json:"kind"`
	Lower       *float64 `json:"lower,omitempty"`
	Upper       *float64 `json:"upper,omitempty"`
	Probability *float64 `json:"probability,omitempty"`
	Text        string   `json:"text"`
}

// Comparison is one control/comparator pair. Indices are 1-based.
type Comparison struct {
	Control         int    `json:"control"`
	Comparator      int    `json:"comparator"`
	ControlLabel    string `json:"control_label"`
	ComparatorLabel string `json:"comparator_label"`
	Result          Cell   `json:"result"`
}

// CompareResponse represents the response from a comparison run
type CompareResponse struct {
	ID                 string       `json:"id"`
	Labels             []string     `json:"labels"`
	Summary            string       `json:"summary"`
	NBoots             int          `json:"nboots"`
	NComparisons       int          `json:"ncomparisons"`
	AdjustedConfidence float64      `json:"adjusted_confidence"`
	Matrix             [][]Cell     `json:"matrix,omitempty"`
	Comparisons        []Comparison `json:"comparisons,omitempty"`
}

type Ranking struct {
	Scenario   int     `json:"scenario"`
	Label      string  `json:"label"`
	Frequency  int     `json:"frequency"`
	Proportion float64 `json:"proportion"`
}

// RankResponse represents the response from ranking scenarios
type RankResponse struct {
	ID       string    `json:"id"`
	Rule     string    `json:"rule"`
	M        int       `json:"m,omitempty"`
	NBoots   int       `json:"nboots"`
	Rankings []Ranking `json:"rankings"`
}

type Screen struct {
	Scenario   int     `json:"scenario"`
	Label      string  `json:"label"`
	Proportion float64 `json:"proportion"`
	Passed     bool    `json:"passed"`
	Reason     string  `json:"reason,omitempty"`
}

// Stage is one constraint or the quality stage of a selection run.
type Stage struct {
	Name      string   `json:"name"`
	Threshold float64  `json:"threshold"`
	Screens   []Screen `json:"screens"`
}

type SelectResponse struct {
	ID       string   `json:"id"`
	Stages   []Stage  `json:"stages"`
	Feasible []string `json:"feasible"`
	Best     string   `json:"best,omitempty"`
	Selected []string `json:"selected"`
}

type Summary struct {
	Scenario int     `json:"scenario"`
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	P05      float64 `json:"p05"`
	P95      float64 `json:"p95"`
}

type DescribeResponse struct {
	ID        string    `json:"id"`
	Scenarios []Summary `json:"scenarios"`
}

// RunResponse wraps a cached run.
type RunResponse struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	CreatedAt time.Time `json:"created_at"`
	Result    any       `json:"result"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
