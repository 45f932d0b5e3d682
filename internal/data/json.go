package data

import (
	"encoding/json"
	"fmt"
	"os"

	"bootcomp/internal/model"
)

// ScenarioDoc is the JSON shape of one scenario.
type ScenarioDoc struct {
	Label  string    `json:"label,omitempty"`
	Values []float64 `json:"values"`
}

// Document is the JSON shape of a scenario file:
//
//	{"scenarios": [{"label": "base", "values": [1.2, 3.4]}]}
type Document struct {
	Scenarios []ScenarioDoc `json:"scenarios"`
}

func LoadJSON(path string, opts Options) (model.Scenarios, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, model.ErrInvalidArgument, err)
	}
	docs := doc.Scenarios
	if opts.ExcludeReps > 0 {
		docs = make([]ScenarioDoc, len(doc.Scenarios))
		for i, d := range doc.Scenarios {
			if opts.ExcludeReps >= len(d.Values) {
				return nil, fmt.Errorf("%s: %w: scenario %d has %d replications, cannot exclude %d",
					path, model.ErrInsufficientData, i+1, len(d.Values), opts.ExcludeReps)
			}
			docs[i] = ScenarioDoc{Label: d.Label, Values: d.Values[:len(d.Values)-opts.ExcludeReps]}
		}
	}
	return FromDocs(docs)
}

// FromDocs builds validated Scenarios from their JSON form.
func FromDocs(docs []ScenarioDoc) (model.Scenarios, error) {
	out := make(model.Scenarios, 0, len(docs))
	for _, d := range docs {
		rs, err := model.NewReplicationSet(d.Label, d.Values)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// ToDocs is the inverse of FromDocs, with default labels filled in.
func ToDocs(sc model.Scenarios) []ScenarioDoc {
	labels := sc.Labels()
	out := make([]ScenarioDoc, len(sc))
	for i, rs := range sc {
		out[i] = ScenarioDoc{Label: labels[i], Values: rs.Values()}
	}
	return out
}
