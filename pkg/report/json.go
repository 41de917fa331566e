package report

import "encoding/json"

// SchemaID identifies the JSON report format.
const SchemaID = "chunnel-report"

// JSON renders a report as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonOutput struct {
	Schema      string           `json:"$schema"`
	RunID       string           `json:"runId"`
	Verdict     string           `json:"verdict"`
	Summary     jsonSummary      `json:"summary"`
	Results     []jsonResult     `json:"results"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
	Unexercised []string         `json:"unexercised,omitempty"`
}

type jsonSummary struct {
	Total      int            `json:"total"`
	Mismatches int            `json:"mismatches"`
	ByKind     map[string]int `json:"byKind"`
}

type jsonResult struct {
	Interface       string `json:"interface"`
	Method          string `json:"method"`
	Kind            string `json:"kind"`
	Test            string `json:"test"`
	ContractVersion string `json:"contractVersion,omitempty"`
	Example         string `json:"example,omitempty"` // source of the matched example
	Explanation     string `json:"explanation,omitempty"`
}

type jsonDiagnostic struct {
	Interface string   `json:"interface"`
	Method    string   `json:"method"`
	Detail    string   `json:"detail"`
	Sources   []string `json:"sources,omitempty"`
	Fatal     bool     `json:"fatal"`
}

// Render formats the report as indented JSON.
func (j *JSON) Render(r *Report) string {
	out := jsonOutput{
		Schema:  SchemaID,
		RunID:   r.RunID,
		Verdict: string(r.Verdict),
		Summary: jsonSummary{
			Total:      r.Summary.Total,
			Mismatches: r.Summary.Mismatches,
			ByKind:     make(map[string]int, len(r.Summary.ByKind)),
		},
		Results:     make([]jsonResult, 0, len(r.Results)),
		Unexercised: r.Unexercised,
	}
	for kind, n := range r.Summary.ByKind {
		out.Summary.ByKind[string(kind)] = n
	}
	for _, res := range r.Results {
		jr := jsonResult{
			Interface:       res.Interface,
			Method:          res.Method,
			Kind:            string(res.Kind),
			Test:            res.Expectation.Test,
			ContractVersion: res.ContractVersion,
			Explanation:     res.Explanation,
		}
		if res.Example != nil {
			jr.Example = res.Example.Source
		}
		out.Results = append(out.Results, jr)
	}
	for _, d := range r.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
			Interface: d.Interface,
			Method:    d.Method,
			Detail:    d.Detail,
			Sources:   d.Sources,
			Fatal:     r.FatalInconsistency,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
