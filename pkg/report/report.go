// Package report assembles and renders the outcome of a verification run.
// A Report is pure data; renderers decide presentation.
package report

import (
	"github.com/google/uuid"

	"github.com/dkoosis/chunnel/pkg/contract"
	"github.com/dkoosis/chunnel/pkg/match"
)

// Verdict is the run-level outcome.
type Verdict string

const (
	// VerdictPass means expectations were checked and none mismatched.
	VerdictPass Verdict = "pass"
	// VerdictFail means at least one mismatch, or a fatal inconsistency.
	VerdictFail Verdict = "fail"
	// VerdictEmpty means there were no expectations to check. Distinct from
	// pass: it usually indicates incomplete instrumentation, not
	// correctness.
	VerdictEmpty Verdict = "empty"
)

// Summary counts results by kind.
type Summary struct {
	Total      int
	Mismatches int
	ByKind     map[contract.Kind]int
}

// Report is the assembled outcome of one run.
type Report struct {
	RunID              string
	Verdict            Verdict
	Summary            Summary
	Results            []match.Result
	Diagnostics        []contract.Inconsistency
	Unexercised        []string // contracts no expectation references
	FatalInconsistency bool     // whether diagnostics forced the verdict
}

// Options configures report assembly.
type Options struct {
	// FatalInconsistency forces a fail verdict when diagnostics are present.
	FatalInconsistency bool
	// RunID overrides the generated run identifier (tests).
	RunID string
}

// Build assembles a report from ordered matcher results and extraction
// diagnostics.
func Build(results []match.Result, diags []contract.Inconsistency, unexercised []string, opts Options) *Report {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	summary := Summary{Total: len(results), ByKind: make(map[contract.Kind]int)}
	for _, r := range results {
		summary.ByKind[r.Kind]++
		if r.Kind.IsMismatch() {
			summary.Mismatches++
		}
	}

	verdict := VerdictPass
	switch {
	case len(results) == 0:
		verdict = VerdictEmpty
	case summary.Mismatches > 0:
		verdict = VerdictFail
	}
	if opts.FatalInconsistency && len(diags) > 0 {
		verdict = VerdictFail
	}

	return &Report{
		RunID:              runID,
		Verdict:            verdict,
		Summary:            summary,
		Results:            results,
		Diagnostics:        diags,
		Unexercised:        unexercised,
		FatalInconsistency: opts.FatalInconsistency && len(diags) > 0,
	}
}

// MethodGroup collects the results targeting one method.
type MethodGroup struct {
	Name    string
	Results []match.Result
}

// InterfaceGroup collects a report's results for one interface.
type InterfaceGroup struct {
	Name    string
	Version string // contract version, empty when no contract exists
	Methods []MethodGroup
}

// Groups arranges results by interface, then method. Results arrive from the
// matcher already sorted by interface, so grouping preserves that order;
// methods appear in first-result order within each interface.
func (r *Report) Groups() []InterfaceGroup {
	var groups []InterfaceGroup
	byIface := make(map[string]int)

	for _, res := range r.Results {
		gi, ok := byIface[res.Interface]
		if !ok {
			gi = len(groups)
			byIface[res.Interface] = gi
			groups = append(groups, InterfaceGroup{Name: res.Interface})
		}
		g := &groups[gi]
		if g.Version == "" {
			g.Version = res.ContractVersion
		}

		mi := -1
		for i := range g.Methods {
			if g.Methods[i].Name == res.Method {
				mi = i
				break
			}
		}
		if mi < 0 {
			g.Methods = append(g.Methods, MethodGroup{Name: res.Method})
			mi = len(g.Methods) - 1
		}
		g.Methods[mi].Results = append(g.Methods[mi].Results, res)
	}
	return groups
}
