// Package match computes the correspondence diff: for every consumer
// expectation in a registry snapshot, whether some provider-declared example
// satisfies it, and if not, the most specific reason why not.
package match

import (
	"fmt"

	"github.com/dkoosis/chunnel/pkg/contract"
	"github.com/dkoosis/chunnel/pkg/registry"
)

// Result is the verdict for one expectation. Kind Corresponds carries the
// matched example and contract version; mismatch kinds carry an explanation
// with enough context to locate and fix either side.
type Result struct {
	Interface       string
	Method          string
	Kind            contract.Kind
	Expectation     contract.Expectation
	ContractVersion string                      // empty when no contract exists
	Example         *contract.BehavioralExample // matched example, when one was chosen
	Explanation     string
}

// Run checks every expectation in the snapshot, in snapshot order
// (interfaces sorted by name, expectations in extraction order). Pure
// function of the snapshot: running it twice over unchanged state yields
// identical ordered results.
func Run(snap *registry.Snapshot) []Result {
	var results []Result
	for _, st := range snap.Interfaces {
		for _, exp := range st.Expectations {
			results = append(results, check(st, exp))
		}
	}
	return results
}

// check applies the ordered checks; the first failure decides the kind, so
// the most actionable diagnosis wins: a consumer referencing a nonexistent
// method is never told "wrong argument".
func check(st registry.InterfaceState, exp contract.Expectation) Result {
	res := Result{Interface: exp.Interface, Method: exp.Method, Expectation: exp}

	// 1. Existence: is there a contract at all?
	if st.Contract == nil {
		res.Kind = contract.MissingContract
		res.Explanation = fmt.Sprintf("no provider contract registered for interface %s (referenced by %s)",
			exp.Interface, exp.Test)
		return res
	}
	res.ContractVersion = st.Contract.Version

	// 2. Method existence: name plus matching arity.
	method, ok := st.Contract.Interface.Method(exp.Method)
	if !ok || method.Arity() != exp.Args.Arity() {
		res.Kind = contract.UnknownMethod
		if !ok {
			res.Explanation = fmt.Sprintf("contract %s@%s declares no method %q",
				exp.Interface, st.Contract.Version, exp.Method)
		} else {
			res.Explanation = fmt.Sprintf("contract %s@%s declares %s with %d parameter(s), expectation has %d",
				exp.Interface, st.Contract.Version, exp.Method, method.Arity(), exp.Args.Arity())
		}
		return res
	}

	// 3. Argument compatibility: at least one declared example must accept
	// the expectation's pattern.
	example, ok := bestExample(st.Contract, exp)
	if !ok {
		res.Kind = contract.ArgumentMismatch
		res.Explanation = fmt.Sprintf("no declared example of %s.%s accepts the expected arguments (%d example(s) declared)",
			exp.Interface, exp.Method, len(st.Contract.ExamplesFor(exp.Method)))
		return res
	}
	res.Example = &example

	// 4. Outcome compatibility against the chosen example.
	if !exp.Outcome.Matches(example.Outcome) {
		res.Kind = contract.OutcomeMismatch
		res.Explanation = fmt.Sprintf("expectation wants %s but contract example (%s) declares %s",
			exp.Outcome.String(), example.Source, example.Outcome.String())
		return res
	}

	res.Kind = contract.Corresponds
	res.Explanation = fmt.Sprintf("satisfied by contract example %s", example.Source)
	return res
}

// bestExample picks the compatible example with the most specific (least
// wildcard) input pattern. Ties keep the example earliest in extraction
// order; equally specific examples with conflicting outcomes were already
// flagged as a contract inconsistency at extraction time.
func bestExample(c *contract.Contract, exp contract.Expectation) (contract.BehavioralExample, bool) {
	var best contract.BehavioralExample
	bestScore, found := -1, false
	for _, ex := range c.ExamplesFor(exp.Method) {
		if !exp.Args.CompatibleWith(ex.Input) {
			continue
		}
		if score := ex.Input.Specificity(); score > bestScore {
			best, bestScore, found = ex, score, true
		}
	}
	return best, found
}
