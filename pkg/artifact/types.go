// Package artifact decodes test-run artifacts: line-delimited JSON records
// emitted by contract-test and collaboration-test instrumentation. Provider
// and consumer artifacts share one record shape; which side a record belongs
// to is decided by the file set it arrives in.
package artifact

import (
	"fmt"

	"github.com/dkoosis/chunnel/pkg/contract"
)

// Record is one line of an artifact file.
type Record struct {
	Interface string        `json:"interface"`
	Method    string        `json:"method"`
	Params    []string      `json:"params"`
	Returns   string        `json:"returns,omitempty"`
	Input     []ArgPattern  `json:"input"`
	Outcome   OutcomeRecord `json:"outcome"`
	Test      string        `json:"test"`

	pattern contract.InputPattern
	outcome contract.Outcome
}

// ArgPattern is the wire form of one argument matcher.
type ArgPattern struct {
	Kind  string `json:"kind"` // "exact", "any", "pred"
	Value any    `json:"value,omitempty"`
	Type  string `json:"type,omitempty"`
	Expr  string `json:"expr,omitempty"`
}

// OutcomeRecord is the wire form of a declared or expected outcome.
type OutcomeRecord struct {
	Kind  string `json:"kind"` // "returns", "throws"
	Value any    `json:"value,omitempty"`
	Type  string `json:"type,omitempty"`
	Error string `json:"error,omitempty"`
}

// decode validates the record and builds its contract-model forms. Predicate
// expressions compile here, so a bad predicate is a malformed-artifact error
// with a line number rather than a silent non-match later.
func (r *Record) decode() error {
	if r.Interface == "" {
		return fmt.Errorf("missing interface name")
	}
	if r.Method == "" {
		return fmt.Errorf("missing method name")
	}
	if len(r.Params) > 0 && len(r.Input) != len(r.Params) {
		return fmt.Errorf("input arity %d does not match declared params %d", len(r.Input), len(r.Params))
	}

	r.pattern = make(contract.InputPattern, 0, len(r.Input))
	for i, a := range r.Input {
		m, err := a.matcher()
		if err != nil {
			return fmt.Errorf("input[%d]: %w", i, err)
		}
		// Adopt the declared parameter type when the matcher leaves it open.
		if m.Type == "" && i < len(r.Params) {
			m.Type = contract.TypeRef(r.Params[i])
		}
		r.pattern = append(r.pattern, m)
	}

	out, err := r.Outcome.outcome()
	if err != nil {
		return fmt.Errorf("outcome: %w", err)
	}
	if out.Kind == contract.OutcomeReturns && out.Type == "" {
		out.Type = contract.TypeRef(r.Returns)
	}
	r.outcome = out
	return nil
}

func (a ArgPattern) matcher() (contract.ArgMatcher, error) {
	switch a.Kind {
	case string(contract.MatcherExact):
		return contract.ExactArg(a.Value, contract.TypeRef(a.Type)), nil
	case string(contract.MatcherAny):
		return contract.AnyArg(contract.TypeRef(a.Type)), nil
	case string(contract.MatcherPredicate):
		if a.Expr == "" {
			return contract.ArgMatcher{}, fmt.Errorf("predicate matcher without expression")
		}
		return contract.PredicateArg(a.Expr, contract.TypeRef(a.Type))
	default:
		return contract.ArgMatcher{}, fmt.Errorf("unknown matcher kind %q", a.Kind)
	}
}

func (o OutcomeRecord) outcome() (contract.Outcome, error) {
	switch o.Kind {
	case string(contract.OutcomeReturns):
		return contract.Outcome{Kind: contract.OutcomeReturns, Value: o.Value, Type: contract.TypeRef(o.Type)}, nil
	case string(contract.OutcomeThrows):
		if o.Error == "" {
			return contract.Outcome{}, fmt.Errorf("throws outcome without error kind")
		}
		return contract.Outcome{Kind: contract.OutcomeThrows, ErrorKind: o.Error}, nil
	default:
		return contract.Outcome{}, fmt.Errorf("unknown outcome kind %q", o.Kind)
	}
}

// Signature returns the method signature the record declares.
func (r *Record) Signature() contract.MethodSignature {
	params := make([]contract.TypeRef, len(r.Params))
	for i, p := range r.Params {
		params[i] = contract.TypeRef(p)
	}
	return contract.MethodSignature{Name: r.Method, Params: params, Returns: contract.TypeRef(r.Returns)}
}

// Pattern returns the decoded input pattern. Valid only after Read.
func (r *Record) Pattern() contract.InputPattern { return r.pattern }

// Out returns the decoded outcome. Valid only after Read.
func (r *Record) Out() contract.Outcome { return r.outcome }
