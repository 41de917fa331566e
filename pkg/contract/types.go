// Package contract defines the shared data model for the verifier.
// Everything here is a plain value: signatures, argument patterns, declared
// outcomes, behavioral examples, provider contracts, and consumer
// expectations. Nothing in this package executes production code; the
// verifier only reads declarative records left behind by test runs.
package contract

import "strings"

// TypeRef is a declared type descriptor, e.g. "string", "[]Car",
// "map[string]int". Descriptors are compared by normalized string equality;
// there is no structural subtyping.
type TypeRef string

// Normalized strips interior whitespace so "[]Car" and "[] Car" compare equal.
func (t TypeRef) Normalized() TypeRef {
	return TypeRef(strings.ReplaceAll(string(t), " ", ""))
}

// Compatible reports whether two descriptors refer to the same declared type.
// An empty descriptor acts as a wildcard: artifacts are not required to
// declare types on both sides of every record.
func (t TypeRef) Compatible(other TypeRef) bool {
	if t == "" || other == "" {
		return true
	}
	return t.Normalized() == other.Normalized()
}

// MethodSignature describes one method of a collaborator interface.
type MethodSignature struct {
	Name    string
	Params  []TypeRef
	Returns TypeRef
}

// Arity returns the number of declared parameters.
func (m MethodSignature) Arity() int { return len(m.Params) }

// InterfaceSignature identifies a collaborator interface by declared name and
// ordered method set. Immutable once recorded.
type InterfaceSignature struct {
	Name    string
	Methods []MethodSignature
}

// Method looks up a method signature by name.
func (s InterfaceSignature) Method(name string) (MethodSignature, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodSignature{}, false
}

// BehavioralExample is one assertion made by a provider's contract tests:
// given this input pattern, the provider returns or does this.
type BehavioralExample struct {
	Method  string
	Input   InputPattern
	Outcome Outcome
	Source  string // identity of the contract test that asserted it
}

// Contract aggregates an interface signature with the behavioral examples
// asserted by the provider's own contract tests. Version is a content hash
// over signature and examples; it changes only when extraction re-runs over
// changed inputs.
type Contract struct {
	Interface InterfaceSignature
	Examples  []BehavioralExample
	Version   string
}

// ExamplesFor returns the examples declared for a method, in extraction order.
func (c *Contract) ExamplesFor(method string) []BehavioralExample {
	var out []BehavioralExample
	for _, ex := range c.Examples {
		if ex.Method == method {
			out = append(out, ex)
		}
	}
	return out
}

// Expectation is an immutable snapshot of one stub/verify interaction
// recorded by a consumer's collaboration test.
type Expectation struct {
	Interface string
	Method    string
	Args      InputPattern
	Outcome   Outcome
	Test      string // identity of the consumer test that recorded it
}

// Inconsistency records that a provider's own contract tests disagree with
// each other: conflicting outcomes for the same input, or conflicting
// declared signatures for the same method. Correspondence cannot be
// meaningfully judged until the provider side is fixed.
type Inconsistency struct {
	Interface string
	Method    string
	Detail    string
	Sources   []string // contract tests involved in the conflict
}
