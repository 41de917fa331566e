package contract

import "fmt"

// OutcomeKind distinguishes return values from declared error side-effects.
type OutcomeKind string

const (
	// OutcomeReturns declares a return value.
	OutcomeReturns OutcomeKind = "returns"
	// OutcomeThrows declares an error side-effect of a named kind.
	OutcomeThrows OutcomeKind = "throws"
)

// Outcome is a declared or expected result of a method call: either a return
// value (with optional concrete value and declared type) or an error of a
// named kind ("throws ErrorKind X").
type Outcome struct {
	Kind      OutcomeKind
	Value     any     // returns: concrete value, nil if only the type is declared
	Type      TypeRef // returns: declared return type
	ErrorKind string  // throws
}

// Matches reports whether this (expectation-side) outcome is satisfied by a
// declared example outcome. Return/throw kinds must agree; throws match on
// error kind; returns match on type compatibility and, when the expectation
// pins a concrete value, structural equality.
func (o Outcome) Matches(declared Outcome) bool {
	if o.Kind != declared.Kind {
		return false
	}
	if o.Kind == OutcomeThrows {
		return o.ErrorKind == declared.ErrorKind
	}
	if !o.Type.Compatible(declared.Type) {
		return false
	}
	if o.Value != nil {
		return valuesEqual(o.Value, declared.Value)
	}
	return true
}

// Equal reports strict outcome equality, used by extraction-time
// consistency checks.
func (o Outcome) Equal(other Outcome) bool {
	return o.Kind == other.Kind &&
		o.ErrorKind == other.ErrorKind &&
		o.Type.Normalized() == other.Type.Normalized() &&
		valuesEqual(o.Value, other.Value)
}

// String renders a short human description, e.g. "returns []Car" or
// "throws NotFound".
func (o Outcome) String() string {
	if o.Kind == OutcomeThrows {
		return "throws " + o.ErrorKind
	}
	if o.Type != "" {
		return fmt.Sprintf("returns %s", o.Type)
	}
	return "returns"
}
