package contract

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// MatcherKind identifies how an argument position is matched.
type MatcherKind string

const (
	// MatcherExact matches a concrete value by structural equality.
	MatcherExact MatcherKind = "exact"
	// MatcherAny is a type-compatible wildcard.
	MatcherAny MatcherKind = "any"
	// MatcherPredicate matches any value for which the predicate expression
	// holds.
	MatcherPredicate MatcherKind = "pred"
)

// ArgMatcher is one position of an input pattern. Exact matchers carry a
// concrete value, wildcards a declared type, predicates a compiled
// expression. Predicates are evaluated with the candidate bound to "value";
// they are compiled once, at artifact decode time.
type ArgMatcher struct {
	Kind  MatcherKind
	Value any     // exact
	Type  TypeRef // declared type, where known
	Expr  string  // predicate source

	prog *vm.Program
}

// ExactArg builds an exact-value matcher.
func ExactArg(value any, typ TypeRef) ArgMatcher {
	return ArgMatcher{Kind: MatcherExact, Value: value, Type: typ}
}

// AnyArg builds a type-compatible wildcard matcher.
func AnyArg(typ TypeRef) ArgMatcher {
	return ArgMatcher{Kind: MatcherAny, Type: typ}
}

// PredicateArg compiles a predicate matcher. The expression sees the
// candidate argument as "value" and must evaluate to a boolean.
func PredicateArg(src string, typ TypeRef) (ArgMatcher, error) {
	prog, err := expr.Compile(src, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return ArgMatcher{}, fmt.Errorf("compile predicate %q: %w", src, err)
	}
	return ArgMatcher{Kind: MatcherPredicate, Type: typ, Expr: src, prog: prog}, nil
}

// Specificity scores how narrowly a matcher constrains its position:
// exact beats predicate beats wildcard.
func (m ArgMatcher) Specificity() int {
	switch m.Kind {
	case MatcherExact:
		return 2
	case MatcherPredicate:
		return 1
	default:
		return 0
	}
}

// Holds evaluates a predicate matcher against a concrete value. Evaluation
// errors count as non-matches: a predicate that cannot judge a value does
// not accept it.
func (m ArgMatcher) Holds(value any) bool {
	if m.prog == nil {
		return false
	}
	out, err := expr.Run(m.prog, map[string]any{"value": value})
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

// Equal reports whether two matchers describe the same pattern position.
// Used by extraction-time consistency checks: two examples have "the same
// input" when their patterns are equal position by position.
func (m ArgMatcher) Equal(other ArgMatcher) bool {
	if m.Kind != other.Kind {
		return false
	}
	switch m.Kind {
	case MatcherExact:
		return valuesEqual(m.Value, other.Value)
	case MatcherPredicate:
		return m.Expr == other.Expr
	default:
		return m.Type.Normalized() == other.Type.Normalized()
	}
}

// compatible reports whether an expectation-side matcher can be satisfied by
// a declared example-side matcher at the same position.
func compatible(exp, declared ArgMatcher) bool {
	switch exp.Kind {
	case MatcherExact:
		switch declared.Kind {
		case MatcherExact:
			return valuesEqual(exp.Value, declared.Value)
		case MatcherPredicate:
			return declared.Holds(exp.Value)
		default:
			return exp.Type.Compatible(declared.Type)
		}
	case MatcherPredicate:
		if declared.Kind == MatcherExact {
			return exp.Holds(declared.Value)
		}
		return exp.Type.Compatible(declared.Type)
	default:
		return exp.Type.Compatible(declared.Type)
	}
}

// InputPattern is an ordered argument pattern, one matcher per parameter.
type InputPattern []ArgMatcher

// Arity returns the number of argument positions.
func (p InputPattern) Arity() int { return len(p) }

// Specificity sums per-position specificity. Used to break ties among
// multiple compatible examples: the least-wildcard pattern wins.
func (p InputPattern) Specificity() int {
	total := 0
	for _, m := range p {
		total += m.Specificity()
	}
	return total
}

// CompatibleWith reports whether this (expectation-side) pattern is
// satisfiable by a declared example input. Arity must agree exactly.
func (p InputPattern) CompatibleWith(declared InputPattern) bool {
	if len(p) != len(declared) {
		return false
	}
	for i := range p {
		if !compatible(p[i], declared[i]) {
			return false
		}
	}
	return true
}

// Equal reports position-by-position pattern equality.
func (p InputPattern) Equal(other InputPattern) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// valuesEqual compares two JSON-decoded values structurally. Both sides come
// from encoding/json, so numbers are float64 and objects are
// map[string]any, so reflect.DeepEqual is sufficient.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
