package contract

import "testing"

func TestCompatibleWith_ExactVsExact(t *testing.T) {
	exp := InputPattern{ExactArg("H1", "string")}
	declared := InputPattern{ExactArg("H1", "string")}
	if !exp.CompatibleWith(declared) {
		t.Error("identical exact values should be compatible")
	}

	other := InputPattern{ExactArg("H2", "string")}
	if other.CompatibleWith(declared) {
		t.Error("differing exact values should not be compatible")
	}
}

func TestCompatibleWith_ArityMismatch(t *testing.T) {
	exp := InputPattern{ExactArg("H1", "string"), AnyArg("int")}
	declared := InputPattern{ExactArg("H1", "string")}
	if exp.CompatibleWith(declared) {
		t.Error("patterns of different arity should never be compatible")
	}
}

func TestCompatibleWith_Wildcard(t *testing.T) {
	declared := InputPattern{ExactArg("H1", "string")}

	if !(InputPattern{AnyArg("string")}).CompatibleWith(declared) {
		t.Error("type wildcard should match declared example of same type")
	}
	if (InputPattern{AnyArg("int")}).CompatibleWith(declared) {
		t.Error("type wildcard should not match declared example of other type")
	}
	// Undeclared types act as wildcards.
	if !(InputPattern{AnyArg("")}).CompatibleWith(declared) {
		t.Error("untyped wildcard should match any declared input")
	}
}

func TestCompatibleWith_Predicate(t *testing.T) {
	pred, err := PredicateArg(`value startsWith "H"`, "string")
	if err != nil {
		t.Fatal(err)
	}

	if !(InputPattern{pred}).CompatibleWith(InputPattern{ExactArg("H1", "string")}) {
		t.Error("predicate should hold for matching exact example value")
	}
	if (InputPattern{pred}).CompatibleWith(InputPattern{ExactArg("X1", "string")}) {
		t.Error("predicate should reject non-matching exact example value")
	}
	// Against a non-exact example input only types are judged.
	if !(InputPattern{pred}).CompatibleWith(InputPattern{AnyArg("string")}) {
		t.Error("predicate vs wildcard should fall back to type compatibility")
	}
}

func TestCompatibleWith_DeclaredPredicate(t *testing.T) {
	pred, err := PredicateArg(`value > 10`, "int")
	if err != nil {
		t.Fatal(err)
	}
	declared := InputPattern{pred}

	if !(InputPattern{ExactArg(float64(42), "int")}).CompatibleWith(declared) {
		t.Error("exact value satisfying declared predicate should be compatible")
	}
	if (InputPattern{ExactArg(float64(3), "int")}).CompatibleWith(declared) {
		t.Error("exact value violating declared predicate should not be compatible")
	}
}

func TestPredicateArg_CompileError(t *testing.T) {
	if _, err := PredicateArg(`value ???`, ""); err == nil {
		t.Error("expected compile error for malformed predicate")
	}
}

func TestPredicate_EvalErrorIsNonMatch(t *testing.T) {
	pred, err := PredicateArg(`value.missing > 1`, "")
	if err != nil {
		t.Fatal(err)
	}
	if pred.Holds("not an object") {
		t.Error("predicate that cannot judge a value must not accept it")
	}
}

func TestSpecificity(t *testing.T) {
	pred, err := PredicateArg(`value != ""`, "string")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		p    InputPattern
		want int
	}{
		{"all exact", InputPattern{ExactArg("a", ""), ExactArg("b", "")}, 4},
		{"mixed", InputPattern{ExactArg("a", ""), pred, AnyArg("")}, 3},
		{"all wildcard", InputPattern{AnyArg(""), AnyArg("")}, 0},
	}
	for _, tc := range cases {
		if got := tc.p.Specificity(); got != tc.want {
			t.Errorf("%s: specificity = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestPatternEqual(t *testing.T) {
	a := InputPattern{ExactArg("H1", "string")}
	b := InputPattern{ExactArg("H1", "string")}
	if !a.Equal(b) {
		t.Error("equal exact patterns should compare equal")
	}
	if a.Equal(InputPattern{AnyArg("string")}) {
		t.Error("exact and wildcard patterns should not compare equal")
	}
}

func TestOutcomeMatches(t *testing.T) {
	declared := Outcome{Kind: OutcomeReturns, Value: []any{map[string]any{"name": "X"}}, Type: "[]Car"}

	exact := Outcome{Kind: OutcomeReturns, Value: []any{map[string]any{"name": "X"}}, Type: "[]Car"}
	if !exact.Matches(declared) {
		t.Error("structurally equal return values should match")
	}

	wrongVal := Outcome{Kind: OutcomeReturns, Value: []any{map[string]any{"name": "Y"}}, Type: "[]Car"}
	if wrongVal.Matches(declared) {
		t.Error("differing return values should not match")
	}

	typeOnly := Outcome{Kind: OutcomeReturns, Type: "[]Car"}
	if !typeOnly.Matches(declared) {
		t.Error("type-only expectation should match a compatible declared return")
	}

	throws := Outcome{Kind: OutcomeThrows, ErrorKind: "NotFound"}
	if throws.Matches(declared) {
		t.Error("expecting an error against a declared return must not match")
	}
	if !throws.Matches(Outcome{Kind: OutcomeThrows, ErrorKind: "NotFound"}) {
		t.Error("same error kind should match")
	}
	if throws.Matches(Outcome{Kind: OutcomeThrows, ErrorKind: "Timeout"}) {
		t.Error("differing error kinds should not match")
	}
}

func TestTypeRefCompatible(t *testing.T) {
	if !TypeRef("[] Car").Compatible("[]Car") {
		t.Error("whitespace differences should not break type compatibility")
	}
	if TypeRef("[]Car").Compatible("Car") {
		t.Error("distinct descriptors should be incompatible")
	}
}
