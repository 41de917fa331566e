package contract

import "testing"

func carServiceSig() InterfaceSignature {
	return InterfaceSignature{
		Name: "CarService",
		Methods: []MethodSignature{
			{Name: "findAll", Params: []TypeRef{"string"}, Returns: "[]Car"},
		},
	}
}

func TestFingerprint_Stable(t *testing.T) {
	examples := []BehavioralExample{
		{
			Method:  "findAll",
			Input:   InputPattern{ExactArg("H1", "string")},
			Outcome: Outcome{Kind: OutcomeReturns, Value: []any{map[string]any{"name": "X"}}, Type: "[]Car"},
			Source:  "CarServiceContractTest/findAll",
		},
	}
	a := Fingerprint(carServiceSig(), examples)
	b := Fingerprint(carServiceSig(), examples)
	if a != b {
		t.Errorf("fingerprint not stable: %s vs %s", a, b)
	}
	if len(a) != versionLen {
		t.Errorf("fingerprint length = %d, want %d", len(a), versionLen)
	}
}

func TestFingerprint_SensitiveToContent(t *testing.T) {
	base := []BehavioralExample{
		{Method: "findAll", Input: InputPattern{ExactArg("H1", "string")},
			Outcome: Outcome{Kind: OutcomeReturns, Type: "[]Car"}},
	}
	changedOutcome := []BehavioralExample{
		{Method: "findAll", Input: InputPattern{ExactArg("H1", "string")},
			Outcome: Outcome{Kind: OutcomeThrows, ErrorKind: "NotFound"}},
	}
	if Fingerprint(carServiceSig(), base) == Fingerprint(carServiceSig(), changedOutcome) {
		t.Error("fingerprint should change when a declared outcome changes")
	}

	changedSig := carServiceSig()
	changedSig.Methods[0].Returns = "[]Vehicle"
	if Fingerprint(carServiceSig(), base) == Fingerprint(changedSig, base) {
		t.Error("fingerprint should change when the signature changes")
	}
}

func TestFingerprint_SourceDoesNotAffectVersion(t *testing.T) {
	// The same declared behavior asserted by differently-named tests is the
	// same contract.
	a := []BehavioralExample{
		{Method: "findAll", Input: InputPattern{AnyArg("string")},
			Outcome: Outcome{Kind: OutcomeReturns, Type: "[]Car"}, Source: "TestA"},
	}
	b := []BehavioralExample{
		{Method: "findAll", Input: InputPattern{AnyArg("string")},
			Outcome: Outcome{Kind: OutcomeReturns, Type: "[]Car"}, Source: "TestB"},
	}
	if Fingerprint(carServiceSig(), a) != Fingerprint(carServiceSig(), b) {
		t.Error("test identity must not leak into the contract version")
	}
}
