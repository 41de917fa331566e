package contract

// Kind classifies the result of checking one expectation against the
// registry. The matcher's checks run in order; the first failing check
// decides the kind, so a consumer referencing a nonexistent method is never
// told "wrong argument".
type Kind string

const (
	// Corresponds is the positive result: the expectation is satisfiable by
	// a declared example. Reported alongside mismatches to make coverage
	// visible.
	Corresponds Kind = "corresponds"

	// MissingContract means the target interface has no registered contract.
	MissingContract Kind = "missing-contract"

	// UnknownMethod means the contract declares no method with the referenced
	// name and arity.
	UnknownMethod Kind = "unknown-method"

	// ArgumentMismatch means no declared example's input is compatible with
	// the consumer's argument pattern.
	ArgumentMismatch Kind = "argument-mismatch"

	// OutcomeMismatch means a compatible input exists but its declared
	// outcome disagrees with the consumer's expectation.
	OutcomeMismatch Kind = "outcome-mismatch"
)

// IsMismatch reports whether the kind counts against the run verdict.
func (k Kind) IsMismatch() bool { return k != Corresponds }

// Kinds lists all result kinds in reporting order.
func Kinds() []Kind {
	return []Kind{Corresponds, MissingContract, UnknownMethod, ArgumentMismatch, OutcomeMismatch}
}
