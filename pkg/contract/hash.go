package contract

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

// versionLen is the number of hex characters kept from the content hash.
// Short enough to read in a report, long enough that distinct contract
// revisions never collide in practice.
const versionLen = 12

// Fingerprint computes the content-hash version of a contract: a stable
// digest over the interface signature and its behavioral examples. The same
// signature and examples always produce the same version, regardless of the
// run that extracted them.
func Fingerprint(sig InterfaceSignature, examples []BehavioralExample) string {
	h := sha256.New()
	fmt.Fprintf(h, "interface %s\n", sig.Name)
	for _, m := range sig.Methods {
		fmt.Fprintf(h, "method %s(", m.Name)
		for i, p := range m.Params {
			if i > 0 {
				io.WriteString(h, ",")
			}
			io.WriteString(h, string(p.Normalized()))
		}
		fmt.Fprintf(h, ") %s\n", m.Returns.Normalized())
	}
	for _, ex := range examples {
		fmt.Fprintf(h, "example %s ", ex.Method)
		for _, arg := range ex.Input {
			writeMatcher(h, arg)
		}
		writeOutcome(h, ex.Outcome)
		io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil))[:versionLen]
}

func writeMatcher(w io.Writer, m ArgMatcher) {
	switch m.Kind {
	case MatcherExact:
		fmt.Fprintf(w, "[exact %s %s]", m.Type.Normalized(), canonical(m.Value))
	case MatcherPredicate:
		fmt.Fprintf(w, "[pred %s %s]", m.Type.Normalized(), m.Expr)
	default:
		fmt.Fprintf(w, "[any %s]", m.Type.Normalized())
	}
}

func writeOutcome(w io.Writer, o Outcome) {
	if o.Kind == OutcomeThrows {
		fmt.Fprintf(w, " throws %s", o.ErrorKind)
		return
	}
	fmt.Fprintf(w, " returns %s %s", o.Type.Normalized(), canonical(o.Value))
}

// canonical renders a JSON-decoded value deterministically. encoding/json
// sorts map keys, which is all the canonicalization these values need.
func canonical(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
