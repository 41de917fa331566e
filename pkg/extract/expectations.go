package extract

import (
	"github.com/dkoosis/chunnel/pkg/artifact"
	"github.com/dkoosis/chunnel/pkg/contract"
	"github.com/dkoosis/chunnel/pkg/registry"
)

// Expectations transcribes each stub/verify record into one Expectation and
// appends it to the registry under the referenced interface name. No
// inference, no grouping: several expectations targeting the same
// interface+method from different consumer tests is the normal case, and a
// reference to an interface nobody provides is recorded as-is; the matcher
// reports it as a MissingContract, never silently dropped here.
func Expectations(records []artifact.Record, reg *registry.Registry) {
	for _, rec := range records {
		reg.AddExpectation(contract.Expectation{
			Interface: rec.Interface,
			Method:    rec.Method,
			Args:      rec.Pattern(),
			Outcome:   rec.Out(),
			Test:      rec.Test,
		})
	}
}
