// Package extract derives the registry's contents from test-run artifacts:
// provider contract-test records become Contracts, consumer
// collaboration-test records become Expectations. Extraction is a
// transcription step: it never infers behavior beyond what the records
// declare.
package extract

import (
	"fmt"
	"log/slog"

	"github.com/dkoosis/chunnel/pkg/artifact"
	"github.com/dkoosis/chunnel/pkg/contract"
	"github.com/dkoosis/chunnel/pkg/registry"
)

// Contracts builds one Contract per interface found in the records and
// registers each into reg. Inconsistencies (the provider's own tests
// disagreeing about an input's outcome, or about a method's signature) are
// collected and returned rather than thrown, so one run reports every
// problem it finds.
func Contracts(records []artifact.Record, reg *registry.Registry, logger *slog.Logger) []contract.Inconsistency {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	groups := groupByInterface(records)

	var inconsistencies []contract.Inconsistency
	for _, g := range groups {
		c, found := buildContract(g)
		inconsistencies = append(inconsistencies, found...)
		if _, overwrote := reg.PutContract(c); overwrote {
			logger.Debug("re-registered contract", "interface", c.Interface.Name, "version", c.Version)
		}
	}
	return inconsistencies
}

type ifaceGroup struct {
	name    string
	records []artifact.Record
}

// groupByInterface buckets records in first-seen order.
func groupByInterface(records []artifact.Record) []*ifaceGroup {
	byName := make(map[string]*ifaceGroup)
	var order []*ifaceGroup
	for _, rec := range records {
		g, ok := byName[rec.Interface]
		if !ok {
			g = &ifaceGroup{name: rec.Interface}
			byName[rec.Interface] = g
			order = append(order, g)
		}
		g.records = append(g.records, rec)
	}
	return order
}

func buildContract(g *ifaceGroup) (*contract.Contract, []contract.Inconsistency) {
	sig := contract.InterfaceSignature{Name: g.name}
	seen := make(map[string]contract.MethodSignature)

	var inconsistencies []contract.Inconsistency
	examples := make([]contract.BehavioralExample, 0, len(g.records))

	for _, rec := range g.records {
		ms := rec.Signature()
		if prior, ok := seen[ms.Name]; !ok {
			seen[ms.Name] = ms
			sig.Methods = append(sig.Methods, ms)
		} else if !signaturesEqual(prior, ms) {
			inconsistencies = append(inconsistencies, contract.Inconsistency{
				Interface: g.name,
				Method:    ms.Name,
				Detail: fmt.Sprintf("conflicting declared signatures: %s vs %s",
					formatSignature(prior), formatSignature(ms)),
				Sources: []string{exampleSource(g, prior), rec.Test},
			})
		}

		example := contract.BehavioralExample{
			Method:  rec.Method,
			Input:   rec.Pattern(),
			Outcome: rec.Out(),
			Source:  rec.Test,
		}

		// Pairwise consistency: the same input pattern must not assert two
		// different outcomes.
		for _, prior := range examples {
			if prior.Method != example.Method || !prior.Input.Equal(example.Input) {
				continue
			}
			if !prior.Outcome.Equal(example.Outcome) {
				inconsistencies = append(inconsistencies, contract.Inconsistency{
					Interface: g.name,
					Method:    example.Method,
					Detail: fmt.Sprintf("same input declares %s and %s",
						prior.Outcome.String(), example.Outcome.String()),
					Sources: []string{prior.Source, example.Source},
				})
			}
		}
		examples = append(examples, example)
	}

	c := &contract.Contract{
		Interface: sig,
		Examples:  examples,
		Version:   contract.Fingerprint(sig, examples),
	}
	return c, inconsistencies
}

func signaturesEqual(a, b contract.MethodSignature) bool {
	if a.Name != b.Name || len(a.Params) != len(b.Params) {
		return false
	}
	if a.Returns.Normalized() != b.Returns.Normalized() {
		return false
	}
	for i := range a.Params {
		if a.Params[i].Normalized() != b.Params[i].Normalized() {
			return false
		}
	}
	return true
}

func formatSignature(m contract.MethodSignature) string {
	params := ""
	for i, p := range m.Params {
		if i > 0 {
			params += ", "
		}
		params += string(p)
	}
	return fmt.Sprintf("%s(%s) %s", m.Name, params, m.Returns)
}

// exampleSource finds the test that first declared a method's signature, for
// naming both sides of a signature conflict.
func exampleSource(g *ifaceGroup, ms contract.MethodSignature) string {
	for _, rec := range g.records {
		if rec.Method == ms.Name && signaturesEqual(rec.Signature(), ms) {
			return rec.Test
		}
	}
	return ""
}
