package report

import (
	"fmt"
	"strings"

	"github.com/dkoosis/chunnel/pkg/contract"
)

// Plain renders a report as terse deterministic text: no ANSI codes, stable
// ordering, one result per line. The format CI logs and diff tools see.
type Plain struct{}

// NewPlain creates a plain-text renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render formats the report as plain text.
func (p *Plain) Render(r *Report) string {
	var sb strings.Builder

	for _, d := range r.Diagnostics {
		fmt.Fprintf(&sb, "INCONSISTENT %s.%s: %s", d.Interface, d.Method, d.Detail)
		if len(d.Sources) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(d.Sources, " vs "))
		}
		sb.WriteString("\n")
	}
	if len(r.Diagnostics) > 0 {
		sb.WriteString("\n")
	}

	for _, g := range r.Groups() {
		version := g.Version
		if version == "" {
			version = "none"
		}
		fmt.Fprintf(&sb, "%s contract=%s\n", g.Name, version)
		for _, m := range g.Methods {
			for _, res := range m.Results {
				fmt.Fprintf(&sb, "  %s %s.%s [%s]", kindLabel(string(res.Kind)), g.Name, m.Name, res.Expectation.Test)
				if res.Kind.IsMismatch() {
					fmt.Fprintf(&sb, ": %s", res.Explanation)
				}
				sb.WriteString("\n")
			}
		}
	}

	for _, name := range r.Unexercised {
		fmt.Fprintf(&sb, "UNEXERCISED %s\n", name)
	}

	sb.WriteString("\n")
	switch r.Verdict {
	case VerdictEmpty:
		sb.WriteString("NOTHING TO CHECK: no expectations recorded\n")
	case VerdictPass:
		fmt.Fprintf(&sb, "PASS: %d expectation(s)\n", r.Summary.Total)
	default:
		fmt.Fprintf(&sb, "FAIL: %d of %d expectation(s) mismatched\n", r.Summary.Mismatches, r.Summary.Total)
	}
	for _, kind := range contract.Kinds() {
		if n := r.Summary.ByKind[kind]; n > 0 {
			fmt.Fprintf(&sb, "  %s=%d\n", string(kind), n)
		}
	}
	return sb.String()
}
