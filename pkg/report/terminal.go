package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/chunnel/pkg/contract"
)

// Terminal renders a report as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats the full report: diagnostics first (they gate everything
// else), then results grouped by interface and method, then the summary and
// verdict.
func (t *Terminal) Render(r *Report) string {
	var sb strings.Builder

	if len(r.Diagnostics) > 0 {
		sb.WriteString(t.renderDiagnostics(r))
		sb.WriteString("\n")
	}

	for _, g := range r.Groups() {
		sb.WriteString(t.renderGroup(g))
		sb.WriteString("\n")
	}

	if len(r.Unexercised) > 0 {
		sb.WriteString(t.theme.Muted.Render("unexercised contracts: " + strings.Join(r.Unexercised, ", ")))
		sb.WriteString("\n\n")
	}

	sb.WriteString(t.renderSummary(r))
	return sb.String()
}

func (t *Terminal) renderDiagnostics(r *Report) string {
	var sb strings.Builder
	header := fmt.Sprintf("CONTRACT INCONSISTENCIES (%d)", len(r.Diagnostics))
	if r.FatalInconsistency {
		header += " [fatal]"
	}
	sb.WriteString(t.theme.Bold.Render(t.theme.Error.Render(header)))
	sb.WriteString("\n")
	for _, d := range r.Diagnostics {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Error.Render(t.theme.Icons.Warn + " " + d.Interface + "." + d.Method))
		sb.WriteString(" " + d.Detail)
		sb.WriteString("\n")
		if len(d.Sources) > 0 {
			sb.WriteString("    ")
			sb.WriteString(t.theme.Muted.Render("between: " + strings.Join(d.Sources, " and ")))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (t *Terminal) renderGroup(g InterfaceGroup) string {
	var sb strings.Builder
	header := g.Name
	if g.Version != "" {
		header += " @" + g.Version
	} else {
		header += " (no contract)"
	}
	sb.WriteString(t.theme.Bold.Render(header))
	sb.WriteString("\n")

	for _, m := range g.Methods {
		sb.WriteString("  " + t.theme.Primary.Render(m.Name) + "\n")

		maxTest := 0
		for _, res := range m.Results {
			if w := runewidth.StringWidth(res.Expectation.Test); w > maxTest {
				maxTest = w
			}
		}
		if maxTest > 50 {
			maxTest = 50
		}

		for _, res := range m.Results {
			icon, style := t.kindIconStyle(res.Kind)
			sb.WriteString("    ")
			sb.WriteString(style.Render(icon + " "))
			sb.WriteString(padRight(runewidth.Truncate(res.Expectation.Test, maxTest, "…"), maxTest))
			sb.WriteString("  ")
			sb.WriteString(style.Render(kindLabel(string(res.Kind))))
			sb.WriteString("\n")
			if res.Kind.IsMismatch() && res.Explanation != "" {
				sb.WriteString("      ")
				sb.WriteString(t.theme.Muted.Render(res.Explanation))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func (t *Terminal) renderSummary(r *Report) string {
	var sb strings.Builder

	switch r.Verdict {
	case VerdictPass:
		sb.WriteString(t.theme.Success.Render(t.theme.Icons.Pass+" PASS") +
			t.theme.Muted.Render(fmt.Sprintf("  %d expectation(s) correspond", r.Summary.Total)))
	case VerdictEmpty:
		sb.WriteString(t.theme.Warning.Render(t.theme.Icons.Warn + " NOTHING TO CHECK") +
			t.theme.Muted.Render("  no expectations were recorded; is the consumer suite instrumented?"))
	default:
		sb.WriteString(t.theme.Error.Render(t.theme.Icons.Fail+" FAIL") +
			t.theme.Muted.Render(fmt.Sprintf("  %d of %d expectation(s) mismatched", r.Summary.Mismatches, r.Summary.Total)))
	}
	sb.WriteString("\n")

	for _, kind := range contract.Kinds() {
		n := r.Summary.ByKind[kind]
		if n == 0 {
			continue
		}
		_, style := t.kindIconStyle(kind)
		sb.WriteString("  " + style.Render(fmt.Sprintf("%-18s %d", kindLabel(string(kind)), n)) + "\n")
	}

	sb.WriteString(t.theme.Muted.Render("run " + r.RunID))
	sb.WriteString("\n")
	return sb.String()
}

func (t *Terminal) kindIconStyle(kind contract.Kind) (string, lipgloss.Style) {
	switch kind {
	case contract.Corresponds:
		return t.theme.Icons.Pass, t.theme.Success
	case contract.MissingContract:
		return t.theme.Icons.Warn, t.theme.Warning
	default:
		return t.theme.Icons.Fail, t.theme.Error
	}
}

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
