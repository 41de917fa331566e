package report

// Renderer converts an assembled report to formatted output.
type Renderer interface {
	Render(r *Report) string
}

// kindLabel is the short human label used by all renderers.
func kindLabel(kind string) string {
	switch kind {
	case "corresponds":
		return "OK"
	case "missing-contract":
		return "MISSING CONTRACT"
	case "unknown-method":
		return "UNKNOWN METHOD"
	case "argument-mismatch":
		return "ARGUMENT MISMATCH"
	case "outcome-mismatch":
		return "OUTCOME MISMATCH"
	default:
		return kind
	}
}
