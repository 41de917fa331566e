// chunnel verifies that consumer collaboration tests and provider contract
// tests still describe the same interfaces.
//
// Usage:
//
//	chunnel verify --contracts provider.ndjson --expectations consumer.ndjson
//	chunnel verify --contracts a.ndjson,b.ndjson --expectations c.ndjson --format json
//	chunnel version
//
// Inputs are NDJSON artifacts recorded by test instrumentation: provider
// files hold contract-test assertions, consumer files hold stub/verify
// interactions. chunnel never executes production code; it reads the
// records, diffs consumer assumptions against provider declarations, and
// reports every expectation as corresponding or mismatched.
//
// Exit status: 0 pass (or nothing to check), 1 mismatches found, 2 usage or
// input error, 3 fatal contract inconsistency.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dkoosis/chunnel/internal/config"
	"github.com/dkoosis/chunnel/internal/verify"
	"github.com/dkoosis/chunnel/internal/version"
	"github.com/dkoosis/chunnel/pkg/report"
)

const (
	exitPass          = 0
	exitMismatch      = 1
	exitUsage         = 2
	exitInconsistency = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "verify":
		return runVerify(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "chunnel %s (%s, built %s)\n", version.Version, version.CommitHash, version.BuildDate)
		return exitPass
	default:
		fmt.Fprintf(stderr, "chunnel: unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chunnel verify --contracts <files> --expectations <files> [flags]")
	fmt.Fprintln(w, "       chunnel version")
}

func runVerify(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("chunnel verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	contractsFlag := fs.String("contracts", "", "Comma-separated provider contract artifact files (required)")
	expectationsFlag := fs.String("expectations", "", "Comma-separated consumer expectation artifact files")
	formatFlag := fs.String("format", cfg.Format, "Output format: auto, terminal, plain, json")
	themeFlag := fs.String("theme", cfg.Theme, "Theme: default, orca, mono")
	advisoryFlag := fs.Bool("advisory-inconsistency", cfg.AdvisoryInconsistency,
		"Report provider contract inconsistencies without failing the run")
	workersFlag := fs.Int("workers", cfg.Workers, "Concurrent artifact readers (0 = GOMAXPROCS)")
	verboseFlag := fs.Bool("v", cfg.Debug, "Verbose logging to stderr")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *contractsFlag == "" {
		fmt.Fprintln(stderr, "chunnel verify: --contracts is required")
		return exitUsage
	}

	mode := resolveFormat(*formatFlag, stdout)
	if mode != "terminal" && mode != "plain" && mode != "json" {
		fmt.Fprintf(stderr, "chunnel verify: unknown format %q (expected auto, terminal, plain, json)\n", *formatFlag)
		return exitUsage
	}

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rep, err := verify.Run(context.Background(), verify.Options{
		ContractPaths:      splitPaths(*contractsFlag),
		ExpectationPaths:   splitPaths(*expectationsFlag),
		FatalInconsistency: !*advisoryFlag,
		Workers:            *workersFlag,
		Logger:             logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "chunnel verify: %v\n", err)
		return exitUsage
	}

	fmt.Fprint(stdout, selectRenderer(mode, *themeFlag, cfg.NoColor, stdout).Render(rep))
	return exitCode(rep)
}

func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func selectRenderer(mode, themeName string, noColor bool, w io.Writer) report.Renderer {
	switch mode {
	case "json":
		return report.NewJSON()
	case "plain":
		return report.NewPlain()
	default:
		theme := report.ThemeByName(themeName)
		if noColor || os.Getenv("NO_COLOR") != "" {
			theme = report.MonoTheme()
		}
		width := 80
		if f, ok := w.(*os.File); ok {
			if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
				width = tw
			}
		}
		return report.NewTerminal(theme, width)
	}
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = plain
	if f, ok := w.(*os.File); ok {
		if term.IsTerminal(int(f.Fd())) {
			return "terminal"
		}
	}
	return "plain"
}

// exitCode maps the report verdict to the process exit status. A fatal
// contract inconsistency gets its own code: the provider side must be fixed
// before correspondence means anything.
func exitCode(rep *report.Report) int {
	if rep.FatalInconsistency {
		return exitInconsistency
	}
	if rep.Verdict == report.VerdictFail {
		return exitMismatch
	}
	return exitPass
}
