// Package verify orchestrates a full verification run: read provider and
// consumer artifacts, extract contracts and expectations into a fresh
// registry, match, and assemble the report.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/chunnel/pkg/artifact"
	"github.com/dkoosis/chunnel/pkg/contract"
	"github.com/dkoosis/chunnel/pkg/extract"
	"github.com/dkoosis/chunnel/pkg/match"
	"github.com/dkoosis/chunnel/pkg/registry"
	"github.com/dkoosis/chunnel/pkg/report"
)

// Options configures a run.
type Options struct {
	ContractPaths    []string // provider contract-test artifacts
	ExpectationPaths []string // consumer collaboration-test artifacts

	// FatalInconsistency makes provider-side inconsistencies fail the run.
	FatalInconsistency bool
	// Workers bounds concurrent artifact processing; 0 means GOMAXPROCS.
	Workers int
	// RunID overrides the generated report identifier (tests).
	RunID  string
	Logger *slog.Logger
}

// Run executes one verification. Extraction is parallel per artifact file;
// both sides write into the shared registry, whose snapshot is the barrier
// before matching. Any unreadable or malformed artifact aborts the whole
// run: a registry built from untrusted inputs has nothing meaningful to
// say.
func Run(ctx context.Context, opts Options) (*report.Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reg := registry.New(logger)

	var mu sync.Mutex
	var diags []contract.Inconsistency

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range opts.ContractPaths {
		g.Go(func() error {
			records, err := readArtifact(ctx, path, logger)
			if err != nil {
				return err
			}
			found := extract.Contracts(records, reg, logger)
			if len(found) > 0 {
				mu.Lock()
				diags = append(diags, found...)
				mu.Unlock()
			}
			return nil
		})
	}
	for _, path := range opts.ExpectationPaths {
		g.Go(func() error {
			records, err := readArtifact(ctx, path, logger)
			if err != nil {
				return err
			}
			extract.Expectations(records, reg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := reg.Snapshot()
	results := match.Run(snap)

	for _, d := range diags {
		logger.Warn("contract inconsistency",
			"interface", d.Interface, "method", d.Method, "detail", d.Detail)
	}

	return report.Build(results, diags, snap.Unexercised(), report.Options{
		FatalInconsistency: opts.FatalInconsistency,
		RunID:              opts.RunID,
	}), nil
}

func readArtifact(ctx context.Context, path string, logger *slog.Logger) ([]artifact.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	records, err := artifact.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifacts: %w", err)
	}
	logger.Debug("artifact read", "path", path, "records", len(records), "elapsed", time.Since(start))
	return records, nil
}
