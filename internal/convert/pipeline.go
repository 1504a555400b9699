// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/office-convert/internal/plan"
	"github.com/pdiddy/office-convert/pkg/types"
)

// Pipeline wires discovery, planning, backend selection, and aggregation
// for one run.
type Pipeline struct {
	SourceDir string
	DestDir   string
	Format    types.TargetFormat

	Primary  Backend
	Fallback Backend

	// Out receives the console report.
	Out io.Writer

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run performs one conversion run and returns its summary. ExitCode is set
// on every path, including a missing source directory (2) and an empty
// source tree (0). Source and output folders are resolved to absolute
// paths before any job is planned.
func (p *Pipeline) Run(ctx context.Context) types.RunSummary {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	summary := types.RunSummary{
		ID:        uuid.NewString(),
		Format:    p.Format,
		StartedAt: now(),
	}
	finish := func(code int) types.RunSummary {
		summary.ExitCode = code
		summary.FinishedAt = now()
		return summary
	}
	fail := func(msg string) types.RunSummary {
		fmt.Fprintln(p.Out, msg)
		summary.Errors = []string{msg}
		return finish(ExitFailed)
	}

	// Automation servers run out of process and resolve relative paths
	// against their own working directory.
	src, err := filepath.Abs(p.SourceDir)
	if err != nil {
		return fail(fmt.Sprintf("Resolving source folder %s: %v", p.SourceDir, err))
	}
	dst, err := filepath.Abs(p.DestDir)
	if err != nil {
		return fail(fmt.Sprintf("Resolving output folder %s: %v", p.DestDir, err))
	}

	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return fail(fmt.Sprintf("Source folder not found: %s", src))
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fail(fmt.Sprintf("Creating output folder %s: %v", dst, err))
	}

	batch, err := plan.Batch(src, dst, p.Format, plan.Discover(src))
	if err != nil {
		return fail(fmt.Sprintf("Planning conversion: %v", err))
	}

	summary.Total = batch.Total()
	if summary.Total == 0 {
		fmt.Fprintln(p.Out, "No Office files found to convert.")
		return finish(ExitOK)
	}

	if p.Format == types.FormatText {
		fmt.Fprintf(p.Out, "Found %d files. Starting conversion to TXT...\n", summary.Total)
	} else {
		fmt.Fprintf(p.Out, "Found %d files. Starting conversion...\n", summary.Total)
	}

	sel := NewSelector(p.Primary, p.Fallback, p.Out).Run(ctx, batch)
	summary.Backend = sel.Backend
	summary.Converted = sel.Outcome.Converted
	summary.Errors = sel.Outcome.Errors

	PrintSummary(p.Out, summary.Total, summary.Converted, summary.Errors)
	return finish(ExitCode(summary.Total, summary.Converted, summary.Errors))
}
