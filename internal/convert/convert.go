// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert converts batches of Office documents through one of two
// interchangeable backends: a direct automation backend and a per-file
// subprocess backend used when the automation bridge cannot be loaded.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdiddy/office-convert/internal/plan"
	"github.com/pdiddy/office-convert/pkg/types"
)

// ErrUnavailable is returned by a Backend that cannot run at all on this
// machine. It is the only condition that triggers fallback.
var ErrUnavailable = errors.New("backend unavailable")

// Backend converts every job of a batch. Per-file failures are recorded in
// the returned outcome; a non-nil error means the backend did not run.
type Backend interface {
	// Name identifies the backend in reports ("direct" or "subprocess").
	Name() string

	// Run converts the batch, WordProcessor jobs first.
	Run(ctx context.Context, batch types.JobBatch) (types.ConversionOutcome, error)
}

// runJob applies the per-file sequence shared by both backends: create the
// destination directory, skip the job if the destination is up to date,
// otherwise call convert. Failures are recorded as
// "<label> failed for <path>: <detail>" and never stop the batch. A job cut
// short by cancellation is not recorded; the backend reports the
// interruption once.
func runJob(out *types.ConversionOutcome, logger *slog.Logger, label string, job types.ConversionJob, convert func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		if err := plan.EnsureParentDir(job.DestinationPath); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if plan.UpToDate(job.SourcePath, job.DestinationPath) {
			logger.Debug("skipped, destination up to date", "source", job.SourcePath)
			return errSkipped
		}
		out.Attempted++
		return convert()
	}()

	switch {
	case errors.Is(err, errSkipped), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
	case err != nil:
		out.Fail(fmt.Sprintf("%s failed for %s: %v", label, job.SourcePath, err))
		logger.Debug("conversion failed", "source", job.SourcePath, "error", err)
	default:
		out.Converted++
		logger.Debug("converted", "source", job.SourcePath, "destination", job.DestinationPath)
	}
}

var errSkipped = errors.New("skipped")

// interrupted reports a cancelled run once, as a run-level error.
func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("conversion interrupted: %w", err)
	}
	return nil
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
