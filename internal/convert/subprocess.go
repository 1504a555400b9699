// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pdiddy/office-convert/internal/host"
	"github.com/pdiddy/office-convert/pkg/types"
)

// HostResolver returns the scripting host. It is called once per run, when
// the subprocess backend starts.
type HostResolver func() (host.Host, error)

// SubprocessBackend converts each file with its own scripting-host
// invocation. A job counts as converted only if the host exits cleanly and
// the destination file exists afterwards.
type SubprocessBackend struct {
	resolve HostResolver
	logger  *slog.Logger
}

// NewSubprocessBackend creates a backend that resolves its host lazily.
func NewSubprocessBackend(resolve HostResolver, logger *slog.Logger) *SubprocessBackend {
	return &SubprocessBackend{
		resolve: resolve,
		logger:  loggerOrDefault(logger).With("component", "subprocess"),
	}
}

func (s *SubprocessBackend) Name() string { return "subprocess" }

// Run converts the batch one file at a time. It returns an error when no
// scripting host can be resolved, or alongside the partial outcome when
// ctx is cancelled mid-run.
func (s *SubprocessBackend) Run(ctx context.Context, batch types.JobBatch) (types.ConversionOutcome, error) {
	var out types.ConversionOutcome

	h, err := s.resolve()
	if err != nil {
		return out, fmt.Errorf("resolving scripting host: %w", err)
	}
	s.logger.Info("using scripting host", "host", h.Name())

	for _, kind := range types.Kinds {
		label := "Subprocess " + string(kind)
		for _, job := range batch.For(kind) {
			if err := interrupted(ctx); err != nil {
				return out, err
			}
			runJob(&out, s.logger, label, job, func() error {
				return convertWithHost(ctx, h, job, batch.Format)
			})
		}
	}
	return out, interrupted(ctx)
}

var errNoOutput = errors.New("produced no output file")

func convertWithHost(ctx context.Context, h host.Host, job types.ConversionJob, format types.TargetFormat) error {
	if err := h.Convert(ctx, job, format); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	if _, err := os.Stat(job.DestinationPath); err != nil {
		return errNoOutput
	}
	return nil
}
