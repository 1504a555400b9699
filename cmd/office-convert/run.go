// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office-convert/internal/automation"
	"github.com/pdiddy/office-convert/internal/convert"
	"github.com/pdiddy/office-convert/internal/history"
	"github.com/pdiddy/office-convert/internal/host"
	"github.com/pdiddy/office-convert/internal/logging"
	"github.com/pdiddy/office-convert/internal/report"
	"github.com/pdiddy/office-convert/pkg/types"
)

// runConversion is shared by the pdf and txt commands.
func runConversion(cmd *cobra.Command, format types.TargetFormat) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if r, _ := cmd.Flags().GetString("report"); r != "" {
		cfg.Report = r
	}
	if cfg.Report != "" {
		if _, err := report.ParseFormat(cfg.Report); err != nil {
			return err
		}
	}

	logger := logging.BuildLogger(cfg.LogLevel)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := &convert.Pipeline{
		SourceDir: cfg.SourceDir,
		DestDir:   cfg.DestDir(format),
		Format:    format,
		Primary:   convert.NewDirectBackend(automation.NewOLEBridge(), logger),
		Fallback: convert.NewSubprocessBackend(func() (host.Host, error) {
			return host.Detect(cfg.Host)
		}, logger),
		Out: cmd.OutOrStdout(),
	}
	summary := p.Run(ctx)
	logger.Info("run finished", "id", summary.ID, "backend", summary.Backend,
		"total", summary.Total, "converted", summary.Converted, "exit_code", summary.ExitCode)

	afterRun(context.WithoutCancel(ctx), cmd, cfg, summary, logger)

	if summary.ExitCode != convert.ExitOK {
		return &exitError{code: summary.ExitCode}
	}
	return nil
}

// afterRun records history and writes the report. Failures here are
// reported but never change the run's exit code.
func afterRun(ctx context.Context, cmd *cobra.Command, cfg types.Config, summary types.RunSummary, logger *slog.Logger) {
	if cfg.History.Enabled {
		if err := recordHistory(ctx, cfg.History.Path, summary); err != nil {
			logger.Warn("recording run history", "path", cfg.History.Path, "error", err)
		}
	}
	if cfg.Report != "" {
		if err := report.Write(cfg.Report, summary); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Writing report %s: %v\n", cfg.Report, err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", cfg.Report)
	}
}

func recordHistory(ctx context.Context, path string, summary types.RunSummary) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, summary)
}
