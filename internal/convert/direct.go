// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pdiddy/office-convert/internal/automation"
	"github.com/pdiddy/office-convert/pkg/types"
)

// DirectBackend drives the Office applications in-process through an
// automation bridge. One service instance per application kind is started
// and reused for every job of that kind.
type DirectBackend struct {
	bridge automation.Bridge
	logger *slog.Logger
}

// NewDirectBackend creates a backend over the given bridge.
func NewDirectBackend(bridge automation.Bridge, logger *slog.Logger) *DirectBackend {
	return &DirectBackend{
		bridge: bridge,
		logger: loggerOrDefault(logger).With("component", "direct"),
	}
}

func (d *DirectBackend) Name() string { return "direct" }

// Run connects the bridge and converts the batch. It returns ErrUnavailable
// only when the bridge cannot be connected; every later failure is recorded
// in the outcome. Cancelling ctx stops the run before the next job and
// Run returns the partial outcome with an interruption error. Started
// services are quit and the bridge is released before Run returns, also
// on panic.
func (d *DirectBackend) Run(ctx context.Context, batch types.JobBatch) (types.ConversionOutcome, error) {
	var out types.ConversionOutcome
	if err := interrupted(ctx); err != nil {
		return out, err
	}

	session, err := d.bridge.Connect()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			d.logger.Warn("releasing automation bridge", "error", err)
		}
	}()

	if jobs := batch.For(types.WordProcessor); len(jobs) > 0 {
		out.Merge(d.runWordProcessor(ctx, session, jobs, batch.Format))
	}
	if err := interrupted(ctx); err != nil {
		return out, err
	}
	if jobs := batch.For(types.Presentation); len(jobs) > 0 {
		out.Merge(d.runPresentation(ctx, session, jobs, batch.Format))
	}
	return out, interrupted(ctx)
}

func (d *DirectBackend) runWordProcessor(ctx context.Context, session automation.Session, jobs []types.ConversionJob, format types.TargetFormat) types.ConversionOutcome {
	var out types.ConversionOutcome

	app, err := session.StartWordProcessor()
	if err != nil {
		out.Fail(fmt.Sprintf("Failed to start %s: %v", types.WordProcessor, err))
		return out
	}
	defer d.quit(types.WordProcessor, app)

	code := automation.WordFormatPDF
	if format == types.FormatText {
		code = automation.WordFormatUnicodeText
	}
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		runJob(&out, d.logger, string(types.WordProcessor), job, func() error {
			return saveDocument(app, job, code)
		})
	}
	return out
}

func (d *DirectBackend) runPresentation(ctx context.Context, session automation.Session, jobs []types.ConversionJob, format types.TargetFormat) types.ConversionOutcome {
	var out types.ConversionOutcome

	app, err := session.StartPresentation()
	if err != nil {
		out.Fail(fmt.Sprintf("Failed to start %s: %v", types.Presentation, err))
		return out
	}
	defer d.quit(types.Presentation, app)

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		runJob(&out, d.logger, string(types.Presentation), job, func() error {
			return exportPresentation(app, job, format)
		})
	}
	return out
}

type quitter interface {
	Quit() error
}

func (d *DirectBackend) quit(kind types.ApplicationKind, app quitter) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("quitting service", "kind", kind, "panic", r)
		}
	}()
	if err := app.Quit(); err != nil {
		d.logger.Warn("quitting service", "kind", kind, "error", err)
	}
}

// saveDocument opens job's source read-only and saves it in format. SaveAs
// is tried when SaveAs2 fails. The document is closed without saving.
func saveDocument(app automation.WordProcessor, job types.ConversionJob, format automation.WordFormat) (err error) {
	doc, err := app.OpenReadOnly(job.SourcePath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := doc.Close(false); cerr != nil && err == nil {
			err = fmt.Errorf("closing document: %w", cerr)
		}
	}()

	if err := doc.SaveAs2(job.DestinationPath, format); err != nil {
		if err := doc.SaveAs(job.DestinationPath, format); err != nil {
			return err
		}
	}
	return nil
}

// exportPresentation opens job's source without a window and either exports
// it as PDF or writes its slide text.
func exportPresentation(app automation.PresentationService, job types.ConversionJob, format types.TargetFormat) (err error) {
	pres, err := app.OpenHidden(job.SourcePath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pres.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing presentation: %w", cerr)
		}
	}()

	if format == types.FormatPDF {
		return pres.ExportFixedFormat(job.DestinationPath, automation.FixedFormatPDF)
	}
	return os.WriteFile(job.DestinationPath, []byte(SlideText(pres)), 0o644)
}
