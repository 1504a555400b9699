// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/office-convert/internal/automation"
	"github.com/pdiddy/office-convert/internal/host"
	"github.com/pdiddy/office-convert/pkg/types"
)

type pipelineFixture struct {
	bridge *fakeBridge
	host   *fakeHost
	out    bytes.Buffer
	p      *Pipeline
}

func newPipeline(t *testing.T, format types.TargetFormat, names ...string) *pipelineFixture {
	t.Helper()
	src, dst := sourceTree(t, names...)
	f := &pipelineFixture{bridge: newFakeBridge(), host: &fakeHost{}}
	f.p = &Pipeline{
		SourceDir: src,
		DestDir:   dst,
		Format:    format,
		Primary:   NewDirectBackend(f.bridge, nil),
		Fallback:  NewSubprocessBackend(func() (host.Host, error) { return f.host, nil }, nil),
		Out:       &f.out,
	}
	return f
}

func TestPipeline_PDFRun(t *testing.T) {
	f := newPipeline(t, types.FormatPDF, "A.docx", "B.pptx", "sub/C.doc")

	summary := f.p.Run(context.Background())

	assert.Equal(t, ExitOK, summary.ExitCode)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Converted)
	assert.Equal(t, "direct", summary.Backend)
	assert.NotEmpty(t, summary.ID)
	for _, name := range []string{"A.pdf", "B.pdf", filepath.Join("sub", "C.pdf")} {
		assert.FileExists(t, filepath.Join(f.p.DestDir, name))
	}
	assert.Contains(t, f.out.String(), "Found 3 files. Starting conversion...")
	assert.Contains(t, f.out.String(), "Converted: 3 / 3")
	assert.NotContains(t, f.out.String(), "Errors:")
	assert.Empty(t, f.host.calls)
}

func TestPipeline_SecondRunConvertsNothing(t *testing.T) {
	f := newPipeline(t, types.FormatPDF, "A.docx", "B.pptx", "sub/C.doc")
	require.Equal(t, ExitOK, f.p.Run(context.Background()).ExitCode)

	f.out.Reset()
	summary := f.p.Run(context.Background())

	assert.Equal(t, ExitOK, summary.ExitCode)
	assert.Zero(t, summary.Converted)
	assert.Equal(t, 3, summary.Total)
	assert.Contains(t, f.out.String(), "Converted: 0 / 3")
}

func TestPipeline_TotalFailure(t *testing.T) {
	f := newPipeline(t, types.FormatPDF, "bad.docx")
	f.bridge.session.word.openErr["bad.docx"] = errors.New("document is corrupt")

	summary := f.p.Run(context.Background())

	assert.Equal(t, ExitFailed, summary.ExitCode)
	assert.Contains(t, f.out.String(), "Converted: 0 / 1")
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "bad.docx")
	assert.Contains(t, f.out.String(), "Errors:\n - WordProcessor failed for")
	assert.Empty(t, f.host.calls, "per-file failure never falls back")
}

func TestPipeline_PartialSuccess(t *testing.T) {
	f := newPipeline(t, types.FormatPDF, "good.docx", "bad.pptx")
	f.bridge.session.ppt.openErr["bad.pptx"] = errors.New("cannot open")

	summary := f.p.Run(context.Background())

	assert.Equal(t, ExitPartial, summary.ExitCode)
	assert.Contains(t, f.out.String(), "Converted: 1 / 2")
	assert.Len(t, summary.Errors, 1)
}

func TestPipeline_MissingSource(t *testing.T) {
	f := newPipeline(t, types.FormatPDF)
	f.p.SourceDir = filepath.Join(t.TempDir(), "To Change")

	summary := f.p.Run(context.Background())

	assert.Equal(t, ExitFailed, summary.ExitCode)
	assert.Contains(t, f.out.String(), "Source folder not found: "+f.p.SourceDir)
	assert.Zero(t, f.bridge.connects)
	assert.NoDirExists(t, f.p.DestDir)
}

func TestPipeline_EmptySource(t *testing.T) {
	f := newPipeline(t, types.FormatPDF, "readme.txt")

	summary := f.p.Run(context.Background())

	assert.Equal(t, ExitOK, summary.ExitCode)
	assert.Zero(t, summary.Total)
	assert.Contains(t, f.out.String(), "No Office files found to convert.")
	assert.Zero(t, f.bridge.connects)
	assert.DirExists(t, f.p.DestDir)
}

func TestPipeline_FallsBackWhenBridgeUnavailable(t *testing.T) {
	f := newPipeline(t, types.FormatText, "A.docx", "B.pptx")
	f.bridge.connectErr = fmt.Errorf("%w: COM automation requires Windows", automation.ErrBridgeUnavailable)

	summary := f.p.Run(context.Background())

	assert.Equal(t, ExitOK, summary.ExitCode)
	assert.Equal(t, "subprocess", summary.Backend)
	assert.Equal(t, 2, summary.Converted)
	assert.Len(t, f.host.calls, 2)
	out := f.out.String()
	assert.Contains(t, out, "Found 2 files. Starting conversion to TXT...")
	assert.Contains(t, out, "COM automation requires Windows")
	assert.Contains(t, out, "Falling back to subprocess-based conversion...")
	assert.FileExists(t, filepath.Join(f.p.DestDir, "A.txt"))
}

func TestPipeline_TextPresentation(t *testing.T) {
	f := newPipeline(t, types.FormatText, "deck.pptx")
	f.bridge.session.ppt.slides["deck.pptx"] = [][]automation.ShapeNode{{
		automation.GroupShape(automation.TextShape("Grouped text")),
		automation.TableShape([][]string{{"r1c1", "r1c2"}, {"r2c1", "r2c2"}}),
	}}

	summary := f.p.Run(context.Background())
	require.Equal(t, ExitOK, summary.ExitCode)

	data, err := os.ReadFile(filepath.Join(f.p.DestDir, "deck.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Slide 1\nGrouped text\nr1c1\nr1c2\nr2c1\nr2c2\n", string(data))
}

func TestPipeline_Timestamps(t *testing.T) {
	f := newPipeline(t, types.FormatPDF, "A.docx")
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := start
	f.p.Now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	summary := f.p.Run(context.Background())

	assert.Equal(t, start.Add(time.Second), summary.StartedAt)
	assert.True(t, summary.FinishedAt.After(summary.StartedAt))
}

func TestPipeline_RelativeRootsReachServicesAbsolute(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for _, name := range []string{"A.docx", "sub/B.doc", "deck.pptx"} {
		path := filepath.Join("To Change", filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("office bytes"), 0o644))
	}
	bridge := newFakeBridge()
	h := &fakeHost{}
	var out bytes.Buffer
	p := &Pipeline{
		SourceDir: "To Change",
		DestDir:   "PDFs",
		Format:    types.FormatPDF,
		Primary:   NewDirectBackend(bridge, nil),
		Fallback:  NewSubprocessBackend(func() (host.Host, error) { return h, nil }, nil),
		Out:       &out,
	}

	summary := p.Run(context.Background())
	require.Equal(t, ExitOK, summary.ExitCode, out.String())

	opened := append(append([]string{}, bridge.session.word.opened...), bridge.session.ppt.opened...)
	require.Len(t, opened, 3)
	for _, path := range opened {
		assert.True(t, filepath.IsAbs(path), "service received %q", path)
	}
	assert.FileExists(t, filepath.Join(dir, "PDFs", "sub", "B.pdf"))

	bridge.connectErr = errors.New("no COM")
	p.DestDir = "PDFs-fallback"
	p.Run(context.Background())
	require.Len(t, h.calls, 3)
	for _, job := range h.calls {
		assert.True(t, filepath.IsAbs(job.SourcePath), "host received %q", job.SourcePath)
		assert.True(t, filepath.IsAbs(job.DestinationPath), "host received %q", job.DestinationPath)
	}
}

func TestPipeline_MissingRelativeSourceReportsAbsolutePath(t *testing.T) {
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	p := &Pipeline{
		SourceDir: "To Change",
		DestDir:   "PDFs",
		Format:    types.FormatPDF,
		Primary:   &fakeBackend{name: "direct"},
		Fallback:  &fakeBackend{name: "subprocess"},
		Out:       &out,
	}

	summary := p.Run(context.Background())

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, ExitFailed, summary.ExitCode)
	assert.Contains(t, out.String(), "Source folder not found: "+filepath.Join(wd, "To Change"))
}

func TestPipeline_CancelledRun(t *testing.T) {
	f := newPipeline(t, types.FormatPDF, "A.docx", "B.pptx")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := f.p.Run(ctx)

	assert.Equal(t, ExitFailed, summary.ExitCode)
	assert.Equal(t, []string{"conversion interrupted: context canceled"}, summary.Errors)
	assert.Zero(t, f.bridge.connects)
	assert.Empty(t, f.host.calls, "cancellation is not a reason to fall back")
	assert.NotContains(t, f.out.String(), "Falling back")
}
