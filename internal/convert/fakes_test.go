// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/office-convert/internal/automation"
	"github.com/pdiddy/office-convert/internal/plan"
	"github.com/pdiddy/office-convert/pkg/types"
)

// fakeBridge implements automation.Bridge over in-memory services.
type fakeBridge struct {
	connectErr error
	session    *fakeSession
	connects   int
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{session: &fakeSession{
		word: &fakeWord{openErr: map[string]error{}},
		ppt:  &fakePowerPoint{openErr: map[string]error{}, slides: map[string][][]automation.ShapeNode{}},
	}}
}

func (b *fakeBridge) Connect() (automation.Session, error) {
	b.connects++
	if b.connectErr != nil {
		return nil, b.connectErr
	}
	return b.session, nil
}

type fakeSession struct {
	wordErr     error
	pptErr      error
	word        *fakeWord
	ppt         *fakePowerPoint
	wordStarts  int
	pptStarts   int
	closed      int
	closedAfter []string // services still running when Close was called
}

func (s *fakeSession) StartWordProcessor() (automation.WordProcessor, error) {
	s.wordStarts++
	if s.wordErr != nil {
		return nil, s.wordErr
	}
	return s.word, nil
}

func (s *fakeSession) StartPresentation() (automation.PresentationService, error) {
	s.pptStarts++
	if s.pptErr != nil {
		return nil, s.pptErr
	}
	return s.ppt, nil
}

func (s *fakeSession) Close() error {
	s.closed++
	if s.wordStarts > 0 && s.wordErr == nil && s.word.quits == 0 {
		s.closedAfter = append(s.closedAfter, "word")
	}
	if s.pptStarts > 0 && s.pptErr == nil && s.ppt.quits == 0 {
		s.closedAfter = append(s.closedAfter, "ppt")
	}
	return nil
}

type fakeWord struct {
	openErr    map[string]error // keyed by source base name
	panicOn    string
	saveAs2Err error
	quitErr    error
	onOpen     func(path string)

	opened      []string
	formats     []automation.WordFormat
	saveAsCalls int
	closes      []bool
	quits       int
}

func (w *fakeWord) OpenReadOnly(path string) (automation.Document, error) {
	base := filepath.Base(path)
	if base == w.panicOn {
		panic("automation server crashed")
	}
	if err, ok := w.openErr[base]; ok {
		return nil, err
	}
	w.opened = append(w.opened, path)
	if w.onOpen != nil {
		w.onOpen(path)
	}
	return &fakeDocument{w: w}, nil
}

func (w *fakeWord) Quit() error {
	w.quits++
	return w.quitErr
}

type fakeDocument struct {
	w *fakeWord
}

func (d *fakeDocument) SaveAs2(path string, format automation.WordFormat) error {
	if d.w.saveAs2Err != nil {
		return d.w.saveAs2Err
	}
	d.w.formats = append(d.w.formats, format)
	return os.WriteFile(path, []byte(fmt.Sprintf("word format %d", format)), 0o644)
}

func (d *fakeDocument) SaveAs(path string, format automation.WordFormat) error {
	d.w.saveAsCalls++
	d.w.formats = append(d.w.formats, format)
	return os.WriteFile(path, []byte(fmt.Sprintf("word format %d", format)), 0o644)
}

func (d *fakeDocument) Close(saveChanges bool) error {
	d.w.closes = append(d.w.closes, saveChanges)
	return nil
}

type fakePowerPoint struct {
	openErr   map[string]error
	slides    map[string][][]automation.ShapeNode // keyed by source base name
	exportErr error

	opened []string
	closes int
	quits  int
}

func (p *fakePowerPoint) OpenHidden(path string) (automation.Presentation, error) {
	base := filepath.Base(path)
	if err, ok := p.openErr[base]; ok {
		return nil, err
	}
	p.opened = append(p.opened, path)
	return &fakePresentation{p: p, slides: p.slides[base]}, nil
}

func (p *fakePowerPoint) Quit() error {
	p.quits++
	return nil
}

type fakePresentation struct {
	p      *fakePowerPoint
	slides [][]automation.ShapeNode
}

func (f *fakePresentation) ExportFixedFormat(path string, format automation.FixedFormat) error {
	if f.p.exportErr != nil {
		return f.p.exportErr
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("pdf format %d", format)), 0o644)
}

func (f *fakePresentation) SlideCount() (int, error) {
	return len(f.slides), nil
}

func (f *fakePresentation) SlideShapes(i int) ([]automation.ShapeNode, error) {
	if f.slides[i] == nil {
		return nil, errors.New("slide unreadable")
	}
	return f.slides[i], nil
}

func (f *fakePresentation) Close() error {
	f.p.closes++
	return nil
}

// fakeHost implements host.Host. By default it writes the destination file.
type fakeHost struct {
	name    string
	convert func(job types.ConversionJob, format types.TargetFormat) error
	calls   []types.ConversionJob
}

func (h *fakeHost) Name() string {
	if h.name == "" {
		return "powershell"
	}
	return h.name
}

func (h *fakeHost) Available() bool { return true }

func (h *fakeHost) Convert(_ context.Context, job types.ConversionJob, format types.TargetFormat) error {
	h.calls = append(h.calls, job)
	if h.convert != nil {
		return h.convert(job, format)
	}
	return os.WriteFile(job.DestinationPath, []byte("converted by host"), 0o644)
}

// fakeBackend implements Backend with a canned result.
type fakeBackend struct {
	name  string
	out   types.ConversionOutcome
	err   error
	calls int
}

func (b *fakeBackend) Name() string { return b.name }

func (b *fakeBackend) Run(context.Context, types.JobBatch) (types.ConversionOutcome, error) {
	b.calls++
	return b.out, b.err
}

// sourceTree creates empty source files under a fresh src directory and
// returns the source and destination roots.
func sourceTree(t *testing.T, names ...string) (srcRoot, dstRoot string) {
	t.Helper()
	dir := t.TempDir()
	srcRoot = filepath.Join(dir, "To Change")
	dstRoot = filepath.Join(dir, "PDFs")
	require.NoError(t, os.MkdirAll(srcRoot, 0o755))
	for _, name := range names {
		path := filepath.Join(srcRoot, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("office bytes"), 0o644))
	}
	return srcRoot, dstRoot
}

// batchFor plans jobs for names in the given order.
func batchFor(t *testing.T, srcRoot, dstRoot string, format types.TargetFormat, names ...string) types.JobBatch {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(srcRoot, filepath.FromSlash(name))
	}
	batch, err := plan.Batch(srcRoot, dstRoot, format, slices.Values(paths))
	require.NoError(t, err)
	return batch
}
