// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build windows

package automation

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

const (
	progIDWord       = "Word.Application"
	progIDPowerPoint = "PowerPoint.Application"

	wdAlertsNone = 0
	msoTrue      = -1
	msoFalse     = 0
	msoGroup     = 6

	// sFalse is returned by CoInitializeEx when the thread is already initialized.
	sFalse = 0x1
)

// OLEBridge drives the Office applications through COM.
type OLEBridge struct{}

// NewOLEBridge returns the COM bridge.
func NewOLEBridge() *OLEBridge {
	return &OLEBridge{}
}

// Connect locks the calling goroutine to its OS thread and initializes a
// single-threaded COM apartment on it.
func (b *OLEBridge) Connect() (Session, error) {
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("%w: initializing COM: %v", ErrBridgeUnavailable, err)
		}
	}
	return &oleSession{}, nil
}

type oleSession struct{}

func (s *oleSession) StartWordProcessor() (WordProcessor, error) {
	app, err := createApp(progIDWord)
	if err != nil {
		return nil, err
	}
	if _, err := oleutil.PutProperty(app, "Visible", false); err != nil {
		app.Release()
		return nil, fmt.Errorf("hiding %s: %w", progIDWord, err)
	}
	if _, err := oleutil.PutProperty(app, "DisplayAlerts", wdAlertsNone); err != nil {
		app.Release()
		return nil, fmt.Errorf("silencing %s alerts: %w", progIDWord, err)
	}
	return &oleWord{app: app}, nil
}

func (s *oleSession) StartPresentation() (PresentationService, error) {
	app, err := createApp(progIDPowerPoint)
	if err != nil {
		return nil, err
	}
	return &olePowerPoint{app: app}, nil
}

func (s *oleSession) Close() error {
	ole.CoUninitialize()
	runtime.UnlockOSThread()
	return nil
}

func createApp(progID string) (*ole.IDispatch, error) {
	unknown, err := oleutil.CreateObject(progID)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", progID, err)
	}
	defer unknown.Release()

	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("querying %s dispatch: %w", progID, err)
	}
	return app, nil
}

type oleWord struct {
	app *ole.IDispatch
}

func (w *oleWord) OpenReadOnly(path string) (Document, error) {
	docs, err := dispProperty(w.app, "Documents")
	if err != nil {
		return nil, err
	}
	defer docs.Release()

	// Open(FileName, ConfirmConversions, ReadOnly)
	v, err := oleutil.CallMethod(docs, "Open", path, false, true)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &oleDocument{disp: v.ToIDispatch()}, nil
}

func (w *oleWord) Quit() error {
	defer w.app.Release()
	_, err := oleutil.CallMethod(w.app, "Quit")
	return err
}

type oleDocument struct {
	disp *ole.IDispatch
}

func (d *oleDocument) SaveAs2(path string, format WordFormat) error {
	_, err := oleutil.CallMethod(d.disp, "SaveAs2", path, int32(format))
	return err
}

func (d *oleDocument) SaveAs(path string, format WordFormat) error {
	_, err := oleutil.CallMethod(d.disp, "SaveAs", path, int32(format))
	return err
}

func (d *oleDocument) Close(saveChanges bool) error {
	defer d.disp.Release()
	_, err := oleutil.CallMethod(d.disp, "Close", saveChanges)
	return err
}

type olePowerPoint struct {
	app *ole.IDispatch
}

func (p *olePowerPoint) OpenHidden(path string) (Presentation, error) {
	pres, err := dispProperty(p.app, "Presentations")
	if err != nil {
		return nil, err
	}
	defer pres.Release()

	// Open(FileName, ReadOnly, Untitled, WithWindow)
	v, err := oleutil.CallMethod(pres, "Open", path, int32(msoTrue), int32(msoFalse), int32(msoFalse))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &olePresentation{disp: v.ToIDispatch()}, nil
}

func (p *olePowerPoint) Quit() error {
	defer p.app.Release()
	_, err := oleutil.CallMethod(p.app, "Quit")
	return err
}

type olePresentation struct {
	disp *ole.IDispatch
}

func (p *olePresentation) ExportFixedFormat(path string, format FixedFormat) error {
	_, err := oleutil.CallMethod(p.disp, "ExportAsFixedFormat", path, int32(format))
	return err
}

func (p *olePresentation) SlideCount() (int, error) {
	slides, err := dispProperty(p.disp, "Slides")
	if err != nil {
		return 0, err
	}
	defer slides.Release()
	return intProperty(slides, "Count")
}

func (p *olePresentation) SlideShapes(i int) ([]ShapeNode, error) {
	slides, err := dispProperty(p.disp, "Slides")
	if err != nil {
		return nil, err
	}
	defer slides.Release()

	v, err := oleutil.CallMethod(slides, "Item", i+1)
	if err != nil {
		return nil, fmt.Errorf("reading slide %d: %w", i+1, err)
	}
	slide := v.ToIDispatch()
	defer slide.Release()

	shapes, err := dispProperty(slide, "Shapes")
	if err != nil {
		return nil, err
	}
	defer shapes.Release()
	return readShapes(shapes), nil
}

func (p *olePresentation) Close() error {
	defer p.disp.Release()
	_, err := oleutil.CallMethod(p.disp, "Close")
	return err
}

// readShapes reads a 1-based COM shape collection into nodes.
func readShapes(shapes *ole.IDispatch) []ShapeNode {
	count, err := intProperty(shapes, "Count")
	if err != nil {
		return nil
	}
	nodes := make([]ShapeNode, 0, count)
	for i := 1; i <= count; i++ {
		nodes = append(nodes, readShape(shapes, i))
	}
	return nodes
}

func readShape(shapes *ole.IDispatch, i int) ShapeNode {
	v, err := oleutil.CallMethod(shapes, "Item", i)
	if err != nil {
		return UnreadableShape(err)
	}
	shape := v.ToIDispatch()
	defer shape.Release()

	if kind, err := intProperty(shape, "Type"); err == nil && kind == msoGroup {
		items, err := dispProperty(shape, "GroupItems")
		if err != nil {
			return UnreadableShape(err)
		}
		defer items.Release()
		return GroupShape(readShapes(items)...)
	}
	if has, err := intProperty(shape, "HasTable"); err == nil && has == msoTrue {
		return readTable(shape)
	}
	if has, err := intProperty(shape, "HasTextFrame"); err == nil && has == msoTrue {
		frame, err := dispProperty(shape, "TextFrame")
		if err != nil {
			return UnreadableShape(err)
		}
		defer frame.Release()
		if hasText, err := intProperty(frame, "HasText"); err != nil || hasText != msoTrue {
			return OtherShape()
		}
		text, err := rangeText(frame)
		if err != nil {
			return UnreadableShape(err)
		}
		return TextShape(text)
	}
	return OtherShape()
}

func readTable(shape *ole.IDispatch) ShapeNode {
	table, err := dispProperty(shape, "Table")
	if err != nil {
		return UnreadableShape(err)
	}
	defer table.Release()

	rows, err := nestedCount(table, "Rows")
	if err != nil {
		return UnreadableShape(err)
	}
	cols, err := nestedCount(table, "Columns")
	if err != nil {
		return UnreadableShape(err)
	}

	cells := make([][]string, rows)
	for r := 1; r <= rows; r++ {
		cells[r-1] = make([]string, cols)
		for c := 1; c <= cols; c++ {
			cells[r-1][c-1] = cellText(table, r, c)
		}
	}
	return TableShape(cells)
}

// cellText returns the text of one table cell, or "" when it cannot be read.
func cellText(table *ole.IDispatch, r, c int) string {
	v, err := oleutil.CallMethod(table, "Cell", r, c)
	if err != nil {
		return ""
	}
	cell := v.ToIDispatch()
	defer cell.Release()

	shape, err := dispProperty(cell, "Shape")
	if err != nil {
		return ""
	}
	defer shape.Release()

	frame, err := dispProperty(shape, "TextFrame")
	if err != nil {
		return ""
	}
	defer frame.Release()

	text, err := rangeText(frame)
	if err != nil {
		return ""
	}
	return text
}

func rangeText(frame *ole.IDispatch) (string, error) {
	rng, err := dispProperty(frame, "TextRange")
	if err != nil {
		return "", err
	}
	defer rng.Release()

	v, err := oleutil.GetProperty(rng, "Text")
	if err != nil {
		return "", err
	}
	defer v.Clear()
	return v.ToString(), nil
}

func nestedCount(disp *ole.IDispatch, name string) (int, error) {
	coll, err := dispProperty(disp, name)
	if err != nil {
		return 0, err
	}
	defer coll.Release()
	return intProperty(coll, "Count")
}

func dispProperty(disp *ole.IDispatch, name string) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	d := v.ToIDispatch()
	if d == nil {
		return nil, fmt.Errorf("reading %s: not an object", name)
	}
	return d, nil
}

func intProperty(disp *ole.IDispatch, name string) (int, error) {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", name, err)
	}
	defer v.Clear()
	return toInt(v.Value())
}
