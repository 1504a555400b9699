// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package automation describes the document-automation services the direct
// backend drives: a bridge that is initialized once per run, and one
// long-lived service instance per application kind.
//
// The COM implementation lives in ole.go; tests substitute fakes.
package automation

import "errors"

// ErrBridgeUnavailable is returned by Bridge.Connect when the automation
// bridge itself cannot be initialized (not installed, unsupported platform).
var ErrBridgeUnavailable = errors.New("automation bridge unavailable")

// WordFormat is a word-processor save format code.
type WordFormat int

const (
	// WordFormatUnicodeText is wdFormatUnicodeText.
	WordFormatUnicodeText WordFormat = 7
	// WordFormatPDF is wdFormatPDF.
	WordFormatPDF WordFormat = 17
)

// FixedFormat is a presentation fixed-format export code.
type FixedFormat int

// FixedFormatPDF is ppFixedFormatTypePDF.
const FixedFormatPDF FixedFormat = 2

// PresentationSaveAsPDF is ppSaveAsPDF, used by the scripting host where
// fixed-format export is not reliably exposed.
const PresentationSaveAsPDF = 32

// Bridge gives access to the automation environment.
type Bridge interface {
	// Connect initializes the bridge for the calling goroutine. It returns an
	// error wrapping ErrBridgeUnavailable when the bridge cannot be loaded.
	Connect() (Session, error)
}

// Session is an initialized bridge. Close releases the initialization and
// must be called exactly once.
type Session interface {
	StartWordProcessor() (WordProcessor, error)
	StartPresentation() (PresentationService, error)
	Close() error
}

// WordProcessor is a hidden word-processor instance with alerts suppressed.
type WordProcessor interface {
	OpenReadOnly(path string) (Document, error)
	Quit() error
}

// Document is an open word-processor document.
type Document interface {
	// SaveAs2 saves a copy of the document in the given format.
	SaveAs2(path string, format WordFormat) error
	// SaveAs is the older form of SaveAs2, kept for service versions
	// that lack it.
	SaveAs(path string, format WordFormat) error
	Close(saveChanges bool) error
}

// PresentationService is a presentation application instance.
type PresentationService interface {
	// OpenHidden opens a presentation read-only without a window.
	OpenHidden(path string) (Presentation, error)
	Quit() error
}

// Presentation is an open presentation.
type Presentation interface {
	ExportFixedFormat(path string, format FixedFormat) error
	SlideCount() (int, error)
	// SlideShapes returns the shape tree of the slide at zero-based index i.
	SlideShapes(i int) ([]ShapeNode, error)
	Close() error
}
