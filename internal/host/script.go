// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package host

import (
	"embed"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/pdiddy/office-convert/internal/automation"
	"github.com/pdiddy/office-convert/pkg/types"
)

//go:embed scripts/*.ps1
var scripts embed.FS

// Script is one single-file conversion ready to hand to the host.
type Script struct {
	Name string
	Body string
}

// ScriptFor builds the conversion script for a job. The script binds $src,
// $dst, and $format before the embedded body runs.
func ScriptFor(job types.ConversionJob, format types.TargetFormat) (Script, error) {
	var (
		file string
		code int
	)
	switch {
	case job.Kind == types.WordProcessor && format == types.FormatPDF:
		file, code = "word.ps1", int(automation.WordFormatPDF)
	case job.Kind == types.WordProcessor && format == types.FormatText:
		file, code = "word.ps1", int(automation.WordFormatUnicodeText)
	case job.Kind == types.Presentation && format == types.FormatPDF:
		file, code = "presentation_pdf.ps1", automation.PresentationSaveAsPDF
	case job.Kind == types.Presentation && format == types.FormatText:
		file = "presentation_txt.ps1"
	default:
		return Script{}, fmt.Errorf("no script for %s to %s", job.Kind, format)
	}

	body, err := scripts.ReadFile("scripts/" + file)
	if err != nil {
		return Script{}, fmt.Errorf("reading script %s: %w", file, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "$src = %s\n", quote(job.SourcePath))
	fmt.Fprintf(&b, "$dst = %s\n", quote(job.DestinationPath))
	fmt.Fprintf(&b, "$format = %d\n", code)
	b.Write(body)
	return Script{Name: file, Body: b.String()}, nil
}

// quote returns s as a PowerShell single-quoted literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Encode returns the script as PowerShell expects it after -EncodedCommand:
// base64 over UTF-16LE without a byte order mark.
func (s Script) Encode() (string, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	raw, err := enc.String(s.Body)
	if err != nil {
		return "", fmt.Errorf("encoding script %s: %w", s.Name, err)
	}
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}
