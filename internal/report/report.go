// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a run summary to a file for later review.
// The file extension selects the format: .yaml/.yml, .json, or .xlsx.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/office-convert/pkg/types"
)

// Format is a report file format.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatExcel Format = "xlsx"
)

const (
	summarySheet = "Summary"
	errorsSheet  = "Errors"
)

// ParseFormat returns the report format implied by path's extension.
func ParseFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported report extension %q: use .yaml, .json, or .xlsx", filepath.Ext(path))
	}
}

// Write renders run to path in the format its extension selects,
// creating the parent directory when missing.
func Write(path string, run types.RunSummary) error {
	format, err := ParseFormat(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(run)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return os.WriteFile(path, data, 0o644)
	case FormatJSON:
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return os.WriteFile(path, data, 0o644)
	default:
		return writeExcel(path, run)
	}
}

func writeExcel(path string, run types.RunSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	if _, err := f.NewSheet(errorsSheet); err != nil {
		return fmt.Errorf("creating errors sheet: %w", err)
	}

	rows := [][2]any{
		{"Run ID", run.ID},
		{"Format", string(run.Format)},
		{"Backend", run.Backend},
		{"Total", run.Total},
		{"Converted", run.Converted},
		{"Errors", len(run.Errors)},
		{"Exit Code", run.ExitCode},
		{"Started", run.StartedAt.UTC().Format(time.RFC3339)},
		{"Finished", run.FinishedAt.UTC().Format(time.RFC3339)},
	}
	for i, r := range rows {
		for col, v := range r {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return fmt.Errorf("writing %s: %w", cell, err)
			}
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 14)
	_ = f.SetColWidth(summarySheet, "B", "B", 40)

	_ = f.SetCellValue(errorsSheet, "A1", "#")
	_ = f.SetCellValue(errorsSheet, "B1", "Message")
	for i, msg := range run.Errors {
		row := i + 2
		num, _ := excelize.CoordinatesToCellName(1, row)
		text, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(errorsSheet, num, i+1)
		if err := f.SetCellValue(errorsSheet, text, msg); err != nil {
			return fmt.Errorf("writing %s: %w", text, err)
		}
	}
	_ = f.SetColWidth(errorsSheet, "B", "B", 100)

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
