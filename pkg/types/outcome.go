// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionOutcome accumulates the result of one backend run.
// Converted <= Attempted <= the batch total.
type ConversionOutcome struct {
	Attempted int      `json:"attempted" yaml:"attempted"`
	Converted int      `json:"converted" yaml:"converted"`
	Errors    []string `json:"errors" yaml:"errors"`
}

// Merge folds other into o, preserving error order.
func (o *ConversionOutcome) Merge(other ConversionOutcome) {
	o.Attempted += other.Attempted
	o.Converted += other.Converted
	o.Errors = append(o.Errors, other.Errors...)
}

// Fail records one per-file or per-service error message.
func (o *ConversionOutcome) Fail(msg string) {
	o.Errors = append(o.Errors, msg)
}

// HasErrors reports whether any error was recorded.
func (o ConversionOutcome) HasErrors() bool {
	return len(o.Errors) > 0
}

// RunSummary is the terminal state of a run: the selected backend's outcome
// plus the planned total.
type RunSummary struct {
	ID         string       `json:"id" yaml:"id"`
	Format     TargetFormat `json:"format" yaml:"format"`
	Backend    string       `json:"backend" yaml:"backend"`
	Total      int          `json:"total" yaml:"total"`
	Converted  int          `json:"converted" yaml:"converted"`
	Errors     []string     `json:"errors" yaml:"errors"`
	ExitCode   int          `json:"exit_code" yaml:"exit_code"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
}
