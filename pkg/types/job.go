// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ApplicationKind identifies which document-automation service handles a job.
type ApplicationKind string

const (
	WordProcessor ApplicationKind = "WordProcessor"
	Presentation  ApplicationKind = "Presentation"
)

// Kinds lists the application kinds in processing order. Every job of one
// kind is processed before the first job of the next.
var Kinds = []ApplicationKind{WordProcessor, Presentation}

// kindByExt maps a lowercase source extension to its application kind.
var kindByExt = map[string]ApplicationKind{
	".doc":  WordProcessor,
	".docx": WordProcessor,
	".ppt":  Presentation,
	".pptx": Presentation,
}

// KindForExt returns the application kind for a source file extension
// (with leading dot, any case). The second result is false for unsupported
// extensions.
func KindForExt(ext string) (ApplicationKind, bool) {
	k, ok := kindByExt[strings.ToLower(ext)]
	return k, ok
}

// TargetFormat selects the output format of a run.
type TargetFormat string

const (
	FormatPDF  TargetFormat = "pdf"
	FormatText TargetFormat = "txt"
)

// Extension returns the destination file extension, including the dot.
func (f TargetFormat) Extension() string {
	return "." + string(f)
}

// ConversionJob is one source document and the file it converts to.
// Jobs are created by the planner and never modified afterwards.
type ConversionJob struct {
	SourcePath      string          `json:"source_path" yaml:"source_path"`
	DestinationPath string          `json:"destination_path" yaml:"destination_path"`
	Kind            ApplicationKind `json:"kind" yaml:"kind"`
}

// JobBatch holds the planned jobs of a run, bucketed by application kind
// in discovery order.
type JobBatch struct {
	Format TargetFormat
	Jobs   map[ApplicationKind][]ConversionJob
}

// NewJobBatch returns an empty batch for the given target format.
func NewJobBatch(format TargetFormat) JobBatch {
	return JobBatch{
		Format: format,
		Jobs:   make(map[ApplicationKind][]ConversionJob, len(Kinds)),
	}
}

// Add appends a job to its kind's bucket.
func (b *JobBatch) Add(job ConversionJob) {
	b.Jobs[job.Kind] = append(b.Jobs[job.Kind], job)
}

// For returns the jobs of one application kind.
func (b JobBatch) For(kind ApplicationKind) []ConversionJob {
	return b.Jobs[kind]
}

// Total returns the number of jobs across all kinds.
func (b JobBatch) Total() int {
	n := 0
	for _, jobs := range b.Jobs {
		n += len(jobs)
	}
	return n
}
