// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/pdiddy/office-convert/pkg/types"
)

// DestinationPath mirrors src from srcRoot into dstRoot and swaps its
// extension for the target format's.
func DestinationPath(srcRoot, dstRoot, src string, format types.TargetFormat) (string, error) {
	rel, err := filepath.Rel(srcRoot, src)
	if err != nil {
		return "", fmt.Errorf("relating %s to %s: %w", src, srcRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", src, srcRoot)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + format.Extension()
	return filepath.Join(dstRoot, rel), nil
}

// Job builds the ConversionJob for one discovered source file.
func Job(srcRoot, dstRoot, src string, format types.TargetFormat) (types.ConversionJob, error) {
	kind, ok := types.KindForExt(filepath.Ext(src))
	if !ok {
		return types.ConversionJob{}, fmt.Errorf("unsupported file type: %s", src)
	}
	dst, err := DestinationPath(srcRoot, dstRoot, src, format)
	if err != nil {
		return types.ConversionJob{}, err
	}
	return types.ConversionJob{SourcePath: src, DestinationPath: dst, Kind: kind}, nil
}

// Batch plans every path in sources into a JobBatch, keeping discovery
// order within each application kind.
func Batch(srcRoot, dstRoot string, format types.TargetFormat, sources iter.Seq[string]) (types.JobBatch, error) {
	batch := types.NewJobBatch(format)
	for src := range sources {
		job, err := Job(srcRoot, dstRoot, src, format)
		if err != nil {
			return types.JobBatch{}, err
		}
		batch.Add(job)
	}
	return batch, nil
}
