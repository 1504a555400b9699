// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan discovers convertible Office documents under a source tree,
// maps them to destination paths, and decides which ones are already up to date.
package plan

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/pdiddy/office-convert/pkg/types"
)

// Supported reports whether path has an extension the converter handles
// (.doc, .docx, .ppt, .pptx in any case). A name that is only an extension,
// such as ".docx", has no stem and is not supported.
func Supported(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return false
	}
	_, ok := types.KindForExt(ext)
	return ok
}

// Discover walks root recursively and yields every regular file with a
// supported extension, including symlinks that resolve to regular files.
// Symlinked directories are not descended. Order follows the filesystem
// walk. Entries that cannot be read are skipped; a missing root yields
// nothing, so callers check it up front.
func Discover(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !Supported(path) || !isFile(path, d) {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func isFile(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return d.Type().IsRegular()
}
