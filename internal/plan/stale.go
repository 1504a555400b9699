// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"os"
	"path/filepath"
)

// UpToDate reports whether dst exists and was modified no earlier than src.
// Any stat failure counts as not up to date so the job is converted.
func UpToDate(src, dst string) bool {
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return false
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	return !dstInfo.ModTime().Before(srcInfo.ModTime())
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
