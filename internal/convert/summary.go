// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
)

// Exit codes reported by a run.
const (
	ExitOK      = 0
	ExitPartial = 1
	ExitFailed  = 2
)

// ExitCode maps a run's counts to the process exit code: 0 when there was
// nothing to do or no errors, 1 when some files converted despite errors,
// 2 when there were errors and nothing converted.
func ExitCode(total, converted int, errs []string) int {
	if total == 0 || len(errs) == 0 {
		return ExitOK
	}
	if converted > 0 {
		return ExitPartial
	}
	return ExitFailed
}

// PrintSummary writes the "Converted: X / Y" line and, if there were any,
// an "Errors:" block with one line per error.
func PrintSummary(w io.Writer, total, converted int, errs []string) {
	fmt.Fprintf(w, "Converted: %d / %d\n", converted, total)
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(w, "Errors:")
	for _, e := range errs {
		fmt.Fprintf(w, " - %s\n", e)
	}
}
