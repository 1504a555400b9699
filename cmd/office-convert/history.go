// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office-convert/internal/history"
	"github.com/pdiddy/office-convert/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	Long: `History lists runs recorded in the local history database, newest first,
with the backend used, the converted count, and the exit status. Use
--errors to include each run's error lines.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	showErrors, _ := cmd.Flags().GetBool("errors")

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	formatHistory(cmd.OutOrStdout(), runs, showErrors)
	return nil
}

func formatHistory(w io.Writer, runs []types.RunSummary, showErrors bool) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-6s  %-10s  %-11s  %-6s  %s\n",
		"Started", "Format", "Backend", "Converted", "Errors", "Exit")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, r := range runs {
		backend := r.Backend
		if backend == "" {
			backend = "-"
		}
		fmt.Fprintf(w, "%-20s  %-6s  %-10s  %-11s  %-6d  %d\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Format, backend,
			fmt.Sprintf("%d / %d", r.Converted, r.Total),
			len(r.Errors), r.ExitCode)
		if showErrors {
			for _, e := range r.Errors {
				fmt.Fprintf(w, "    - %s\n", e)
			}
		}
	}
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().Bool("errors", false, "include error lines for each run")

	rootCmd.AddCommand(historyCmd)
}
