// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/office-convert/pkg/types"
)

var txtCmd = &cobra.Command{
	Use:   "txt",
	Short: "Extract plain text from Office documents",
	Long: `Txt extracts the text of every Word and PowerPoint file under the source
folder, writing each result under the TXT folder at the same relative path
with a .txt extension. Presentations are written slide by slide, each block
headed "Slide N".

Exit status is 0 when every file converted (or nothing needed converting),
1 when some files failed, and 2 when nothing converted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, types.FormatText)
	},
}

func init() {
	txtCmd.Flags().String("report", "", "write a run report (.yaml, .json, or .xlsx)")

	rootCmd.AddCommand(txtCmd)
}
