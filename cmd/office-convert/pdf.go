// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/office-convert/pkg/types"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Convert Office documents to PDF",
	Long: `Pdf converts every Word and PowerPoint file under the source folder to PDF,
writing each result under the PDF folder at the same relative path with a
.pdf extension.

Exit status is 0 when every file converted (or nothing needed converting),
1 when some files failed, and 2 when nothing converted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, types.FormatPDF)
	},
}

func init() {
	pdfCmd.Flags().String("report", "", "write a run report (.yaml, .json, or .xlsx)")

	rootCmd.AddCommand(pdfCmd)
}
