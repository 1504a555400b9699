// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the office-convert CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office-convert/internal/convert"
)

// version is set at build time via ldflags.
var version = "dev"

// exitError carries a run's exit code back to main after the summary has
// already been printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("conversion finished with exit code %d", e.code)
}

// rootCmd is the base command for the office-convert CLI.
var rootCmd = &cobra.Command{
	Use:   "office-convert",
	Short: "Batch-convert Word and PowerPoint files to PDF or plain text",
	Long: `office-convert walks a source folder for Word (.doc, .docx) and PowerPoint
(.ppt, .pptx) files and converts each one to PDF or plain text, mirroring the
folder structure under an output folder. Files whose output is already newer
than the source are skipped.

Conversion drives the installed Office applications directly when automation
is available and otherwise runs each file through a PowerShell subprocess.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", configUsage)
	bindConfigFlags(rootCmd, viper.GetViper())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(convert.ExitFailed)
}
