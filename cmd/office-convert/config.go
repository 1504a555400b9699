// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office-convert/pkg/types"
)

const (
	envPrefix  = "OFFICE_CONVERT"
	configName = "office-convert"
)

// configUsage describes where readConfig looks when --config is not set.
const configUsage = "config file (default: ./" + configName + ".yaml or ~/.config/" + configName + "/" + configName + ".yaml)"

func setDefaults(v *viper.Viper) {
	v.SetDefault("source_dir", "To Change")
	v.SetDefault("pdf_dir", "PDFs")
	v.SetDefault("txt_dir", "TXT")
	v.SetDefault("host", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(".office-convert", "history.db"))
	v.SetDefault("report", "")
}

// bindConfigFlags registers the persistent flags that override config keys.
func bindConfigFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.String("source-dir", "To Change", "folder scanned for Office documents")
	flags.String("pdf-dir", "PDFs", "output folder for PDF conversion")
	flags.String("txt-dir", "TXT", "output folder for text conversion")
	flags.String("host", "", "scripting host for subprocess conversion: powershell or pwsh (default: auto-detect)")
	flags.String("log-level", "warn", "diagnostic log level: debug, info, warn, or error")
	flags.Bool("history", true, "record each run in the local history database")
	flags.String("history-path", filepath.Join(".office-convert", "history.db"), "history database file")

	for key, flag := range map[string]string{
		"source_dir":      "source-dir",
		"pdf_dir":         "pdf-dir",
		"txt_dir":         "txt-dir",
		"host":            "host",
		"log_level":       "log-level",
		"history.enabled": "history",
		"history.path":    "history-path",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}

// readConfig sets defaults and environment bindings, then reads the config
// file. A missing default config file is not an error.
func readConfig(v *viper.Viper, cfgFile string) error {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	return nil
}

// loadConfig decodes and validates the merged configuration.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Host = types.HostName(strings.ToLower(strings.TrimSpace(string(cfg.Host))))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
