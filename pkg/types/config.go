// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// HostName identifies the scripting host used by the subprocess backend.
type HostName string

const (
	HostAuto       HostName = ""
	HostPowerShell HostName = "powershell"
	HostPwsh       HostName = "pwsh"
)

// HistoryConfig controls the local run ledger.
type HistoryConfig struct {
	// Enabled turns run recording on (default true).
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default ".office-convert/history.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config holds the settings shared by the pdf and txt commands.
type Config struct {
	// SourceDir is the tree scanned for Office documents (default "To Change").
	SourceDir string `json:"source_dir" yaml:"source_dir" mapstructure:"source_dir"`

	// PDFDir is the destination root for PDF runs (default "PDFs").
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir" mapstructure:"pdf_dir"`

	// TXTDir is the destination root for text runs (default "TXT").
	TXTDir string `json:"txt_dir" yaml:"txt_dir" mapstructure:"txt_dir"`

	// Host forces the subprocess scripting host; empty means auto-detect.
	Host HostName `json:"host" yaml:"host" mapstructure:"host"`

	// LogLevel is one of debug, info, warn, error (default warn).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`

	// Report is an optional report file; its extension selects the format.
	Report string `json:"report,omitempty" yaml:"report,omitempty" mapstructure:"report"`
}

// DestDir returns the destination root for the given target format.
func (c Config) DestDir(f TargetFormat) string {
	if f == FormatText {
		return c.TXTDir
	}
	return c.PDFDir
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SourceDir) == "" {
		return errors.New("config source_dir is required")
	}
	if strings.TrimSpace(c.PDFDir) == "" {
		return errors.New("config pdf_dir is required")
	}
	if strings.TrimSpace(c.TXTDir) == "" {
		return errors.New("config txt_dir is required")
	}
	switch c.Host {
	case HostAuto, HostPowerShell, HostPwsh:
	default:
		return fmt.Errorf("config host %q: use powershell or pwsh", c.Host)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config log_level %q: use debug, info, warn, or error", c.LogLevel)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("config history.path is required when history is enabled")
	}
	return nil
}
