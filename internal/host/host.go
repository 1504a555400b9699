// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package host runs single-file Office conversions through an external
// scripting host. Each call starts the host, which starts the Office
// application, converts one file, quits, and exits.
package host

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pdiddy/office-convert/pkg/types"
)

const (
	binPowerShell = "powershell"
	binPwsh       = "pwsh"
)

// Host converts one file per invocation.
type Host interface {
	// Name returns the host binary name ("powershell" or "pwsh").
	Name() string

	// Available reports whether the binary exists on PATH and can run a
	// trivial command.
	Available() bool

	// Convert runs the conversion script for job and waits for it to exit.
	// A non-zero exit is returned as an error that includes the host's stderr.
	Convert(ctx context.Context, job types.ConversionJob, format types.TargetFormat) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// powerShell implements Host for Windows PowerShell and PowerShell 7; they
// accept the same flags and differ only in binary name.
type powerShell struct {
	bin  string
	exec executor
}

func (p *powerShell) Name() string { return p.bin }

func (p *powerShell) Available() bool {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return false
	}
	return p.exec.RunSilent(context.Background(), p.bin, "-NoProfile", "-NonInteractive", "-Command", "exit 0") == nil
}

func (p *powerShell) Convert(ctx context.Context, job types.ConversionJob, format types.TargetFormat) error {
	script, err := ScriptFor(job, format)
	if err != nil {
		return err
	}
	encoded, err := script.Encode()
	if err != nil {
		return err
	}

	args := []string{"-NoProfile", "-NonInteractive", "-EncodedCommand", encoded}
	var stderr bytes.Buffer
	if err := p.exec.Run(ctx, p.bin, args, io.Discard, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s %s: %w: %s", p.bin, script.Name, err, msg)
		}
		return fmt.Errorf("%s %s: %w", p.bin, script.Name, err)
	}
	return nil
}

func newPowerShell(exec executor) *powerShell {
	return &powerShell{bin: binPowerShell, exec: exec}
}

func newPwsh(exec executor) *powerShell {
	return &powerShell{bin: binPwsh, exec: exec}
}

var defaultExec = &osExecutor{}

// Detect returns the scripting host to use. With types.HostAuto it tries
// powershell first and falls back to pwsh; otherwise only the named host
// is considered. It returns an error if no candidate is available.
func Detect(name types.HostName) (Host, error) {
	return detect(defaultExec, name)
}

func detect(exec executor, name types.HostName) (Host, error) {
	var candidates []*powerShell
	switch name {
	case types.HostAuto:
		candidates = []*powerShell{newPowerShell(exec), newPwsh(exec)}
	case types.HostPowerShell:
		candidates = []*powerShell{newPowerShell(exec)}
	case types.HostPwsh:
		candidates = []*powerShell{newPwsh(exec)}
	default:
		return nil, fmt.Errorf("unknown scripting host %q", name)
	}

	for _, c := range candidates {
		if c.Available() {
			return c, nil
		}
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.bin
	}
	return nil, fmt.Errorf(
		"no scripting host available: tried %s, none found or operational",
		strings.Join(names, ", "),
	)
}
