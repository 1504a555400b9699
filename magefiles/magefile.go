// Package main contains Mage build targets for office-convert developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working folders the converter expects by default.
var projectDirs = []string{
	"To Change",
	"PDFs",
	"TXT",
}

// Init creates the default source and output folders.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "office-convert"
	cmdPkg  = "./cmd/office-convert"
)

func binPath() string {
	name := binName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(binDir, name)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := binPath()
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests for every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Windows cross-compiles the CLI for Windows, where direct Office automation
// is available. The history database needs cgo, so building from another OS
// requires a mingw cross compiler in CC, e.g.
// CC=x86_64-w64-mingw32-gcc mage windows.
func Windows() error {
	env, err := windowsBuildEnv(runtime.GOOS, os.Getenv)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName+".exe")
	if err := sh.RunWithV(env, "go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build (windows): %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// windowsBuildEnv returns the environment for a cgo-enabled Windows build.
// Without cgo, go-sqlite3 compiles to a stub that fails at runtime.
func windowsBuildEnv(hostOS string, getenv func(string) string) (map[string]string, error) {
	env := map[string]string{"GOOS": "windows", "GOARCH": "amd64", "CGO_ENABLED": "1"}
	if hostOS == "windows" {
		return env, nil
	}
	cc := getenv("CC")
	if cc == "" {
		return nil, fmt.Errorf("cross-compiling for windows needs cgo for go-sqlite3: set CC to a mingw compiler such as x86_64-w64-mingw32-gcc")
	}
	env["CC"] = cc
	return env, nil
}

// All builds and tests.
func All() {
	mg.SerialDeps(Build, Test)
}

// Stats prints project metrics: Go production/test LOC and Markdown word count.
func Stats() error {
	var prod, tests, words int
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (d.Name() == "_examples" || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		switch filepath.Ext(path) {
		case ".go":
			n, err := countLines(path)
			if err != nil {
				return err
			}
			if strings.HasSuffix(path, "_test.go") {
				tests += n
			} else {
				prod += n
			}
		case ".md":
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			words += len(strings.Fields(string(data)))
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", tests)
	fmt.Printf("Words (documentation):           %d\n", words)
	return nil
}

// countLines counts non-blank lines in a file.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, nil
}
