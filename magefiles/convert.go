package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Pdf builds the CLI and converts the default source folder to PDF.
func Pdf() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), "pdf")
}

// Txt builds the CLI and extracts text from the default source folder.
func Txt() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), "txt")
}

// History lists the most recent conversion runs.
func History() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "history", "--errors")
}
