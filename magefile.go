//go:build mage

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

// Build builds the chunnel binary with version metadata stamped in.
func Build() error {
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := fmt.Sprintf(
		"-X github.com/dkoosis/chunnel/internal/version.Version=%s "+
			"-X github.com/dkoosis/chunnel/internal/version.CommitHash=%s "+
			"-X github.com/dkoosis/chunnel/internal/version.BuildDate=%s",
		version, commit, time.Now().UTC().Format(time.RFC3339))

	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", "bin/chunnel", "./cmd/chunnel")
}

// Test runs the full test suite with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet and, when installed, staticcheck.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if err := sh.RunV("staticcheck", "./..."); err != nil {
		fmt.Fprintln(os.Stderr, "staticcheck unavailable or failed (install: go install honnef.co/go/tools/cmd/staticcheck@latest)")
		return err
	}
	return nil
}

// QA runs lint and tests.
func QA() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
