//go:build mage
// +build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

const GOLANGCI_LINT_VERSION_CONSTRAINT = ">= 1.52.0"

func golangciLintCheck() error {
	output, err := golangcilintOutput("--version")
	if err != nil {
		return errors.Errorf("error running version cmd: %v", err)
	}
	fields := strings.Fields(output)
	if len(fields) < 4 {
		return errors.Errorf("unexpected version cmd output: %s", output)
	}
	return checkVersion(fields[3], GOLANGCI_LINT_VERSION_CONSTRAINT)
}

// LintFix runs golangci-lint and applies its fixes.
func LintFix() error {
	mg.Deps(golangciLintCheck)
	output, err := golangcilintOutput("run", "--fix", "--timeout", "10m")
	if err != nil {
		fmt.Printf("\nOutput: %s\n", output)
	}
	return err
}

// CheckLint runs golangci-lint.
func CheckLint() error {
	mg.Deps(golangciLintCheck)
	output, err := golangcilintOutput("run", "--timeout", "10m")
	if err != nil {
		fmt.Printf("\nOutput: %s\n", output)
	}
	return err
}

func golangcilintOutput(args ...string) (string, error) {
	return sh.Output(binaryWithExt("golangci-lint"), args...)
}
