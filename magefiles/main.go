//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	LocalBin = filepath.Join(mustGetwd(), "bin")
	binary   = filepath.Join(LocalBin, binaryWithExt("bucketcheck"))
)

// Build compiles the bucketcheck binary into ./bin.
func Build() error {
	mg.Deps(goCheck, makeLocalBin)
	return sh.RunWith(map[string]string{"CGO_ENABLED": "0"}, "go", "build", "-o", binary, "./cmd/bucketcheck")
}

// Bench runs the reference benchmark: ten trials of fifty million strings at one hundred strings per bucket.
// Extra flags for bucketcheck can be passed in BUCKETCHECK_ARGS, e.g. BUCKETCHECK_ARGS="--hasher xxhash".
func Bench() error {
	mg.Deps(Build)
	args := []string{"--ordered"}
	if extra := os.Getenv("BUCKETCHECK_ARGS"); extra != "" {
		args = append(args, splitArgs(extra)...)
	}
	return sh.RunV(binary, args...)
}

// Clean removes build and test outputs.
func Clean() {
	fmt.Println("Cleaning...")
	for _, path := range []string{"bin", "test_reports"} {
		os.RemoveAll(path)
	}
}

// CheckDeps checks the tools needed to build and lint are present and the correct version.
func CheckDeps() error {
	checks := []struct {
		name  string
		check func() error
	}{
		{"go", goCheck},
		{"golangci-lint", golangciLintCheck},
	}
	failures := false
	for _, check := range checks {
		fmt.Printf("Checking %s... ", check.name)
		if err := check.check(); err != nil {
			fmt.Printf("FAILED\nReason: %v\n", err)
			failures = true
		} else {
			fmt.Println("PASSED")
		}
	}
	if failures {
		return fmt.Errorf("check(s) failed")
	}
	return nil
}
