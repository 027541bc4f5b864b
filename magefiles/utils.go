//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	semver "github.com/Masterminds/semver/v3"
	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

const GO_VERSION_CONSTRAINT = ">= 1.18.0"

func binaryWithExt(name string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("%s.exe", name)
	}
	return name
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}

func makeLocalBin() error {
	return os.MkdirAll(LocalBin, os.ModePerm)
}

func splitArgs(s string) []string {
	return strings.Fields(s)
}

// checkVersion parses a version reported by a tool and checks it against constraint.
func checkVersion(reported, constraint string) error {
	version, err := semver.NewVersion(strings.TrimPrefix(reported, "v"))
	if err != nil {
		return errors.Errorf("error parsing version %q: %v", reported, err)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Errorf("error parsing constraint: %v", err)
	}
	if !c.Check(version) {
		return errors.Errorf("found version %v but it failed constraint %v", version, constraint)
	}
	return nil
}

func goCheck() error {
	output, err := sh.Output("go", "version")
	if err != nil {
		return errors.Errorf("error running go version: %v", err)
	}
	fields := strings.Fields(output)
	if len(fields) < 3 {
		return errors.Errorf("unexpected go version output: %s", output)
	}
	return checkVersion(strings.TrimPrefix(fields[2], "go"), GO_VERSION_CONSTRAINT)
}
