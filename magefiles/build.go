//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Tool builds the glbtool binary into bin/.
func (Build) Tool() error {
	if err := os.MkdirAll("bin", 0755); err != nil {
		return err
	}
	fmt.Println("Building glbtool...")
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", "glbtool"), "./cmd/glbtool"), withStream())
	return err
}

type Test mg.Namespace

// Unit runs every package test.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Race runs the tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withEnv("CGO_ENABLED=1"), withStream())
	return err
}

// Vet runs go vet.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// All vets, tests and builds.
func All() {
	mg.SerialDeps(Vet, Test.Unit, Build.Tool)
}
