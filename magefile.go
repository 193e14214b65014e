//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

func Build() error {
	mg.Deps(BuildDigitDump)
	mg.Deps(BuildOccupancy)
	fmt.Println("Compilation finished")
	return nil
}

func BuildDigitDump() error {
	fmt.Println("Building digitdump executable...")
	return buildBinary("./bin/digitdump", "./digitdump")
}

func BuildOccupancy() error {
	fmt.Println("Building occupancy executable...")
	return buildBinary("./bin/occupancy", "./occupancy")
}

func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// The HDF5 bindings need CGO; the flags point the compiler at the local
// HDF5 installation.
func buildBinary(output string, path string) error {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", "build", "-o", output, path)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
