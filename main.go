package main

import (
	"fmt"
	"os"

	"github.com/temirov/repopicker/cmd/cli"
)

const (
	exitErrorTemplateConstant = "error: %v\n"
	exitFailureCodeConstant   = 1
)

// main executes the repopicker command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(exitFailureCodeConstant)
	}
}
