// Package main is the entry point for the tinysr CLI.
//
// Usage:
//
//	tinysr <command> [args]
//
// Commands:
//
//	fv         - stream raw PCM from a file, print feature vectors as CSV
//	detect     - utterance detection over stdin PCM16, free-running
//	recognize  - load a model and recognize utterances from stdin PCM16
//	record     - detect utterances from stdin and save them for training
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/haivivi/tinysr/cmd/tinysr/commands"
	"github.com/haivivi/tinysr/pkg/tinysr"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var usageErr *tinysr.UsageError
	if errors.As(err, &usageErr) {
		os.Exit(1)
	}
	var modelErr *tinysr.ModelError
	if errors.As(err, &modelErr) {
		os.Exit(2)
	}
	var ioErr *commands.IOError
	if errors.As(err, &ioErr) {
		os.Exit(2)
	}
	os.Exit(1)
}
