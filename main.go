package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/flowvibe/mcp-installer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Reported errors were already written in the requested output format.
		if !errors.Is(err, cmd.ErrReported) {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
