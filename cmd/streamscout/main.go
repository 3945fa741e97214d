// Package main is the entry point for the streamscout CLI.
package main

import (
	"os"

	"github.com/streamscout/streamscout/cmd/streamscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
