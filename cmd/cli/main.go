// Package main is the entry point for the presolar CLI.
package main

import (
	"os"

	"presolar/cmd/cli/cmd"
	"presolar/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
