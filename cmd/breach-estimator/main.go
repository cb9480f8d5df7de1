// Package main is the entry point for the breach-estimator CLI.
package main

import (
	"os"

	"github.com/iwvelando/breach-estimator/cmd/breach-estimator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
