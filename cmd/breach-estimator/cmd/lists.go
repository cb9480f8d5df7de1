// Package cmd - selection list commands
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iwvelando/breach-estimator/internal/reference"
)

// statesCmd lists every state in the reference data
var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List states with at least one regulation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printList(cmd, func(s *reference.Store) []string {
			return s.DistinctStates()
		})
	},
}

// regulationsCmd lists the regulations of one state
var regulationsCmd = &cobra.Command{
	Use:   "regulations <state>",
	Short: "List the regulations of a state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printList(cmd, func(s *reference.Store) []string {
			return s.StateRegulationsFor(args[0])
		})
	},
}

// federalCmd lists every federal regulation
var federalCmd = &cobra.Command{
	Use:   "federal",
	Short: "List federal regulations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printList(cmd, func(s *reference.Store) []string {
			return s.FederalRegulations()
		})
	},
}

// violationsCmd lists the violation types of one federal regulation
var violationsCmd = &cobra.Command{
	Use:   "violations <regulation>",
	Short: "List the violation types of a federal regulation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printList(cmd, func(s *reference.Store) []string {
			return s.FederalViolationsFor(args[0])
		})
	},
}

// checkCmd validates the reference data
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the reference data and report problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		states, federal := store.Counts()
		fmt.Fprintf(out, "%s: %d state rows, %d federal rows\n", store.Source(), states, federal)

		warnings := store.Validate()
		for _, warning := range warnings {
			fmt.Fprintf(out, "warning: %s\n", warning)
		}
		if len(warnings) == 0 {
			fmt.Fprintln(out, "no problems found")
		}
		return nil
	},
}

func printList(cmd *cobra.Command, list func(*reference.Store) []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	writeLines(cmd.OutOrStdout(), list(store))
	return nil
}

func writeLines(w io.Writer, values []string) {
	for _, value := range values {
		fmt.Fprintln(w, value)
	}
}
