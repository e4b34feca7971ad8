// Command pipesim runs the five-stage pipeline simulator against an
// assembly program and prints the resulting statistics and cycle trace
// as JSON.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "pipesim",
	Short: "A cycle-accurate five-stage pipeline simulator",
	Long: `pipesim simulates a superscalar, in-order-issue five-stage CPU
pipeline (FETCH, DECODE, ISSUE, EXECUTE, WRITEBACK) over a small
assembly program, tracking register hazards and per-unit execution
capacity, and reports per-cycle stage occupancy plus aggregate
statistics.`,
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
