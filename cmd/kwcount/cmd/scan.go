package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanWorkers int

var scanCmd = &cobra.Command{
	Use:   "scan <queries> <database>...",
	Short: "Count keywords across many files concurrently",
	Long:  "Builds the automaton once and counts every database file in parallel, printing per-file counts and totals.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().IntVarP(&scanWorkers, "workers", "j", 0, "Concurrent files (default scan.workers)")
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanWorkers > 0 {
		kw.Config.Scan.Workers = scanWorkers
	}
	res, err := kw.Scan(cmd.Context(), args[0], args[1:])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatScan(res, useColor()))
	return nil
}
