package cmd

import (
	"fmt"
	"strconv"

	"github.com/corey/kwcount/internal/app"
	"github.com/spf13/cobra"
)

var (
	benchStrategies []string
	benchOutDir     string
	benchNoSave     bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <runs> <database> <queries>",
	Short: "Time every strategy and rank them",
	Long: "Runs each strategy <runs> times (read inputs, count, write output_<strategy>.txt),\n" +
		"prints the average per strategy fastest first, and saves the run to history.",
	Args: cobra.ExactArgs(3),
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.StringSliceVarP(&benchStrategies, "strategy", "s", nil, "Strategies to run (default bench.strategies)")
	f.StringVar(&benchOutDir, "out-dir", "", "Directory for output_<strategy>.txt (default bench.out_dir)")
	f.BoolVar(&benchNoSave, "no-save", false, "Do not store the run in history")
}

func runBench(cmd *cobra.Command, args []string) error {
	runs, err := strconv.Atoi(args[0])
	if err != nil || runs <= 0 {
		return fmt.Errorf("bench %q: %w", args[0], app.ErrInvalidRuns)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Running %d tests each for comparing runtimes.\n", runs)
	run, err := kw.Bench(cmd.Context(), app.BenchRequest{
		Runs:       runs,
		Database:   args[1],
		Queries:    args[2],
		Strategies: benchStrategies,
		OutDir:     benchOutDir,
		NoSave:     benchNoSave,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatBenchRun(run, useColor()))
	return nil
}
