package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved bench runs",
	Long:  "Lists bench runs stored in .kwcount/kwcount.db, newest first.",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved bench run",
	Long:  "Prints the ranking and inputs of the saved bench run with the given ID.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	f := historyCmd.Flags()
	f.IntVarP(&historyLimit, "limit", "n", 10, "Show at most N runs (0 = all)")
	f.BoolVar(&historyClear, "clear", false, "Delete all saved runs")
	historyCmd.AddCommand(historyShowCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyClear {
		if err := kw.ClearHistory(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "⚡ bench history cleared")
		return nil
	}

	runs, err := kw.History(historyLimit)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatHistory(runs, useColor()))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	run, err := kw.HistoryRun(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatRunDetail(run, useColor()))
	return nil
}
