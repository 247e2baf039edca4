package cmd

import (
	"fmt"

	"github.com/corey/kwcount/internal/app"
	"github.com/spf13/cobra"
)

var (
	countStrategy string
	countValidate bool
	countQuiet    bool
)

var countCmd = &cobra.Command{
	Use:   "count <database> <queries> <output>",
	Short: "Count keyword occurrences and write a report",
	Long: "Reads the database text and one keyword per line from the query file, and writes\n" +
		"\"<keyword> <count>\" per distinct keyword to the output file.",
	Args: cobra.ExactArgs(3),
	RunE: runCount,
}

func init() {
	f := countCmd.Flags()
	f.StringVarP(&countStrategy, "strategy", "s", "", "Counting strategy (default count.strategy)")
	f.BoolVar(&countValidate, "validate", false, "Check automaton invariants before matching (aho only)")
	f.BoolVarP(&countQuiet, "quiet", "q", false, "Write the report only, no summary")
}

func runCount(cmd *cobra.Command, args []string) error {
	res, err := kw.Count(app.CountRequest{
		Database: args[0],
		Queries:  args[1],
		Output:   args[2],
		Strategy: countStrategy,
		Validate: countValidate,
	})
	if err != nil {
		return err
	}
	if !countQuiet {
		fmt.Fprint(cmd.OutOrStdout(), formatCountResult(res, args[2], useColor()))
	}
	return nil
}
