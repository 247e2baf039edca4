package cmd

import (
	"fmt"

	"github.com/corey/kwcount/internal/app"
	"github.com/spf13/cobra"
)

var (
	verifyExpected   string
	verifyStrategies []string
	verifyShow       int
	verifyStrict     bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <database> <queries>",
	Short: "Cross-check every strategy against a reference",
	Long: "Counts with every strategy and reports keywords whose counts differ from the\n" +
		"sliding-window oracle, or from an expected report given with --expected.\n" +
		"Non-overlapping strategies (naive, regex) are expected to differ on self-overlapping keywords.",
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	f := verifyCmd.Flags()
	f.StringVar(&verifyExpected, "expected", "", "Reference report (\"<keyword> <count>\" lines)")
	f.StringSliceVarP(&verifyStrategies, "strategy", "s", nil, "Strategies to check (default all)")
	f.IntVar(&verifyShow, "show", 5, "Mismatches listed per strategy (0 = all)")
	f.BoolVar(&verifyStrict, "strict", false, "Fail when any overlapping strategy disagrees")
}

func runVerify(cmd *cobra.Command, args []string) error {
	report, err := kw.Verify(app.VerifyRequest{
		Database:   args[0],
		Queries:    args[1],
		Expected:   verifyExpected,
		Strategies: verifyStrategies,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatVerify(report, verifyShow, useColor()))

	if verifyStrict {
		for _, c := range report.Checks {
			if c.Overlapping && !c.OK() {
				return fmt.Errorf("%s disagrees with %s on %d keywords", c.Strategy, report.Reference, len(c.Mismatches))
			}
		}
	}
	return nil
}
