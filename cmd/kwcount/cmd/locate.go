package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var locateMax int

var locateCmd = &cobra.Command{
	Use:   "locate <database> <queries>",
	Short: "Print the byte offset of every match",
	Long:  "Prints \"<offset> <keyword>\" per occurrence, ordered by end offset.",
	Args:  cobra.ExactArgs(2),
	RunE:  runLocate,
}

func init() {
	locateCmd.Flags().IntVarP(&locateMax, "max", "m", 0, "Stop after N matches (0 = all)")
}

func runLocate(cmd *cobra.Command, args []string) error {
	matches, err := kw.Locate(args[0], args[1], locateMax)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatMatches(matches, useColor()))
	return nil
}
