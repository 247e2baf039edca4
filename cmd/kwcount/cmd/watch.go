package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/corey/kwcount/internal/app"
	"github.com/spf13/cobra"
)

var (
	watchStrategy    string
	watchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch <database> <queries> <output>",
	Short: "Recount whenever the database or query file changes",
	Long: "Counts once, then rewrites the report every time either input changes.\n" +
		"Serves Prometheus metrics on /metrics when metrics.addr (or --metrics-addr) is set.",
	Args: cobra.ExactArgs(3),
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVarP(&watchStrategy, "strategy", "s", "", "Counting strategy (default count.strategy)")
	f.StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve /metrics on this address")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchMetricsAddr != "" {
		kw.Config.Metrics.Addr = watchMetricsAddr
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	color := useColor()
	fmt.Fprintf(out, "⚡ watching %s and %s (ctrl-c to stop)\n", args[0], args[1])
	return kw.Watch(ctx, app.CountRequest{
		Database: args[0],
		Queries:  args[1],
		Output:   args[2],
		Strategy: watchStrategy,
	}, func(res *app.CountResult, err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "recount failed: %v\n", err)
			return
		}
		fmt.Fprint(out, formatCountResult(res, args[2], color))
	})
}
