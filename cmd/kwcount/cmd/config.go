package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the resolved configuration (defaults, config file, KWCOUNT_* env) and work paths.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := kw.Config
	p := palette{useColor()}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s⚡ kwcount config%s\n", p.c(colorBold), p.reset())
	fmt.Fprintf(out, "  Work dir:    %s\n", kw.Paths.Root)
	fmt.Fprintf(out, "  Config:      %s\n", configPath())
	fmt.Fprintf(out, "  Strategy:    %s\n", cfg.Count.Strategy)
	fmt.Fprintf(out, "  Bench:       %d runs │ %s\n", cfg.Bench.Runs, strings.Join(cfg.Bench.Strategies, ", "))
	fmt.Fprintf(out, "  Bench out:   %s\n", cfg.Bench.OutDir)
	fmt.Fprintf(out, "  History:     %s\n", cfg.Store.Path)
	fmt.Fprintf(out, "  Scan:        %d workers\n", cfg.Scan.Workers)
	fmt.Fprintf(out, "  Watch:       %s debounce\n", cfg.Watch.Debounce)
	metrics := "disabled"
	if cfg.Metrics.Addr != "" {
		metrics = "http://" + cfg.Metrics.Addr + "/metrics"
	}
	fmt.Fprintf(out, "  Metrics:     %s\n", metrics)
	fmt.Fprintf(out, "  Log:         %s → %s (%s)\n", cfg.Log.Level, cfg.Log.Output, cfg.Log.Path)
	return nil
}

func configPath() string {
	if configFile != "" {
		return configFile
	}
	return kw.Paths.Config
}
