package cmd

import (
	"fmt"
	"os"

	"github.com/corey/kwcount/internal/adapters/zaplog"
	"github.com/corey/kwcount/internal/app"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	noColor    bool

	// kw is the App built by the root pre-run hook for every subcommand.
	kw *app.App
)

var rootCmd = &cobra.Command{
	Use:   "kwcount",
	Short: "kwcount: multi-keyword occurrence counter",
	Long: "Counts how often each query keyword occurs (with overlaps) in a database text " +
		"using an Aho-Corasick automaton, and benchmarks it against other strategies.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// workDir returns the working directory (cwd).
func workDir() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// setup loads configuration and builds the logger and App.
func setup(cmd *cobra.Command, args []string) error {
	dir := workDir()
	cfg, err := app.LoadConfig(dir, configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	paths := app.NewPaths(dir)
	if cfg.Log.Output == zaplog.OutputFile || cfg.Log.Output == zaplog.OutputBoth {
		if err := paths.EnsureDirs(); err != nil {
			return fmt.Errorf("create work dir: %w", err)
		}
	}
	log, err := zaplog.New(cfg.Log)
	if err != nil {
		return err
	}
	kw = app.New(dir, cfg, log)
	return nil
}

// useColor reports whether stdout output should carry ANSI colors.
func useColor() bool {
	return !noColor && isStdoutTTY()
}

// Execute runs the root command, then closes the App whether or not the
// command failed, releasing the run history lock and flushing the logger.
func Execute() (err error) {
	defer func() {
		if kw == nil {
			return
		}
		if cerr := kw.Close(); err == nil {
			err = cerr
		}
		kw = nil
	}()
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default .kwcount/config.toml)")
	pf.StringVar(&logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}
