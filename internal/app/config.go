package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/corey/kwcount/internal/adapters/zaplog"
	"github.com/spf13/viper"
)

// Config holds all kwcount settings. Values come from, in increasing
// precedence: built-in defaults, the TOML config file, KWCOUNT_* environment
// variables (e.g. KWCOUNT_COUNT_STRATEGY), and command-line flags.
type Config struct {
	Log     zaplog.Conf   `mapstructure:"log"`
	Count   CountConfig   `mapstructure:"count"`
	Bench   BenchConfig   `mapstructure:"bench"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Store   StoreConfig   `mapstructure:"store"`
}

// CountConfig controls single counting runs.
type CountConfig struct {
	Strategy string `mapstructure:"strategy"`
	// LibraryDFA builds the library automaton in DFA mode.
	LibraryDFA bool `mapstructure:"library_dfa"`
}

// BenchConfig controls the benchmark harness.
type BenchConfig struct {
	Runs       int      `mapstructure:"runs"`
	Strategies []string `mapstructure:"strategies"`
	OutDir     string   `mapstructure:"out_dir"` // empty: .kwcount/out
	Save       bool     `mapstructure:"save"`
}

// ScanConfig controls multi-file scans.
type ScanConfig struct {
	Workers int `mapstructure:"workers"`
}

// WatchConfig controls the watch loop.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty: disabled
}

// StoreConfig controls the run history database.
type StoreConfig struct {
	Path string `mapstructure:"path"` // empty: .kwcount/kwcount.db
}

// setDefaults registers every default on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", zaplog.OutputStderr)
	v.SetDefault("log.path", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 7)

	v.SetDefault("count.strategy", "aho")
	v.SetDefault("count.library_dfa", true)

	v.SetDefault("bench.runs", 10)
	v.SetDefault("bench.strategies", StrategyNames())
	v.SetDefault("bench.out_dir", "")
	v.SetDefault("bench.save", true)

	v.SetDefault("scan.workers", 4)
	v.SetDefault("watch.debounce", 100*time.Millisecond)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("store.path", "")
}

// LoadConfig reads configuration for workDir. configFile overrides the
// default .kwcount/config.toml; a missing default file is not an error,
// a missing explicit file is.
func LoadConfig(workDir, configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KWCOUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	paths := NewPaths(workDir)
	file := configFile
	if file == "" {
		file = paths.Config
	}
	v.SetConfigFile(file)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Log.Path == "" {
		cfg.Log.Path = paths.LogFile
	}
	if cfg.Bench.OutDir == "" {
		cfg.Bench.OutDir = paths.OutDir
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = paths.DB
	}
	return &cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := lookupStrategy(c.Count.Strategy); err != nil {
		return fmt.Errorf("count.strategy: %w", err)
	}
	for _, s := range c.Bench.Strategies {
		if _, err := lookupStrategy(s); err != nil {
			return fmt.Errorf("bench.strategies: %w", err)
		}
	}
	if c.Bench.Runs <= 0 {
		return fmt.Errorf("bench.runs: %w", ErrInvalidRuns)
	}
	if c.Scan.Workers <= 0 {
		return fmt.Errorf("scan.workers must be positive, got %d", c.Scan.Workers)
	}
	return c.Log.Validate()
}
