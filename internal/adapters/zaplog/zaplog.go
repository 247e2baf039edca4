// Package zaplog builds the structured logger used across kwcount.
// Console-encoded zap output goes to stderr, to a size-rotated file
// (lumberjack), or both.
package zaplog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output targets.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
	OutputBoth   = "both"
	OutputNone   = "none"
)

// Conf holds logger options.
type Conf struct {
	Level      string `mapstructure:"level"`
	Output     string `mapstructure:"output"`
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`    // MB per file before rotation
	MaxBackups int    `mapstructure:"max_backups"` // rotated files kept
	MaxAge     int    `mapstructure:"max_age"`     // days rotated files are kept
}

// Validate checks the output target and fills rotation defaults.
func (c *Conf) Validate() error {
	switch c.Output {
	case "", OutputStderr, OutputNone:
	case OutputFile, OutputBoth:
		if c.Path == "" {
			return fmt.Errorf("log path is required when output is %q", c.Output)
		}
		if c.MaxSize <= 0 {
			c.MaxSize = 100
		}
		if c.MaxBackups <= 0 {
			c.MaxBackups = 5
		}
		if c.MaxAge <= 0 {
			c.MaxAge = 7
		}
	default:
		return fmt.Errorf("unknown log output %q", c.Output)
	}
	return nil
}

// New builds a logger from conf.
func New(conf Conf) (*zap.Logger, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}
	if conf.Output == OutputNone {
		return zap.NewNop(), nil
	}

	var sinks []zapcore.WriteSyncer
	if conf.Output == "" || conf.Output == OutputStderr || conf.Output == OutputBoth {
		sinks = append(sinks, zapcore.Lock(os.Stderr))
	}
	if conf.Output == OutputFile || conf.Output == OutputBoth {
		if err := os.MkdirAll(filepath.Dir(conf.Path), 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		sinks = append(sinks, fileWriter(conf))
	}

	core := zapcore.NewCore(encoder(), zapcore.NewMultiWriteSyncer(sinks...), parseLevel(conf.Level))
	return zap.New(core, zap.AddCaller()), nil
}

// fileWriter returns a size-rotated file sink.
func fileWriter(conf Conf) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    conf.MaxSize,
		MaxBackups: conf.MaxBackups,
		MaxAge:     conf.MaxAge,
		Compress:   true,
	})
}

func encoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "msg"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = timeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// timeEncoder formats the time as 2006-01-02 15:04:05.
func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05"))
}

// parseLevel maps a level name to a zap level; unknown names mean info.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
