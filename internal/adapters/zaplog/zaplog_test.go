package zaplog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConf_Validate(t *testing.T) {
	tests := []struct {
		name    string
		conf    Conf
		wantErr bool
	}{
		{"default stderr", Conf{}, false},
		{"none", Conf{Output: OutputNone}, false},
		{"file without path", Conf{Output: OutputFile}, true},
		{"file with path", Conf{Output: OutputFile, Path: "/tmp/x.log"}, false},
		{"unknown output", Conf{Output: "kafka"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConf_ValidateFillsRotationDefaults(t *testing.T) {
	c := Conf{Output: OutputBoth, Path: "x.log"}
	require.NoError(t, c.Validate())
	assert.Equal(t, 100, c.MaxSize)
	assert.Equal(t, 5, c.MaxBackups)
	assert.Equal(t, 7, c.MaxAge)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestNew_LevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kwcount.log")
	log, err := New(Conf{Output: OutputFile, Path: path, Level: "warn"})
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown", zap.Int("keywords", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, `"keywords": 3`)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "kwcount.log")
	log, err := New(Conf{Output: OutputFile, Path: path, Level: "info"})
	require.NoError(t, err)

	log.Info("automaton built", zap.Int("nodes", 10))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "automaton built")
}

func TestNew_None(t *testing.T) {
	log, err := New(Conf{Output: OutputNone})
	require.NoError(t, err)
	assert.NotNil(t, log)
}
