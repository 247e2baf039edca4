package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .kwcount/ work directory.
// All fields are pre-computed strings.
type Paths struct {
	Root   string // .kwcount/
	DB     string // .kwcount/kwcount.db
	Config string // .kwcount/config.toml

	LogDir  string // .kwcount/log/
	LogFile string // .kwcount/log/kwcount.log

	OutDir string // .kwcount/out/ (default bench output directory)
}

// NewPaths constructs all resolved paths from a working directory.
func NewPaths(workDir string) *Paths {
	root := filepath.Join(workDir, ".kwcount")
	return &Paths{
		Root:   root,
		DB:     filepath.Join(root, "kwcount.db"),
		Config: filepath.Join(root, "config.toml"),

		LogDir:  filepath.Join(root, "log"),
		LogFile: filepath.Join(root, "log", "kwcount.log"),

		OutDir: filepath.Join(root, "out"),
	}
}

// EnsureDirs creates all subdirectories under .kwcount/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir, p.OutDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
