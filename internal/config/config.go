// Package config loads optional tool settings from .scflite/config.yaml.
// The file configures the solver backend and presentation details only;
// molecule parameters always come from the CLI or the input file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds scflite settings.
type Config struct {
	// PythonPath is the interpreter used to launch the PySCF driver.
	PythonPath string `yaml:"python_path"`

	// ScratchDir is the parent directory for per-solve scratch directories.
	ScratchDir string `yaml:"scratch_dir"`

	// LogLevel sets console verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// PlotFile is where scan modes render their curve. The extension picks
	// the image format.
	PlotFile string `yaml:"plot_file"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		PythonPath: "python3",
		ScratchDir: os.TempDir(),
		LogLevel:   "info",
		PlotFile:   "scan.png",
	}
}

// LoadConfig loads configuration from the given file path. A missing file
// is not an error and yields the defaults; a malformed file is an error.
// Values absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.PythonPath != "" {
		cfg.PythonPath = fileCfg.PythonPath
	}
	if fileCfg.ScratchDir != "" {
		cfg.ScratchDir = fileCfg.ScratchDir
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.PlotFile != "" {
		cfg.PlotFile = fileCfg.PlotFile
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .scflite/config.yaml under the
// given directory, falling back to defaults when absent.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".scflite", "config.yaml"))
}
