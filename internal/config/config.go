package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// WorkDir is where per-run tool logs are written
	WorkDir string `yaml:"work_dir"`

	// ModelDir is the directory holding trained model artifacts
	ModelDir string `yaml:"model_dir"`

	// CachePath is the SQLite result cache file (empty disables caching)
	CachePath string `yaml:"cache_path"`

	// VmafExecPath is the path to the vmafossexec binary (default: "vmafossexec")
	VmafExecPath string `yaml:"vmafexec_path"`

	// PsnrPath is the path to the psnr binary (default: "psnr")
	PsnrPath string `yaml:"psnr_path"`

	// FeatureExtractorPath is the path to the feature extraction binary
	// (default: "vmaf_feature")
	FeatureExtractorPath string `yaml:"feature_extractor_path"`

	// LogLevel is the logging verbosity: debug, info, warn, error (default info)
	LogLevel string `yaml:"log_level"`

	// LogFormat is the log output format: text or json (default text)
	LogFormat string `yaml:"log_format"`

	// MaxParallel is the number of assets scored concurrently in batch mode.
	// Scoring is CPU-bound, so this defaults to the CPU count.
	MaxParallel int `yaml:"max_parallel"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		WorkDir:              os.TempDir(),
		ModelDir:             "model",
		CachePath:            "",
		VmafExecPath:         "vmafossexec",
		PsnrPath:             "psnr",
		FeatureExtractorPath: "vmaf_feature",
		LogLevel:             "info",
		LogFormat:            "text",
		MaxParallel:          runtime.NumCPU(),
	}
}

// Load reads config from a YAML file, applying defaults for missing values.
// A missing file is not an error - defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Apply defaults for empty values
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if cfg.ModelDir == "" {
		cfg.ModelDir = "model"
	}
	if cfg.VmafExecPath == "" {
		cfg.VmafExecPath = "vmafossexec"
	}
	if cfg.PsnrPath == "" {
		cfg.PsnrPath = "psnr"
	}
	if cfg.FeatureExtractorPath == "" {
		cfg.FeatureExtractorPath = "vmaf_feature"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.MaxParallel < 1 {
		cfg.MaxParallel = runtime.NumCPU()
	}

	return cfg, nil
}

// Save writes the config to a YAML file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the config is usable before any scoring starts
func (c *Config) Validate() error {
	if c.WorkDir == "" {
		return fmt.Errorf("work_dir must not be empty")
	}
	if c.MaxParallel < 1 {
		return fmt.Errorf("max_parallel must be at least 1, got %d", c.MaxParallel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// ModelPath resolves a model artifact name against the model directory
func (c *Config) ModelPath(name string) string {
	return filepath.Join(c.ModelDir, name)
}
