package config

// Config represents the complete outline configuration.
// It can be loaded from .outline/config.yml with environment variable overrides.
type Config struct {
	Summary SummaryConfig `yaml:"summary" mapstructure:"summary"`
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
}

// SummaryConfig controls how much of each category a summary keeps.
type SummaryConfig struct {
	Cap             int `yaml:"cap" mapstructure:"cap"`                             // entries shown per category
	MaxCalleeLength int `yaml:"max_callee_length" mapstructure:"max_callee_length"` // longer callee renderings are dropped
}

// PathsConfig defines which files to summarize and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// ScanConfig controls directory scans.
type ScanConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // files summarized concurrently
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-summarizing
	CacheSize  int `yaml:"cache_size" mapstructure:"cache_size"`   // summaries kept by content hash
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Summary: SummaryConfig{
			Cap:             10,
			MaxCalleeLength: 120,
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.py",
				"**/*.pyi",
			},
			Ignore: []string{
				".git/**",
				".venv/**",
				"venv/**",
				"__pycache__/**",
				"**/__pycache__/**",
				"build/**",
				"dist/**",
				".tox/**",
				"*.egg-info/**",
			},
		},
		Scan: ScanConfig{
			Workers: 4,
		},
		Watch: WatchConfig{
			DebounceMs: 300,
			CacheSize:  1000,
		},
	}
}
