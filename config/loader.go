// Package config provides configuration loading and parsing functionality
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFormat represents the configuration file format
type ConfigFormat string

const (
	FormatYAML ConfigFormat = "yaml"
	FormatJSON ConfigFormat = "json"
)

// Loader handles configuration loading from various sources
type Loader struct {
	// Configuration search paths
	searchPaths []string

	// Environment variable prefix
	envPrefix string

	// Default configuration
	defaultConfig *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		searchPaths: []string{
			".",
			"./config",
			"./configs",
			"/etc/kpzsim",
			os.Getenv("HOME") + "/.kpzsim",
		},
		envPrefix:     "KPZSIM",
		defaultConfig: DefaultConfig(),
	}
}

// SetSearchPaths sets the configuration file search paths
func (l *Loader) SetSearchPaths(paths []string) *Loader {
	l.searchPaths = paths
	return l
}

// SetEnvPrefix sets the environment variable prefix
func (l *Loader) SetEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// SetDefaultConfig sets the default configuration
func (l *Loader) SetDefaultConfig(config *Config) *Loader {
	l.defaultConfig = config
	return l
}

// Load loads configuration from the specified file. An empty filename
// loads the defaults, with environment overrides applied either way.
func (l *Loader) Load(filename string) (*Config, error) {
	if filename == "" {
		return l.finish(l.defaults())
	}

	config, err := l.loadFromFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from file %s: %w", filename, err)
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific file
func (l *Loader) LoadFromFile(filename string) (*Config, error) {
	return l.loadFromFile(filename)
}

// LoadFromReader parses configuration data from an io.Reader. No
// defaults, environment overrides or validation are applied.
func (l *Loader) LoadFromReader(reader io.Reader, format ConfigFormat) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration data: %w", err)
	}

	return l.parseConfig(data, format)
}

// AutoLoad automatically discovers and loads configuration
func (l *Loader) AutoLoad() (*Config, error) {
	configFile, _, err := l.findConfigFile()
	if err != nil {
		// Without a config file the defaults still apply, as do
		// environment overrides.
		if err == ErrConfigFileNotFound {
			return l.finish(l.defaults())
		}
		return nil, err
	}

	config, err := l.loadFromFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
	}
	return config, nil
}

// findConfigFile searches for configuration files in search paths
func (l *Loader) findConfigFile() (string, ConfigFormat, error) {
	filenames := []string{
		"kpzsim.yaml", "kpzsim.yml",
		"config.yaml", "config.yml",
		"kpzsim.json", "config.json",
	}

	for _, searchPath := range l.searchPaths {
		for _, filename := range filenames {
			fullPath := filepath.Join(searchPath, filename)
			if _, err := os.Stat(fullPath); err == nil {
				ext := strings.ToLower(filepath.Ext(filename))
				var format ConfigFormat
				switch ext {
				case ".yaml", ".yml":
					format = FormatYAML
				case ".json":
					format = FormatJSON
				default:
					continue
				}
				return fullPath, format, nil
			}
		}
	}

	return "", "", ErrConfigFileNotFound
}

// loadFromFile loads configuration from a file, merges it over the
// defaults and finishes with environment overrides and validation
func (l *Loader) loadFromFile(filename string) (*Config, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var format ConfigFormat
	switch ext {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := l.parseConfig(data, format)
	if err != nil {
		return nil, err
	}

	return l.finish(l.mergeConfig(l.defaults(), config))
}

// finish applies environment overrides and validates the configuration
func (l *Loader) finish(config *Config) (*Config, error) {
	if err := l.loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// defaults returns a copy of the loader's default configuration
func (l *Loader) defaults() *Config {
	if l.defaultConfig == nil {
		return DefaultConfig()
	}
	copied := *l.defaultConfig
	return &copied
}

// parseConfig parses configuration data based on format
func (l *Loader) parseConfig(data []byte, format ConfigFormat) (*Config, error) {
	config := &Config{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigParseError, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigParseError, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	return config, nil
}

// loadFromEnv loads configuration overrides from environment variables
func (l *Loader) loadFromEnv(config *Config) error {
	// App configuration
	if val := os.Getenv(l.envPrefix + "_APP_NAME"); val != "" {
		config.App.Name = val
	}
	if val := os.Getenv(l.envPrefix + "_APP_VERSION"); val != "" {
		config.App.Version = val
	}
	if val := os.Getenv(l.envPrefix + "_APP_ENVIRONMENT"); val != "" {
		config.App.Environment = Environment(val)
	}
	if val := os.Getenv(l.envPrefix + "_APP_DEBUG"); val != "" {
		config.App.Debug = strings.ToLower(val) == "true"
	}

	// Log configuration
	if val := os.Getenv(l.envPrefix + "_LOG_LEVEL"); val != "" {
		config.Log.Level = LogLevel(val)
	}
	if val := os.Getenv(l.envPrefix + "_LOG_FORMAT"); val != "" {
		config.Log.Format = val
	}
	if val := os.Getenv(l.envPrefix + "_LOG_OUTPUT"); val != "" {
		config.Log.Output = val
	}

	// Lattice and scheduling configuration
	if err := l.intFromEnv("GRID_SIZE", &config.Grid.Size); err != nil {
		return err
	}
	if err := l.intFromEnv("TILING_LOCAL_SIZE", &config.Tiling.LocalSize); err != nil {
		return err
	}
	if err := l.intFromEnv("TILING_PARALLEL_TASKS", &config.Tiling.ParallelTasks); err != nil {
		return err
	}
	if err := l.intFromEnv("TILING_RESCHEDULES", &config.Tiling.Reschedules); err != nil {
		return err
	}

	// Update rule configuration
	if err := l.uint32FromEnv("PROBABILITY_P", &config.Probability.P); err != nil {
		return err
	}
	if err := l.uint32FromEnv("PROBABILITY_Q", &config.Probability.Q); err != nil {
		return err
	}

	// Run configuration
	if err := l.intFromEnv("RUN_ITERATIONS", &config.Run.Iterations); err != nil {
		return err
	}
	if val := os.Getenv(l.envPrefix + "_RUN_DETERMINISTIC_SEED"); val != "" {
		config.Run.DeterministicSeed = strings.ToLower(val) == "true"
	}

	return nil
}

// intFromEnv overrides dst with the named environment variable when set
func (l *Loader) intFromEnv(name string, dst *int) error {
	val := os.Getenv(l.envPrefix + "_" + name)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("%w: %s_%s=%q", ErrEnvironmentVarError, l.envPrefix, name, val)
	}
	*dst = n
	return nil
}

// uint32FromEnv overrides dst with the named environment variable when set
func (l *Loader) uint32FromEnv(name string, dst *uint32) error {
	val := os.Getenv(l.envPrefix + "_" + name)
	if val == "" {
		return nil
	}
	n, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return fmt.Errorf("%w: %s_%s=%q", ErrEnvironmentVarError, l.envPrefix, name, val)
	}
	*dst = uint32(n)
	return nil
}

// mergeConfig merges user config with default config. Zero-valued
// numeric fields in the user config fall back to the defaults; use
// environment overrides to force an explicit zero.
func (l *Loader) mergeConfig(defaultConfig, userConfig *Config) *Config {
	merged := *defaultConfig

	// App config
	if userConfig.App.Name != "" {
		merged.App.Name = userConfig.App.Name
	}
	if userConfig.App.Version != "" {
		merged.App.Version = userConfig.App.Version
	}
	if userConfig.App.Environment != "" {
		merged.App.Environment = userConfig.App.Environment
	}
	merged.App.Debug = userConfig.App.Debug

	// Log config
	if userConfig.Log.Level != "" {
		merged.Log.Level = userConfig.Log.Level
	}
	if userConfig.Log.Format != "" {
		merged.Log.Format = userConfig.Log.Format
	}
	if userConfig.Log.Output != "" {
		merged.Log.Output = userConfig.Log.Output
	}
	if userConfig.Log.Fields != nil {
		merged.Log.Fields = userConfig.Log.Fields
	}

	// Lattice config
	if userConfig.Grid.Size != 0 {
		merged.Grid.Size = userConfig.Grid.Size
	}

	// Tiling config
	if userConfig.Tiling.LocalSize != 0 {
		merged.Tiling.LocalSize = userConfig.Tiling.LocalSize
	}
	if userConfig.Tiling.ParallelTasks != 0 {
		merged.Tiling.ParallelTasks = userConfig.Tiling.ParallelTasks
	}
	if userConfig.Tiling.Reschedules != 0 {
		merged.Tiling.Reschedules = userConfig.Tiling.Reschedules
	}

	// Probability config
	if userConfig.Probability.P != 0 {
		merged.Probability.P = userConfig.Probability.P
	}
	if userConfig.Probability.Q != 0 {
		merged.Probability.Q = userConfig.Probability.Q
	}

	// Run config
	if userConfig.Run.Iterations != 0 {
		merged.Run.Iterations = userConfig.Run.Iterations
	}
	merged.Run.DeterministicSeed = userConfig.Run.DeterministicSeed

	return &merged
}
