// Package config provides configuration management for the simulation engine
package config

import "fmt"

// Environment represents the deployment environment
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// String returns the string representation of Environment
func (e Environment) String() string {
	return string(e)
}

// IsValid checks if the environment is valid
func (e Environment) IsValid() bool {
	switch e {
	case EnvDevelopment, EnvTesting, EnvStaging, EnvProduction:
		return true
	default:
		return false
	}
}

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelFatal LogLevel = "fatal"
)

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	return string(l)
}

// IsValid checks if the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelFatal:
		return true
	default:
		return false
	}
}

// MaxParallelTasks is the largest worker count a run may use. It is the
// number of workers the published deterministic seed table can seed.
const MaxParallelTasks = 16

// ProbabilityScale is the denominator of the flip thresholds: a
// threshold of ProbabilityScale means the flip always happens.
const ProbabilityScale = 65536

// Config represents the complete engine configuration
type Config struct {
	// Application configuration
	App AppConfig `yaml:"app" json:"app"`

	// Logging configuration
	Log LogConfig `yaml:"log" json:"log"`

	// Lattice configuration
	Grid GridConfig `yaml:"grid" json:"grid"`

	// Tile scheduling configuration
	Tiling TilingConfig `yaml:"tiling" json:"tiling"`

	// Update rule thresholds
	Probability ProbabilityConfig `yaml:"probability" json:"probability"`

	// Run shape configuration
	Run RunConfig `yaml:"run" json:"run"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	// Application name
	Name string `yaml:"name" json:"name"`

	// Application version
	Version string `yaml:"version" json:"version"`

	// Deployment environment
	Environment Environment `yaml:"environment" json:"environment"`

	// Debug mode
	Debug bool `yaml:"debug" json:"debug"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	// Log level
	Level LogLevel `yaml:"level" json:"level"`

	// Log format (json, text)
	Format string `yaml:"format" json:"format"`

	// Output destination (stdout, stderr, file path)
	Output string `yaml:"output" json:"output"`

	// Fields to attach to every log record
	Fields map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// GridConfig contains lattice configuration
type GridConfig struct {
	// Side length of the square lattice, a power of two
	Size int `yaml:"size" json:"size"`
}

// TilingConfig contains tile scheduling configuration
type TilingConfig struct {
	// Side length of one worker tile, a power of two no larger than
	// the lattice side
	LocalSize int `yaml:"local_size" json:"local_size"`

	// Number of workers running concurrently in one round
	ParallelTasks int `yaml:"parallel_tasks" json:"parallel_tasks"`

	// Number of schedule passes per iteration; must divide the tile
	// area so every pass pokes a whole number of times
	Reschedules int `yaml:"reschedules" json:"reschedules"`
}

// ProbabilityConfig contains the update rule thresholds
type ProbabilityConfig struct {
	// P is the pyramid flip threshold out of ProbabilityScale
	P uint32 `yaml:"p" json:"p"`

	// Q is the hole flip threshold out of ProbabilityScale
	Q uint32 `yaml:"q" json:"q"`
}

// RunConfig contains run shape configuration
type RunConfig struct {
	// Iterations is the number of full sweeps the host requests
	Iterations int `yaml:"iterations" json:"iterations"`

	// DeterministicSeed selects the published seed table instead of
	// system entropy
	DeterministicSeed bool `yaml:"deterministic_seed" json:"deterministic_seed"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "kpzsim",
			Version:     "1.0.0",
			Environment: EnvDevelopment,
			Debug:       false,
		},
		Log: LogConfig{
			Level:  LogLevelInfo,
			Format: "text",
			Output: "stdout",
		},
		Grid: GridConfig{
			Size: 64,
		},
		Tiling: TilingConfig{
			LocalSize:     8,
			ParallelTasks: 8,
			Reschedules:   2,
		},
		Probability: ProbabilityConfig{
			P: 32767,
			Q: 32767,
		},
		Run: RunConfig{
			Iterations:        1,
			DeterministicSeed: true,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate app config
	if c.App.Name == "" {
		return ErrInvalidAppName
	}
	if !c.App.Environment.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEnvironment, c.App.Environment)
	}

	// Validate log config
	if !c.Log.Level.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
	if c.Log.Output == "" {
		return ErrInvalidLogOutput
	}

	// Validate lattice shape
	if !isPowerOfTwo(c.Grid.Size) {
		return fmt.Errorf("%w: %d", ErrGridSizeNotPow2, c.Grid.Size)
	}
	if !isPowerOfTwo(c.Tiling.LocalSize) {
		return fmt.Errorf("%w: %d", ErrLocalSizeNotPow2, c.Tiling.LocalSize)
	}
	if c.Tiling.LocalSize > c.Grid.Size {
		return fmt.Errorf("%w: tile %d, grid %d", ErrLocalExceedsGrid, c.Tiling.LocalSize, c.Grid.Size)
	}

	// Validate scheduling shape
	if c.Tiling.ParallelTasks < 1 || c.Tiling.ParallelTasks > MaxParallelTasks {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidParallelTasks, c.Tiling.ParallelTasks, MaxParallelTasks)
	}
	side := c.Grid.Size / c.Tiling.LocalSize
	if side*side%c.Tiling.ParallelTasks != 0 {
		return fmt.Errorf("%w: %d tiles across %d workers", ErrTasksNotDivisible, side*side, c.Tiling.ParallelTasks)
	}
	area := c.Tiling.LocalSize * c.Tiling.LocalSize
	if c.Tiling.Reschedules < 1 || area%c.Tiling.Reschedules != 0 {
		return fmt.Errorf("%w: %d passes over a tile of %d cells", ErrInvalidReschedules, c.Tiling.Reschedules, area)
	}

	// Validate update rule
	if c.Probability.P > ProbabilityScale {
		return fmt.Errorf("%w: p = %d", ErrThresholdRange, c.Probability.P)
	}
	if c.Probability.Q > ProbabilityScale {
		return fmt.Errorf("%w: q = %d", ErrThresholdRange, c.Probability.Q)
	}

	// Validate run shape
	if c.Run.Iterations < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, c.Run.Iterations)
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// GetLogLevel returns the log level
func (c *Config) GetLogLevel() LogLevel {
	return c.Log.Level
}

// IsDebugEnabled returns true if debug mode is enabled
func (c *Config) IsDebugEnabled() bool {
	return c.App.Debug || c.App.Environment == EnvDevelopment
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
