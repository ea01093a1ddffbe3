// Package config provides error definitions for configuration management
package config

import "errors"

// Configuration validation errors
var (
	ErrInvalidAppName       = errors.New("invalid application name")
	ErrInvalidEnvironment   = errors.New("invalid environment")
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidLogFormat     = errors.New("invalid log format")
	ErrInvalidLogOutput     = errors.New("invalid log output")
	ErrGridSizeNotPow2      = errors.New("grid size must be a power of two")
	ErrLocalSizeNotPow2     = errors.New("tile size must be a power of two")
	ErrLocalExceedsGrid     = errors.New("tile size exceeds grid size")
	ErrInvalidParallelTasks = errors.New("invalid parallel task count")
	ErrTasksNotDivisible    = errors.New("tile count not divisible by parallel task count")
	ErrInvalidReschedules   = errors.New("invalid reschedule count")
	ErrThresholdRange       = errors.New("flip threshold out of range")
	ErrInvalidIterations    = errors.New("invalid iteration count")
)

// Configuration loading errors
var (
	ErrConfigFileNotFound  = errors.New("configuration file not found")
	ErrConfigParseError    = errors.New("configuration parse error")
	ErrEnvironmentVarError = errors.New("environment variable error")
	ErrConfigWatchError    = errors.New("configuration watch error")
	ErrWatcherUnavailable  = errors.New("configuration watcher not available")
)
