package vmm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Config holds simulation configuration
type Config struct {
	// Memory Configuration
	PageSize uint32 `json:"page_size"` // Page size in bytes, must be a power of two
	NumFrames uint32 `json:"num_frames"` // Total physical frames in the pool

	// Process Configuration
	NumProcesses int `json:"num_processes"` // Fixed process count; 0 derives it from the trace

	// Policy Configuration
	Policy string `json:"policy"` // Replacement policy (fifo, lru, optimal, random)
	Allocation string `json:"allocation"` // Frame allocation discipline (global, local)
	Seed int64 `json:"seed"` // Seed for the random replacement policy

	// Performance Configuration
	EnableMetrics bool `json:"enable_metrics"` // Whether to collect performance metrics
	LogLevel string `json:"log_level"` // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PageSize: 4096,
		NumFrames: 64,
		NumProcesses: 4, // Classic four-process benchmark setup
		Policy: "fifo",
		Allocation: "global",
		Seed: 1,
		EnableMetrics: true,
		LogLevel: "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	config := DefaultConfig()

	// Memory
	if val := os.Getenv("VMSIM_PAGE_SIZE"); val != "" {
		if size, err := strconv.ParseUint(val, 10, 32); err == nil {
			config.PageSize = uint32(size)
		}
	}

	if val := os.Getenv("VMSIM_NUM_FRAMES"); val != "" {
		if frames, err := strconv.ParseUint(val, 10, 32); err == nil {
			config.NumFrames = uint32(frames)
		}
	}

	// Processes
	if val := os.Getenv("VMSIM_NUM_PROCESSES"); val != "" {
		if procs, err := strconv.Atoi(val); err == nil {
			config.NumProcesses = procs
		}
	}

	// Policy
	if val := os.Getenv("VMSIM_POLICY"); val != "" {
		config.Policy = val
	}

	if val := os.Getenv("VMSIM_ALLOCATION"); val != "" {
		config.Allocation = val
	}

	if val := os.Getenv("VMSIM_SEED"); val != "" {
		if seed, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.Seed = seed
		}
	}

	// Performance
	if val := os.Getenv("VMSIM_ENABLE_METRICS"); val != "" {
		config.EnableMetrics = val == "true" || val == "1"
	}

	if val := os.Getenv("VMSIM_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	return config
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.PageSize == 0 {
		return ErrInvalidConfig("Validate", "page size must be greater than 0")
	}

	if c.PageSize&(c.PageSize-1) != 0 {
		return ErrInvalidConfig("Validate", fmt.Sprintf("page size %d must be a power of two", c.PageSize))
	}

	if c.NumFrames == 0 {
		return ErrInvalidConfig("Validate", "number of frames must be greater than 0")
	}

	if c.NumProcesses < 0 {
		return ErrInvalidConfig("Validate", "number of processes cannot be negative")
	}

	if _, err := ParsePolicy(c.Policy); err != nil {
		return err
	}

	alloc, err := ParseAllocation(c.Allocation)
	if err != nil {
		return err
	}

	// A local partition must hold at least one frame per process
	if alloc == AllocationLocal && c.NumProcesses > 0 && c.NumFrames/uint32(c.NumProcesses) == 0 {
		return ErrInvalidConfig("Validate",
			fmt.Sprintf("%d frames cannot be partitioned among %d processes", c.NumFrames, c.NumProcesses))
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info": true,
		"warn": true,
		"error": true,
	}

	if !validLogLevels[c.LogLevel] {
		return ErrInvalidConfig("Validate",
			fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel))
	}

	return nil
}

// SlogLevel maps the configured log level to a slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
