package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

// ProjectFileName is the name of the project configuration file
const ProjectFileName = "ngc-pool.toml"

// Environment variables that override the project file
const (
	EnvClosureCompiler = "NGC_POOL_CLOSURE"
	EnvLongStrings     = "NGC_POOL_LONG_STRINGS"
	EnvJobs            = "NGC_POOL_JOBS"
	EnvFormat          = "NGC_POOL_FORMAT"
)

// ProjectConfig is the content of an ngc-pool.toml file
type ProjectConfig struct {
	Pool PoolSection `toml:"pool"`
	CLI  CLISection  `toml:"cli"`
}

// PoolSection configures every constant pool created for the project
type PoolSection struct {
	ClosureCompiler bool `toml:"closure_compiler"`
	LongStrings     int  `toml:"long_strings"`
}

// CLISection configures the command line driver
type CLISection struct {
	Jobs   int    `toml:"jobs"`
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// DefaultProjectConfig returns the configuration used when no file is present
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		CLI: CLISection{
			Jobs:   4,
			Format: "text",
			Color:  "auto",
		},
	}
}

// ParseProjectConfig reads and parses an ngc-pool.toml file. Keys that are
// not part of the schema are rejected.
func ParseProjectConfig(path string) (*ProjectConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	config := DefaultProjectConfig()
	meta, err := toml.DecodeFile(absPath, config)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", absPath, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", absPath, strings.Join(keys, ", "))
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}
	return config, nil
}

// ApplyEnv overrides the configuration with NGC_POOL_* environment variables
func (c *ProjectConfig) ApplyEnv() {
	if env.Has(EnvClosureCompiler) {
		c.Pool.ClosureCompiler = env.Bool(EnvClosureCompiler)
	}
	c.Pool.LongStrings = env.Int(EnvLongStrings, c.Pool.LongStrings)
	c.CLI.Jobs = env.Int(EnvJobs, c.CLI.Jobs)
	c.CLI.Format = env.Str(EnvFormat, c.CLI.Format)
}

// Validate checks the values that cannot be expressed by the schema
func (c *ProjectConfig) Validate() error {
	if c.Pool.LongStrings < 0 {
		return fmt.Errorf("pool.long_strings must not be negative, got %d", c.Pool.LongStrings)
	}
	if c.CLI.Jobs < 1 {
		return fmt.Errorf("cli.jobs must be at least 1, got %d", c.CLI.Jobs)
	}
	switch c.CLI.Format {
	case "text", "msgpack":
	default:
		return fmt.Errorf("cli.format must be text or msgpack, got %q", c.CLI.Format)
	}
	switch c.CLI.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("cli.color must be auto, on or off, got %q", c.CLI.Color)
	}
	return nil
}

// PoolOptions converts the pool section into PoolConfig options
func (c *ProjectConfig) PoolOptions() []PoolConfigOption {
	return []PoolConfigOption{
		WithClosureCompiler(c.Pool.ClosureCompiler),
		WithLongStringThreshold(c.Pool.LongStrings),
	}
}
