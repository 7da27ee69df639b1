package config

// DefaultLongStringThreshold is the length from which string literals are
// pooled when long string pooling is enabled. Shorter strings are always
// inlined.
const DefaultLongStringThreshold = 50

// PoolConfig represents the constant pool configuration
type PoolConfig struct {
	// ClosureCompilerEnabled wraps pooled long strings in a function so that
	// Closure Compiler does not inline them back at every usage.
	ClosureCompilerEnabled bool
	// LongStringThreshold enables pooling of string literals whose length
	// reaches it. Zero disables pooling of string literals.
	LongStringThreshold int
}

// NewPoolConfig creates a new PoolConfig with optional parameters
func NewPoolConfig(opts ...PoolConfigOption) *PoolConfig {
	config := &PoolConfig{
		ClosureCompilerEnabled: false,
		LongStringThreshold:    0,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// PoolConfigOption is a function that modifies PoolConfig
type PoolConfigOption func(*PoolConfig)

// WithClosureCompiler sets whether Closure Compiler friendly output is produced
func WithClosureCompiler(enabled bool) PoolConfigOption {
	return func(c *PoolConfig) {
		c.ClosureCompilerEnabled = enabled
	}
}

// WithLongStringThreshold sets the length from which string literals are pooled.
// A negative value is treated as zero.
func WithLongStringThreshold(threshold int) PoolConfigOption {
	return func(c *PoolConfig) {
		if threshold < 0 {
			threshold = 0
		}
		c.LongStringThreshold = threshold
	}
}

// IsLongString reports whether a string literal of the given value is long
// enough to be pooled.
func (c *PoolConfig) IsLongString(value string) bool {
	return c.LongStringThreshold > 0 && len(value) >= c.LongStringThreshold
}
