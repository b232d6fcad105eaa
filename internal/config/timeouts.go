package config

import "time"

// TimeoutConfig holds timeout settings for store access.
type TimeoutConfig struct {
	// Connect bounds the initial ping of the store. Default: 10s
	Connect time.Duration

	// Query bounds each individual statement. Zero disables the deadline.
	// Default: 30s
	Query time.Duration
}

// DefaultTimeoutConfig returns the default timeout configuration
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Connect: 10 * time.Second,
		Query:   30 * time.Second,
	}
}
