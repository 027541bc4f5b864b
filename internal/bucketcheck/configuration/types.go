package configuration

import (
	"github.com/armadaproject/bucketcheck/internal/common/config"
)

const EnvPrefix = "BUCKETCHECK"

type Config struct {
	// Number of strings generated and distributed by each trial
	StringCount int `validate:"gte=1"`
	// Target occupancy used to size the bucket array: ceil(StringCount / ItemsPerBucket) buckets
	ItemsPerBucket int `validate:"gte=1"`
	// String generation parameters
	Generator GeneratorConfig
	// Number of independent trials
	Iterations int `validate:"gte=1"`
	// Maximum number of trials running at once. 0 runs every trial at once
	Parallelism int `validate:"gte=0"`
	// Master seed for the per-trial random sources. 0 draws a seed from the operating system
	Seed int64
	// When true all trials draw from one mutex-guarded random source instead of one source each.
	// Row values then depend on trial scheduling
	SharedRandomSource bool
	// Name of the hash function, see `bucketcheck hashers`
	Hasher string `validate:"required"`
	// How hashes are mapped to buckets: modulo or splitsign
	Strategy string `validate:"required"`
	Output   OutputConfig
	Metrics  MetricsConfig
	// Log level: debug, info, warn or error
	LogLevel string
}

type GeneratorConfig struct {
	// Fixed string prefix
	Prefix string
	// Filler characters are drawn uniformly from [MinChar, MaxChar]
	MinChar config.Char
	MaxChar config.Char
	// Filler length is drawn uniformly from [MinLength, MaxLength]
	MinLength int `validate:"gte=0"`
	MaxLength int `validate:"gte=0"`
}

type OutputConfig struct {
	// tsv or table
	Format string `validate:"required"`
	// Print rows in trial order rather than completion order
	Ordered bool
}

type MetricsConfig struct {
	// Port on which to serve prometheus metrics during the run. 0 disables the endpoint
	Port uint16
}

// Default returns the configuration of the reference benchmark: ten trials of fifty million strings at one hundred
// strings per bucket.
func Default() Config {
	return Config{
		StringCount:    50000000,
		ItemsPerBucket: 100,
		Generator: GeneratorConfig{
			Prefix:    "prefix",
			MinChar:   '1',
			MaxChar:   '4',
			MinLength: 0,
			MaxLength: 0,
		},
		Iterations: 10,
		Hasher:     "oneatatime",
		Strategy:   "modulo",
		Output: OutputConfig{
			Format: "tsv",
		},
		LogLevel: "info",
	}
}
