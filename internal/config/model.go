package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/calyxlabs/calyx/pkg/knn"
)

const (
	EnvModelDefaultK        = "CALYX_MODEL_DEFAULT_K"
	EnvModelDefaultDistance = "CALYX_MODEL_DEFAULT_DISTANCE"
	EnvModelSplitPolicy     = "CALYX_MODEL_SPLIT_POLICY"
	EnvModelSplitModulus    = "CALYX_MODEL_SPLIT_MODULUS"
	EnvModelSplitRatio      = "CALYX_MODEL_SPLIT_RATIO"
	EnvModelSplitSeed       = "CALYX_MODEL_SPLIT_SEED"
)

// Split policies for partitioning uploaded datasets.
const (
	SplitIndexed  = "indexed"
	SplitShuffled = "shuffled"
)

// ModelConfig holds classifier defaults and the dataset partition policy.
type ModelConfig struct {
	DefaultK        int     `toml:"default_k"`
	DefaultDistance string  `toml:"default_distance"`
	SplitPolicy     string  `toml:"split_policy"`
	SplitModulus    int     `toml:"split_modulus"`
	SplitRatio      float64 `toml:"split_ratio"`
	SplitSeed       int64   `toml:"split_seed"`
}

// Splitter constructs the configured partition strategy.
func (c *ModelConfig) Splitter() knn.Splitter {
	if c.SplitPolicy == SplitShuffled {
		return knn.ShuffleSplitter{Ratio: c.SplitRatio, Seed: c.SplitSeed}
	}
	return knn.IndexedSplitter{Modulus: c.SplitModulus}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ModelConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ModelConfig) Merge(overlay *ModelConfig) {
	if overlay.DefaultK != 0 {
		c.DefaultK = overlay.DefaultK
	}
	if overlay.DefaultDistance != "" {
		c.DefaultDistance = overlay.DefaultDistance
	}
	if overlay.SplitPolicy != "" {
		c.SplitPolicy = overlay.SplitPolicy
	}
	if overlay.SplitModulus != 0 {
		c.SplitModulus = overlay.SplitModulus
	}
	if overlay.SplitRatio != 0 {
		c.SplitRatio = overlay.SplitRatio
	}
	if overlay.SplitSeed != 0 {
		c.SplitSeed = overlay.SplitSeed
	}
}

func (c *ModelConfig) loadDefaults() {
	if c.DefaultK == 0 {
		c.DefaultK = 5
	}
	if c.DefaultDistance == "" {
		c.DefaultDistance = "euclidean"
	}
	if c.SplitPolicy == "" {
		c.SplitPolicy = SplitIndexed
	}
	if c.SplitModulus == 0 {
		c.SplitModulus = 5
	}
	if c.SplitRatio == 0 {
		c.SplitRatio = 0.8
	}
	if c.SplitSeed == 0 {
		c.SplitSeed = 42
	}
}

func (c *ModelConfig) loadEnv() {
	if v := os.Getenv(EnvModelDefaultK); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			c.DefaultK = k
		}
	}
	if v := os.Getenv(EnvModelDefaultDistance); v != "" {
		c.DefaultDistance = v
	}
	if v := os.Getenv(EnvModelSplitPolicy); v != "" {
		c.SplitPolicy = v
	}
	if v := os.Getenv(EnvModelSplitModulus); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			c.SplitModulus = m
		}
	}
	if v := os.Getenv(EnvModelSplitRatio); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			c.SplitRatio = r
		}
	}
	if v := os.Getenv(EnvModelSplitSeed); v != "" {
		if s, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.SplitSeed = s
		}
	}
}

func (c *ModelConfig) validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("invalid default_k: %d", c.DefaultK)
	}
	if _, err := knn.ParseDistance(c.DefaultDistance); err != nil {
		return fmt.Errorf("invalid default_distance %q: %w", c.DefaultDistance, err)
	}

	switch c.SplitPolicy {
	case SplitIndexed:
		if c.SplitModulus < 2 {
			return fmt.Errorf("invalid split_modulus: %d", c.SplitModulus)
		}
	case SplitShuffled:
		if c.SplitRatio <= 0 || c.SplitRatio >= 1 {
			return fmt.Errorf("invalid split_ratio: %g", c.SplitRatio)
		}
	default:
		return fmt.Errorf("invalid split_policy: %q", c.SplitPolicy)
	}

	return nil
}
