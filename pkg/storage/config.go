package storage

import (
	"fmt"
	"os"
)

// Config captures blob storage settings.
type Config struct {
	ConnectionString string `toml:"connection_string"`
	ContainerName    string `toml:"container_name"`
}

// Env maps config fields to environment variable names for overrides.
type Env struct {
	ConnectionString string
	ContainerName    string
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
}

func (c *Config) loadDefaults() {
	if c.ContainerName == "" {
		c.ContainerName = "datasets"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
	if env.ContainerName != "" {
		if v := os.Getenv(env.ContainerName); v != "" {
			c.ContainerName = v
		}
	}
}

func (c *Config) validate() error {
	if c.ConnectionString == "" {
		return fmt.Errorf("connection_string is required")
	}
	return nil
}
