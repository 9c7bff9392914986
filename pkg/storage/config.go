package storage

import (
	"fmt"
	"os"
)

// Config holds Azure Blob Storage connection parameters.
// PublicEndpoint is the externally reachable blob endpoint used for
// public URL derivation; it may differ from the endpoint embedded in
// the connection string when the service runs behind a proxy.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	PublicEndpoint   string `toml:"public_endpoint"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	ContainerName    string
	ConnectionString string
	PublicEndpoint   string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.PublicEndpoint != "" {
		c.PublicEndpoint = overlay.PublicEndpoint
	}
}

func (c *Config) loadDefaults() {
	if c.ContainerName == "" {
		c.ContainerName = "documents"
	}
	if c.PublicEndpoint == "" {
		c.PublicEndpoint = "http://localhost:10000"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.ContainerName != "" {
		if v := os.Getenv(env.ContainerName); v != "" {
			c.ContainerName = v
		}
	}
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
	if env.PublicEndpoint != "" {
		if v := os.Getenv(env.PublicEndpoint); v != "" {
			c.PublicEndpoint = v
		}
	}
}

func (c *Config) validate() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if c.ConnectionString == "" {
		return fmt.Errorf("connection_string required")
	}
	if c.PublicEndpoint == "" {
		return fmt.Errorf("public_endpoint required")
	}
	return nil
}
