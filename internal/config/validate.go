package config

import (
	"fmt"
	"os"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the loaded configuration and reports every problem at
// once as a *ConfigError. Returns nil when the configuration is usable.
func (c *Config) Validate() *ConfigError {
	var errs []string

	roots := c.Libraries.Roots()
	if len(roots) == 0 {
		errs = append(errs, "libraries: at least one category root must be configured")
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Resolve.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("resolve.concurrency: must be at least 1, got %d", c.Resolve.Concurrency))
	}
	if c.Resolve.Timeout < 0 {
		errs = append(errs, "resolve.timeout: must not be negative")
	}

	if c.Arrivals.Movies < 1 || c.Arrivals.Shows < 1 || c.Arrivals.EpisodesPerShow < 1 {
		errs = append(errs, "arrivals: limits must be at least 1")
	}

	// Library path warnings (non-fatal)
	for cat, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("libraries.%s: warning: directory %q does not exist", cat, root))
		}
	}

	e := &ConfigError{Errors: errs}
	if !e.HasErrors() {
		return nil
	}
	return e
}
