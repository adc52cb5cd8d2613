package config

import (
	"fmt"
	"strings"
)

// ConfigError collects every problem found while loading one configuration
// file, so a bad config surfaces all of its issues in a single pass.
type ConfigError struct {
	Path    string   // config file the problems came from
	Missing []string // environment variables the file referenced but the environment lacked
	Errors  []string // validation failures
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("config %s:", e.Path))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Errors) > 0 {
		parts = append(parts, "validation failed:")
		for _, msg := range e.Errors {
			parts = append(parts, fmt.Sprintf("  - %s", msg))
		}
	}
	return strings.Join(parts, "\n")
}

// HasErrors reports whether the load produced any problems at all.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
