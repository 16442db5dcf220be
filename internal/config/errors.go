package config

import "fmt"

// ConfigurationError reports a missing or malformed configuration. It is fatal at startup.
type ConfigurationError struct {
	Asset   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Asset != "" {
		return fmt.Sprintf("configuration error in asset %q: %s", e.Asset, e.Message)
	}

	return fmt.Sprintf("configuration error: %s", e.Message)
}
