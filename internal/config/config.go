package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultEnabled         = true
	DefaultAutoUpdate      = true
	DefaultSassBinary      = "sass"
	DefaultCacheDir        = ".scssc-cache"
	DefaultOutputFolder    = "public"
	DefaultOutputStyle     = "compressed"
	DefaultAppendTimestamp = true
	DefaultSourceMap       = false
)

// Output styles accepted in asset definitions
const (
	StyleExpanded   = "expanded"
	StyleCompressed = "compressed"
)

// legacyStyles are older formatter names that collapse to compressed output
var legacyStyles = map[string]bool{
	"nested":   true,
	"compact":  true,
	"crunched": true,
}

// Holds the configuration options for scssc
type Config struct {
	// Global switch for on-demand compilation (CLI compiles still run)
	Enabled bool

	// Re-compile on source updates when a result is already cached
	AutoUpdate bool

	// Directory all asset paths are relative to
	ProjectDir string

	// Path to the sass executable
	SassBinary string

	// Build manifest directory, relative to ProjectDir unless absolute
	CacheDir string

	// Disable the build manifest
	NoCache bool

	// Enable verbose output
	Verbose bool

	// Declared assets, in declaration order
	Assets []AssetConfig
}

// AssetConfig is one entry of the assets mapping
type AssetConfig struct {
	Name            string
	Src             string
	OutputFolder    string
	ImportPaths     []string
	Variables       map[string]string
	OutputStyle     string
	SourceMap       bool
	AppendTimestamp bool
}

// Load reads the scalar settings from viper. Assets are attached by the Loader.
func Load() (*Config, error) {
	cfg := &Config{
		Enabled:    viper.GetBool("enabled"),
		AutoUpdate: viper.GetBool("autoupdate"),
		ProjectDir: viper.GetString("projectdir"),
		SassBinary: viper.GetString("sassbinary"),
		CacheDir:   viper.GetString("cachedir"),
		NoCache:    viper.GetBool("no-cache"),
		Verbose:    viper.GetBool("verbose"),
	}

	if cfg.SassBinary == "" {
		cfg.SassBinary = DefaultSassBinary
	}

	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}

	return cfg, nil
}

// Validate checks the configuration and normalizes paths and asset defaults.
func (c *Config) Validate() error {
	if c.ProjectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		c.ProjectDir = cwd
	}

	abs, err := filepath.Abs(c.ProjectDir)
	if err != nil {
		return &ConfigurationError{Message: fmt.Sprintf("invalid project directory: %v", err)}
	}
	c.ProjectDir = abs

	if len(c.Assets) == 0 {
		return &ConfigurationError{Message: "no SCSS assets configured"}
	}

	seen := make(map[string]bool, len(c.Assets))
	for i := range c.Assets {
		a := &c.Assets[i]

		if a.Name == "" {
			return &ConfigurationError{Message: fmt.Sprintf("asset #%d has no name", i+1)}
		}

		if seen[a.Name] {
			return &ConfigurationError{Asset: a.Name, Message: "asset is declared more than once"}
		}
		seen[a.Name] = true

		if strings.TrimSpace(a.Src) == "" {
			return &ConfigurationError{Asset: a.Name, Message: "src is required"}
		}

		if a.OutputFolder == "" {
			a.OutputFolder = DefaultOutputFolder
		}

		style, err := NormalizeStyle(a.OutputStyle)
		if err != nil {
			return &ConfigurationError{Asset: a.Name, Message: err.Error()}
		}
		a.OutputStyle = style
	}

	return nil
}

// ManifestDir returns the absolute directory of the build manifest.
func (c *Config) ManifestDir() string {
	if filepath.IsAbs(c.CacheDir) {
		return c.CacheDir
	}

	return filepath.Join(c.ProjectDir, c.CacheDir)
}

// NormalizeStyle maps a configured output style to expanded or compressed.
func NormalizeStyle(style string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(style))
	switch {
	case s == "":
		return DefaultOutputStyle, nil
	case s == StyleExpanded, s == StyleCompressed:
		return s, nil
	case legacyStyles[s]:
		return StyleCompressed, nil
	}

	return "", fmt.Errorf("invalid output style %q (expected %q or %q)", style, StyleExpanded, StyleCompressed)
}
