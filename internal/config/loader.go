package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SCSSC_ENABLED=false
const EnvPrefix = "SCSSC"

// Loader handles configuration loading from various sources
type Loader struct {
	workDir string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// WithWorkDir sets the directory the local config search starts from
func (l *Loader) WithWorkDir(dir string) *Loader {
	l.workDir = dir
	return l
}

// LoadForCompile loads configuration for commands that compile or resolve assets
func (l *Loader) LoadForCompile(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()

	localPath, err := l.loadLocalConfig(cmd)
	if err != nil {
		return nil, err
	}

	l.bindEnv()
	l.bindCommandFlags(cmd)

	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if localPath != "" {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, &ConfigurationError{Message: fmt.Sprintf("failed to read %s: %v", localPath, err)}
		}

		cfg.Assets, err = ParseAssets(data)
		if err != nil {
			return nil, err
		}

		configDir := filepath.Dir(localPath)
		switch {
		case cfg.ProjectDir == "":
			cfg.ProjectDir = configDir
		case !filepath.IsAbs(cfg.ProjectDir):
			cfg.ProjectDir = filepath.Join(configDir, cfg.ProjectDir)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("enabled", DefaultEnabled)
	viper.SetDefault("autoupdate", DefaultAutoUpdate)
	viper.SetDefault("sassbinary", DefaultSassBinary)
	viper.SetDefault("cachedir", DefaultCacheDir)
	viper.SetDefault("verbose", false)
}

// loadGlobalConfig loads per-user tool settings (sass binary, cache dir)
func (l *Loader) loadGlobalConfig() {
	globalDir := globalConfigDir()
	if globalDir == "" {
		return
	}

	for _, ext := range ConfigExtensions {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig merges the project config file over the global one and
// returns its path
func (l *Loader) loadLocalConfig(cmd *cobra.Command) (string, error) {
	path := ""
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil {
			path = f.Value.String()
		}
	}

	if path == "" {
		dir := l.workDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return "", nil // no local config, Validate reports missing assets
			}
			dir = cwd
		}

		path = FindLocalConfig(dir)
		if path == "" {
			return "", nil
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &ConfigurationError{Message: fmt.Sprintf("invalid config path: %v", err)}
	}

	viper.SetConfigFile(abs)
	if err := viper.MergeInConfig(); err != nil {
		return "", &ConfigurationError{Message: fmt.Sprintf("failed to read %s: %v", abs, err)}
	}

	return abs, nil
}

// bindEnv enables SCSSC_* environment overrides
func (l *Loader) bindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	_ = viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
	_ = viper.BindPFlag("no-cache", cmd.Flags().Lookup("no-cache"))
	_ = viper.BindPFlag("sassbinary", cmd.Flags().Lookup("sass"))
}
