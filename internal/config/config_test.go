package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		setupViper func()
		wantConfig *Config
	}{
		{
			name: "load with all defaults",
			setupViper: func() {
				viper.Reset()
				NewLoader().setupViperDefaults()
			},
			wantConfig: &Config{
				Enabled:    true,
				AutoUpdate: true,
				SassBinary: DefaultSassBinary,
				CacheDir:   DefaultCacheDir,
			},
		},
		{
			name: "load with custom values",
			setupViper: func() {
				viper.Reset()
				viper.Set("enabled", false)
				viper.Set("autoUpdate", false)
				viper.Set("projectDir", "/srv/app")
				viper.Set("sassBinary", "/usr/local/bin/sass")
				viper.Set("cacheDir", "var/scssc")
				viper.Set("verbose", true)
			},
			wantConfig: &Config{
				Enabled:    false,
				AutoUpdate: false,
				ProjectDir: "/srv/app",
				SassBinary: "/usr/local/bin/sass",
				CacheDir:   "var/scssc",
				Verbose:    true,
			},
		},
		{
			name: "empty sass binary gets default",
			setupViper: func() {
				viper.Reset()
				viper.Set("sassBinary", "")
			},
			wantConfig: &Config{
				SassBinary: DefaultSassBinary,
				CacheDir:   DefaultCacheDir,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupViper()

			cfg, err := Load()
			require.NoError(t, err)

			assert.Equal(t, tt.wantConfig.Enabled, cfg.Enabled)
			assert.Equal(t, tt.wantConfig.AutoUpdate, cfg.AutoUpdate)
			assert.Equal(t, tt.wantConfig.ProjectDir, cfg.ProjectDir)
			assert.Equal(t, tt.wantConfig.SassBinary, cfg.SassBinary)
			assert.Equal(t, tt.wantConfig.CacheDir, cfg.CacheDir)
			assert.Equal(t, tt.wantConfig.Verbose, cfg.Verbose)
			assert.Empty(t, cfg.Assets)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		wantErr     bool
		errContains string
		checkFields func(*testing.T, *Config)
	}{
		{
			name: "valid config",
			config: &Config{
				ProjectDir: "project",
				Assets:     []AssetConfig{{Name: "main", Src: "app.scss"}},
			},
			checkFields: func(t *testing.T, cfg *Config) {
				assert.True(t, filepath.IsAbs(cfg.ProjectDir))
				assert.Equal(t, DefaultOutputFolder, cfg.Assets[0].OutputFolder)
				assert.Equal(t, StyleCompressed, cfg.Assets[0].OutputStyle)
			},
		},
		{
			name:   "empty project dir resolves to working directory",
			config: &Config{Assets: []AssetConfig{{Name: "main", Src: "app.scss"}}},
			checkFields: func(t *testing.T, cfg *Config) {
				abs, _ := filepath.Abs(".")
				assert.Equal(t, abs, cfg.ProjectDir)
			},
		},
		{
			name:        "no assets",
			config:      &Config{ProjectDir: "."},
			wantErr:     true,
			errContains: "no SCSS assets configured",
		},
		{
			name: "missing src",
			config: &Config{
				Assets: []AssetConfig{{Name: "main"}},
			},
			wantErr:     true,
			errContains: "src is required",
		},
		{
			name: "duplicate names",
			config: &Config{
				Assets: []AssetConfig{
					{Name: "main", Src: "a.scss"},
					{Name: "main", Src: "b.scss"},
				},
			},
			wantErr:     true,
			errContains: "declared more than once",
		},
		{
			name: "invalid output style",
			config: &Config{
				Assets: []AssetConfig{{Name: "main", Src: "a.scss", OutputStyle: "pretty"}},
			},
			wantErr:     true,
			errContains: "invalid output style",
		},
		{
			name: "legacy output style is normalized",
			config: &Config{
				Assets: []AssetConfig{{Name: "main", Src: "a.scss", OutputStyle: "Nested"}},
			},
			checkFields: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StyleCompressed, cfg.Assets[0].OutputStyle)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.wantErr {
				require.Error(t, err)
				var cfgErr *ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.checkFields != nil {
				tt.checkFields(t, tt.config)
			}
		})
	}
}

func TestNormalizeStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", StyleCompressed, false},
		{"compressed", StyleCompressed, false},
		{"expanded", StyleExpanded, false},
		{" Expanded ", StyleExpanded, false},
		{"nested", StyleCompressed, false},
		{"compact", StyleCompressed, false},
		{"crunched", StyleCompressed, false},
		{"pretty", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeStyle(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "NormalizeStyle(%q)", tt.input)
			continue
		}

		assert.NoError(t, err, "NormalizeStyle(%q)", tt.input)
		assert.Equal(t, tt.want, got, "NormalizeStyle(%q)", tt.input)
	}
}

func TestConfig_ManifestDir(t *testing.T) {
	cfg := &Config{ProjectDir: "/srv/app", CacheDir: ".scssc-cache"}
	assert.Equal(t, filepath.Join("/srv/app", ".scssc-cache"), cfg.ManifestDir())

	cfg.CacheDir = "/var/cache/scssc"
	assert.Equal(t, "/var/cache/scssc", cfg.ManifestDir())
}
