package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssets(t *testing.T) {
	t.Run("keeps declaration order and name case", func(t *testing.T) {
		data := []byte(`
enabled: true
assets:
  Zeta:
    src: zeta.scss
  alpha:
    src: alpha.scss
  css/Main.css:
    src: assets/main.scss
`)

		assets, err := ParseAssets(data)
		require.NoError(t, err)
		require.Len(t, assets, 3)
		assert.Equal(t, "Zeta", assets[0].Name)
		assert.Equal(t, "alpha", assets[1].Name)
		assert.Equal(t, "css/Main.css", assets[2].Name)
	})

	t.Run("applies defaults", func(t *testing.T) {
		assets, err := ParseAssets([]byte("assets:\n  main:\n    src: app.scss\n"))
		require.NoError(t, err)
		require.Len(t, assets, 1)

		a := assets[0]
		assert.Equal(t, "app.scss", a.Src)
		assert.Equal(t, DefaultOutputFolder, a.OutputFolder)
		assert.Equal(t, DefaultOutputStyle, a.OutputStyle)
		assert.Equal(t, DefaultSourceMap, a.SourceMap)
		assert.Equal(t, DefaultAppendTimestamp, a.AppendTimestamp)
		assert.Empty(t, a.ImportPaths)
		assert.Empty(t, a.Variables)
	})

	t.Run("explicit values win over defaults", func(t *testing.T) {
		data := []byte(`
assets:
  admin:
    src: admin.scss
    outputFolder: web
    importPaths: [node_modules, vendor/scss]
    variables:
      primary: "#c00"
      gutter: 10px
      columns: 12
    outputStyle: expanded
    sourceMap: true
    appendTimestamp: false
`)

		assets, err := ParseAssets(data)
		require.NoError(t, err)
		require.Len(t, assets, 1)

		a := assets[0]
		assert.Equal(t, "web", a.OutputFolder)
		assert.Equal(t, []string{"node_modules", "vendor/scss"}, a.ImportPaths)
		assert.Equal(t, map[string]string{"primary": "#c00", "gutter": "10px", "columns": "12"}, a.Variables)
		assert.Equal(t, "expanded", a.OutputStyle)
		assert.True(t, a.SourceMap)
		assert.False(t, a.AppendTimestamp)
	})

	t.Run("json documents are accepted", func(t *testing.T) {
		data := []byte(`{"assets": {"b": {"src": "b.scss"}, "a": {"src": "a.scss"}}}`)

		assets, err := ParseAssets(data)
		require.NoError(t, err)
		require.Len(t, assets, 2)
		assert.Equal(t, "b", assets[0].Name)
		assert.Equal(t, "a", assets[1].Name)
	})

	t.Run("missing assets section", func(t *testing.T) {
		assets, err := ParseAssets([]byte("enabled: false\n"))
		require.NoError(t, err)
		assert.Empty(t, assets)
	})

	t.Run("empty document", func(t *testing.T) {
		assets, err := ParseAssets([]byte(""))
		require.NoError(t, err)
		assert.Empty(t, assets)
	})

	t.Run("assets must be a mapping", func(t *testing.T) {
		_, err := ParseAssets([]byte("assets:\n  - app.scss\n"))
		require.Error(t, err)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), "assets must be a mapping")
	})

	t.Run("malformed entry names the asset", func(t *testing.T) {
		_, err := ParseAssets([]byte("assets:\n  main:\n    importPaths: {a: b}\n"))
		require.Error(t, err)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "main", cfgErr.Asset)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseAssets([]byte("assets: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config")
	})
}
