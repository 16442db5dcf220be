package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawAsset mirrors an asset entry as written in the config file. Pointers tell
// an omitted boolean apart from an explicit false.
type rawAsset struct {
	Src             string            `yaml:"src"`
	OutputFolder    string            `yaml:"outputFolder"`
	ImportPaths     []string          `yaml:"importPaths"`
	Variables       map[string]string `yaml:"variables"`
	OutputStyle     string            `yaml:"outputStyle"`
	SourceMap       *bool             `yaml:"sourceMap"`
	AppendTimestamp *bool             `yaml:"appendTimestamp"`
}

// ParseAssets decodes the assets mapping of a YAML or JSON config document,
// keeping declaration order and the exact spelling of asset names.
func ParseAssets(data []byte) ([]AssetConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigurationError{Message: fmt.Sprintf("failed to parse config: %v", err)}
	}

	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ConfigurationError{Message: "config root must be a mapping"}
	}

	var assets *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "assets" {
			assets = root.Content[i+1]
			break
		}
	}

	if assets == nil || assets.Tag == "!!null" {
		return nil, nil
	}

	if assets.Kind != yaml.MappingNode {
		return nil, &ConfigurationError{Message: "assets must be a mapping of name to definition"}
	}

	result := make([]AssetConfig, 0, len(assets.Content)/2)
	for i := 0; i+1 < len(assets.Content); i += 2 {
		name := assets.Content[i].Value

		var raw rawAsset
		if err := assets.Content[i+1].Decode(&raw); err != nil {
			return nil, &ConfigurationError{Asset: name, Message: fmt.Sprintf("malformed entry: %v", err)}
		}

		result = append(result, raw.toAssetConfig(name))
	}

	return result, nil
}

func (r rawAsset) toAssetConfig(name string) AssetConfig {
	a := AssetConfig{
		Name:            name,
		Src:             r.Src,
		OutputFolder:    r.OutputFolder,
		ImportPaths:     r.ImportPaths,
		Variables:       r.Variables,
		OutputStyle:     r.OutputStyle,
		SourceMap:       DefaultSourceMap,
		AppendTimestamp: DefaultAppendTimestamp,
	}

	if a.OutputFolder == "" {
		a.OutputFolder = DefaultOutputFolder
	}

	if a.OutputStyle == "" {
		a.OutputStyle = DefaultOutputStyle
	}

	if r.SourceMap != nil {
		a.SourceMap = *r.SourceMap
	}

	if r.AppendTimestamp != nil {
		a.AppendTimestamp = *r.AppendTimestamp
	}

	return a
}
