// Package asset models the declared SCSS assets and the compile jobs derived from them.
package asset

import (
	"github.com/Norgate-AV/scssc/internal/config"
)

// OutputStyle selects the formatting of compiled CSS
type OutputStyle string

const (
	StyleExpanded   OutputStyle = config.StyleExpanded
	StyleCompressed OutputStyle = config.StyleCompressed
)

// OutputExtension is the extension of every compiled stylesheet
const OutputExtension = ".css"

// Definition is one registered logical asset. Name is its identity.
type Definition struct {
	Name            string
	Source          string
	OutputFolder    string
	ImportPaths     []string
	Variables       map[string]string
	Style           OutputStyle
	SourceMap       bool
	AppendTimestamp bool
}

// FromConfig converts a validated asset config entry into a Definition
func FromConfig(a config.AssetConfig) Definition {
	def := Definition{
		Name:            a.Name,
		Source:          a.Src,
		OutputFolder:    a.OutputFolder,
		Style:           OutputStyle(a.OutputStyle),
		SourceMap:       a.SourceMap,
		AppendTimestamp: a.AppendTimestamp,
	}

	def.ImportPaths = copyStrings(a.ImportPaths)
	def.Variables = copyVariables(a.Variables)

	return def
}

// Clone returns a copy that shares no slices or maps with d
func (d Definition) Clone() Definition {
	d.ImportPaths = copyStrings(d.ImportPaths)
	d.Variables = copyVariables(d.Variables)

	return d
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	return append([]string(nil), in...)
}

func copyVariables(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
