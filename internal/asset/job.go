package asset

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Job is the resolved, immutable description of one compile attempt
type Job struct {
	// Name of the asset the job was derived from
	Name string

	// SourcePath is the absolute path of the SCSS entry file
	SourcePath string

	// DestinationPath is the absolute path the compiled CSS is written to
	DestinationPath string

	// PublicPath is the slash-separated destination relative to the output folder
	PublicPath string

	// ImportPaths are absolute load paths, in declared order
	ImportPaths []string

	// Variables are injected before the source is compiled
	Variables map[string]string

	Style           OutputStyle
	SourceMap       bool
	AppendTimestamp bool
}

// NewJob derives the job for def with all paths resolved against projectDir
func NewJob(projectDir string, def Definition) Job {
	job := Job{
		Name:            def.Name,
		SourcePath:      resolve(projectDir, def.Source),
		Style:           def.Style,
		SourceMap:       def.SourceMap,
		AppendTimestamp: def.AppendTimestamp,
	}

	rel := relativeSource(projectDir, job.SourcePath)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + OutputExtension

	job.PublicPath = filepath.ToSlash(rel)
	job.DestinationPath = filepath.Join(resolve(projectDir, def.OutputFolder), rel)

	if len(def.ImportPaths) > 0 {
		job.ImportPaths = make([]string, len(def.ImportPaths))
		for i, p := range def.ImportPaths {
			job.ImportPaths[i] = resolve(projectDir, p)
		}
	}

	job.Variables = copyVariables(def.Variables)

	return job
}

// Clone returns a copy that shares no slices or maps with j
func (j Job) Clone() Job {
	j.ImportPaths = copyStrings(j.ImportPaths)
	j.Variables = copyVariables(j.Variables)

	return j
}

// Fingerprint hashes the compile options of the job.
// The hash is based on:
// - Source and destination paths
// - Import paths (order matters for lookup)
// - Variables (sorted by name for consistency)
// - Output style and source map flag
func (j Job) Fingerprint() string {
	h := sha256.New()

	h.Write([]byte(j.SourcePath))
	h.Write([]byte{0})
	h.Write([]byte(j.DestinationPath))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(j.ImportPaths, "|")))
	h.Write([]byte{0})

	for _, name := range j.VariableNames() {
		h.Write([]byte(name + "=" + j.Variables[name] + ";"))
	}

	h.Write([]byte{0})
	h.Write([]byte(j.Style))
	h.Write([]byte(strconv.FormatBool(j.SourceMap)))

	return hex.EncodeToString(h.Sum(nil))
}

// VariableNames returns the variable names sorted
func (j Job) VariableNames() []string {
	names := make([]string, 0, len(j.Variables))
	for name := range j.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(base, path)
}

// relativeSource returns the source path relative to the project root, or
// its base name when the source lives outside the project
func relativeSource(projectDir, sourcePath string) string {
	rel, err := filepath.Rel(projectDir, sourcePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(sourcePath)
	}

	return rel
}
