package compiler

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Norgate-AV/scssc/internal/asset"
)

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`(?m)(^|[^:])//.*$`)
	loadRule     = regexp.MustCompile(`@(?:import|use|forward)\s+([^;{}\n]+)`)
	quoted       = regexp.MustCompile(`["']([^"']+)["']`)
)

// ScanDependencies follows @import, @use and @forward rules from the job's
// source and returns every stylesheet file it loads, sorted. Targets are
// looked up next to the importing file first, then in the job's import paths.
func ScanDependencies(job asset.Job) ([]string, error) {
	if _, err := os.Stat(job.SourcePath); err != nil {
		return nil, err
	}

	visited := map[string]bool{job.SourcePath: true}
	queue := []string{job.SourcePath}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		content, err := os.ReadFile(current)
		if err != nil {
			continue // a vanished partial is reported by the compiler, not here
		}

		for _, target := range loadTargets(string(content)) {
			resolved := resolveTarget(target, filepath.Dir(current), job.ImportPaths)
			if resolved == "" || visited[resolved] {
				continue
			}

			visited[resolved] = true

			if !strings.EqualFold(filepath.Ext(resolved), ".css") {
				queue = append(queue, resolved)
			}
		}
	}

	deps := make([]string, 0, len(visited)-1)
	for path := range visited {
		if path != job.SourcePath {
			deps = append(deps, path)
		}
	}
	sort.Strings(deps)

	return deps, nil
}

// loadTargets extracts the quoted URLs of every load rule in a stylesheet
func loadTargets(content string) []string {
	content = blockComment.ReplaceAllString(content, "")
	content = lineComment.ReplaceAllString(content, "$1")

	var targets []string
	for _, rule := range loadRule.FindAllStringSubmatch(content, -1) {
		for _, q := range quoted.FindAllStringSubmatch(rule[1], -1) {
			target := q[1]
			if isExternal(target) {
				continue
			}

			targets = append(targets, target)
		}
	}

	return targets
}

// isExternal reports targets the compiler never reads from disk
func isExternal(target string) bool {
	switch {
	case strings.HasPrefix(target, "sass:"),
		strings.HasPrefix(target, "http://"),
		strings.HasPrefix(target, "https://"),
		strings.HasPrefix(target, "//"),
		strings.HasSuffix(strings.ToLower(target), ".css"):
		return true
	}

	return false
}

// resolveTarget applies Sass partial and index file conventions
func resolveTarget(target, dir string, importPaths []string) string {
	bases := make([]string, 0, len(importPaths)+1)
	bases = append(bases, dir)
	bases = append(bases, importPaths...)

	for _, base := range bases {
		for _, candidate := range candidates(filepath.Join(base, filepath.FromSlash(target))) {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}

	return ""
}

func candidates(path string) []string {
	dir, file := filepath.Split(path)
	ext := strings.ToLower(filepath.Ext(file))

	if ext == ".scss" || ext == ".sass" {
		return []string{path, filepath.Join(dir, "_"+file)}
	}

	var list []string
	for _, e := range []string{".scss", ".sass", ".css"} {
		list = append(list, filepath.Join(dir, file+e), filepath.Join(dir, "_"+file+e))
	}

	for _, index := range []string{"_index.scss", "index.scss", "_index.sass", "index.sass"} {
		list = append(list, filepath.Join(path, index))
	}

	return list
}
