package scss

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/scssc/internal/asset"
	"github.com/Norgate-AV/scssc/internal/compiler"
	"github.com/Norgate-AV/scssc/internal/config"
	"github.com/Norgate-AV/scssc/internal/manifest"
)

// fakeCompiler returns canned CSS and counts calls per asset
type fakeCompiler struct {
	mu      sync.Mutex
	calls   map[string]int
	failing map[string]string
	css     map[string]string
	deps    map[string][]string
}

func newFakeCompiler() *fakeCompiler {
	return &fakeCompiler{
		calls:   map[string]int{},
		failing: map[string]string{},
		css:     map[string]string{},
		deps:    map[string][]string{},
	}
}

func (f *fakeCompiler) Compile(_ context.Context, job asset.Job) (*compiler.Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[job.Name]++

	if _, err := os.Stat(job.SourcePath); err != nil {
		return nil, compiler.NewFilesystemError("cannot read source %s: %v", job.SourcePath, err)
	}

	if msg, ok := f.failing[job.Name]; ok {
		return nil, &compiler.CompileError{Kind: compiler.KindSyntax, Message: msg, ExitCode: 65}
	}

	css, ok := f.css[job.Name]
	if !ok {
		css = fmt.Sprintf("/* %s */body{color:red}", job.Name)
	}

	return &compiler.Output{CSS: []byte(css), Dependencies: f.deps[job.Name]}, nil
}

func (f *fakeCompiler) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[name]
}

func (f *fakeCompiler) Fail(name, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failing[name] = message
}

func (f *fakeCompiler) Fix(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.failing, name)
}

func (f *fakeCompiler) SetCSS(name, css string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.css[name] = css
}

// memoryRecords collects manifest records
type memoryRecords struct {
	mu      sync.Mutex
	records []manifest.Record
	err     error
}

func (m *memoryRecords) Put(rec manifest.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.records = append(m.records, rec)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeSource creates a file under the project directory
func writeSource(t *testing.T, projectDir, rel, content string) string {
	t.Helper()

	path := filepath.Join(projectDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// testConfig declares main and admin assets with sources in a temp project
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	writeSource(t, dir, "assets/app.scss", "body { color: red; }")
	writeSource(t, dir, "assets/admin.scss", "body { color: blue; }")

	return &config.Config{
		Enabled:    true,
		AutoUpdate: true,
		ProjectDir: dir,
		Assets: []config.AssetConfig{
			{Name: "main", Src: "assets/app.scss", AppendTimestamp: true},
			{Name: "admin", Src: "assets/admin.scss"},
		},
	}
}

func newTestParser(t *testing.T, cfg *config.Config, c compiler.Compiler, opts ...Option) *Parser {
	t.Helper()

	opts = append([]Option{WithCompiler(c), WithLogger(discardLogger())}, opts...)

	p, err := New(cfg, opts...)
	require.NoError(t, err)

	return p
}
