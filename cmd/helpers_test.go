package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/scssc/internal/asset"
	"github.com/Norgate-AV/scssc/internal/compiler"
	"github.com/Norgate-AV/scssc/internal/config"
	"github.com/Norgate-AV/scssc/internal/prompt"
	"github.com/Norgate-AV/scssc/internal/ui"
)

const testConfig = `enabled: true
assets:
  main:
    src: assets/app.scss
  admin:
    src: assets/admin.scss
    appendTimestamp: false
`

// stubCompiler fails for assets listed in failing and emits fixed CSS otherwise
type stubCompiler struct {
	mu      sync.Mutex
	failing map[string]string
	calls   []string
}

func (s *stubCompiler) Compile(_ context.Context, job asset.Job) (*compiler.Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, job.Name)

	if msg, ok := s.failing[job.Name]; ok {
		return nil, &compiler.CompileError{Kind: compiler.KindSyntax, Message: msg, ExitCode: 65}
	}

	return &compiler.Output{CSS: []byte(strings.Repeat("a", 2048))}, nil
}

// scriptedPrompter returns canned answers
type scriptedPrompter struct {
	choice  string
	confirm bool
	asked   []string
}

func (p *scriptedPrompter) Choose(question string, _ []string, _ string) (string, error) {
	p.asked = append(p.asked, question)
	if p.choice == "" {
		return "", prompt.ErrCancelled
	}
	return p.choice, nil
}

func (p *scriptedPrompter) Confirm(question string, _ bool) (bool, error) {
	p.asked = append(p.asked, question)
	return p.confirm, nil
}

type testEnv struct {
	dir      string
	config   string
	compiler *stubCompiler
	prompter *scriptedPrompter
	terminal bool
	stdin    io.Reader
}

// newTestEnv writes a project with main and admin assets and swaps the
// process hooks for stubs
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("APPDATA", t.TempDir())

	dir := t.TempDir()
	for _, rel := range []string{"assets/app.scss", "assets/admin.scss"} {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("body{}"), 0o644))
	}

	configPath := filepath.Join(dir, ".scssc.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0o644))

	env := &testEnv{
		dir:      dir,
		config:   configPath,
		compiler: &stubCompiler{failing: map[string]string{}},
		prompter: &scriptedPrompter{confirm: true},
	}

	origCompiler, origTerminal, origPrompter := newCompiler, stdinIsTerminal, newPrompter
	t.Cleanup(func() {
		newCompiler, stdinIsTerminal, newPrompter = origCompiler, origTerminal, origPrompter
	})

	newCompiler = func(*config.Config, *slog.Logger) compiler.Compiler { return env.compiler }
	stdinIsTerminal = func(io.Reader) bool { return env.terminal }
	newPrompter = func(*cobra.Command, ui.Styles) prompt.Prompter { return env.prompter }

	return env
}

// run executes the CLI with the project config and returns stdout, stderr and the exit code
func (e *testEnv) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	rootCmd := newRootCmd()
	rootCmd.SetArgs(append([]string{"--config", e.config, "--no-color"}, args...))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	var stdin io.Reader = strings.NewReader("")
	if e.stdin != nil {
		stdin = e.stdin
	}
	rootCmd.SetIn(stdin)

	code := 0
	if err := rootCmd.Execute(); err != nil {
		code = exitCode(err, &stderr)
	}

	return stdout.String(), stderr.String(), code
}

func (e *testEnv) path(rel string) string {
	return filepath.Join(e.dir, filepath.FromSlash(rel))
}
