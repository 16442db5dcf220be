package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/scssc/internal/codes"
)

func TestCompile_NonInteractive_All(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, code := env.run(t, "compile", "--no-interaction")

	assert.Equal(t, codes.ExitSuccess, code)
	assert.Equal(t, []string{"main", "admin"}, env.compiler.calls)
	assert.Contains(t, stdout, `Compiling "main"... OK (`)
	assert.Contains(t, stdout, "Written 2.0 KB to "+env.path("public/assets/app.css"))
	assert.Contains(t, stdout, `Compiling "admin"... OK (`)
	assert.True(t, strings.HasSuffix(stdout, "Finished SCSS compiling successfully.\n"))
	assert.FileExists(t, env.path("public/assets/app.css"))
}

func TestCompile_RootCommandCompiles(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, code := env.run(t, "-n", "main")

	assert.Equal(t, codes.ExitSuccess, code)
	assert.Equal(t, []string{"main"}, env.compiler.calls)
	assert.Contains(t, stdout, `Compiling "main"... OK`)
}

func TestCompile_Overwriting(t *testing.T) {
	env := newTestEnv(t)

	_, _, code := env.run(t, "compile", "-n", "main")
	require.Equal(t, codes.ExitSuccess, code)

	stdout, _, code := env.run(t, "compile", "-n", "main")
	assert.Equal(t, codes.ExitSuccess, code)
	assert.Contains(t, stdout, `Compiling (and overwriting!) "main"... OK`)
}

func TestCompile_WithErrors(t *testing.T) {
	env := newTestEnv(t)
	env.compiler.failing["admin"] = `Error: expected "}".`

	stdout, _, code := env.run(t, "compile", "-n")

	assert.Equal(t, codes.ExitFailure, code)
	assert.Equal(t, []string{"main", "admin"}, env.compiler.calls, "failures do not stop the run")
	assert.Contains(t, stdout, `Compiling "main"... OK`)
	assert.Contains(t, stdout, `Compiling "admin"... ERROR`)
	assert.Contains(t, stdout, `Error during compiling "admin"`)
	assert.Contains(t, stdout, `Error: expected "}".`)
	assert.Contains(t, stdout, "Finished SCSS compiling with errors!")
}

func TestCompile_NonInteractive_RejectsNumber(t *testing.T) {
	env := newTestEnv(t)

	stdout, stderr, code := env.run(t, "compile", "-n", "5")

	assert.Equal(t, codes.ExitFailure, code)
	assert.Empty(t, env.compiler.calls)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "instead of its number in list")
	assert.Contains(t, stderr, "-> main\n-> admin")
}

func TestCompile_NonInteractive_UnknownAsset(t *testing.T) {
	env := newTestEnv(t)

	_, stderr, code := env.run(t, "compile", "-n", "print")

	assert.Equal(t, codes.ExitFailure, code)
	assert.Contains(t, stderr, `Asset "print" is not configured.`)
}

func TestCompile_NoTerminalIsNonInteractive(t *testing.T) {
	env := newTestEnv(t)

	_, _, code := env.run(t, "compile", "1")

	assert.Equal(t, codes.ExitFailure, code)
	assert.Empty(t, env.prompter.asked)
}

func TestCompile_DevNullStdinIsNonInteractive(t *testing.T) {
	env := newTestEnv(t)
	stdinIsTerminal = inputIsTerminal

	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer devNull.Close()
	env.stdin = devNull

	for _, args := range [][]string{{"compile"}, {"compile", "all"}} {
		env.compiler.calls = nil

		stdout, _, code := env.run(t, args...)

		assert.Equal(t, codes.ExitSuccess, code, args)
		assert.Equal(t, []string{"main", "admin"}, env.compiler.calls, args)
		assert.NotContains(t, stdout, "Aborted.", args)
		assert.Empty(t, env.prompter.asked, args)
	}
}

func TestInputIsTerminal(t *testing.T) {
	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer devNull.Close()

	assert.False(t, inputIsTerminal(devNull))
	assert.False(t, inputIsTerminal(strings.NewReader("main\n")))
}

func TestCompile_Interactive_Confirmed(t *testing.T) {
	env := newTestEnv(t)
	env.terminal = true

	_, _, code := env.run(t, "compile", "2")

	assert.Equal(t, codes.ExitSuccess, code)
	assert.Equal(t, []string{`Do you want to compile "admin"?`}, env.prompter.asked)
	assert.Equal(t, []string{"admin"}, env.compiler.calls)
}

func TestCompile_Interactive_Selection(t *testing.T) {
	env := newTestEnv(t)
	env.terminal = true
	env.prompter.choice = "main"

	_, _, code := env.run(t, "compile")

	assert.Equal(t, codes.ExitSuccess, code)
	require.Len(t, env.prompter.asked, 1)
	assert.Contains(t, env.prompter.asked[0], "Which one do you want to compile?")
	assert.Equal(t, []string{"main"}, env.compiler.calls)
}

func TestCompile_Interactive_Aborted(t *testing.T) {
	env := newTestEnv(t)
	env.terminal = true
	env.prompter.confirm = false

	stdout, stderr, code := env.run(t, "compile", "all")

	assert.Equal(t, codes.ExitAborted, code)
	assert.Equal(t, "Aborted.\n", stdout)
	assert.Empty(t, stderr)
	assert.Empty(t, env.compiler.calls)
}

func TestCompile_MetricsFile(t *testing.T) {
	env := newTestEnv(t)
	metricsPath := filepath.Join(t.TempDir(), "scssc.prom")

	_, _, code := env.run(t, "compile", "-n", "--metrics-file", metricsPath)
	require.Equal(t, codes.ExitSuccess, code)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `scssc_compile_results_total{asset="main",result="success"} 1`)
	assert.Contains(t, string(data), `scssc_run_outcomes_total{result="success"} 1`)
}

func TestCompile_MissingConfig(t *testing.T) {
	env := newTestEnv(t)
	env.config = filepath.Join(t.TempDir(), "missing.yml")

	_, stderr, code := env.run(t, "compile", "-n")

	assert.Equal(t, codes.ExitFailure, code)
	assert.Contains(t, stderr, "Error:")
}

func TestCompile_RecordsManifest(t *testing.T) {
	env := newTestEnv(t)

	_, _, code := env.run(t, "compile", "-n")
	require.Equal(t, codes.ExitSuccess, code)
	assert.FileExists(t, env.path(".scssc-cache/manifest.db"))
}

func TestCompile_NoCache(t *testing.T) {
	env := newTestEnv(t)

	_, _, code := env.run(t, "compile", "-n", "--no-cache")
	require.Equal(t, codes.ExitSuccess, code)
	assert.NoDirExists(t, env.path(".scssc-cache"))
}
