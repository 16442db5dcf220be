package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/scssc/internal/asset"
)

// Compiler turns a job's source into CSS. Implementations must not write to
// the job's destination.
type Compiler interface {
	Compile(ctx context.Context, job asset.Job) (*Output, error)
}

// Output is the result of a successful compile
type Output struct {
	CSS []byte

	// Dependencies are the files the stylesheet loaded, excluding the entry file
	Dependencies []string
}

// ShellCommand is a fully resolved compiler invocation
type ShellCommand struct {
	Path  string
	Args  []string
	Stdin []byte
}

// String renders the command line for verbose output
func (c *ShellCommand) String() string {
	return c.Path + " " + strings.Join(c.Args, " ")
}

// GetCompileCommand builds the sass invocation for job. When variables are
// configured the source is fed through stdin with the declarations prepended.
func GetCompileCommand(binary string, job asset.Job) (*ShellCommand, error) {
	indented := strings.EqualFold(filepath.Ext(job.SourcePath), ".sass")

	var cmdArgs []string
	cmdArgs = append(cmdArgs, "--style="+string(job.Style))
	cmdArgs = append(cmdArgs, "--load-path="+filepath.Dir(job.SourcePath))

	for _, path := range job.ImportPaths {
		if path != "" {
			cmdArgs = append(cmdArgs, "--load-path="+path)
		}
	}

	if job.SourceMap {
		cmdArgs = append(cmdArgs, "--source-map", "--embed-source-map")
	} else {
		cmdArgs = append(cmdArgs, "--no-source-map")
	}

	cmdArgs = append(cmdArgs, "--no-error-css")

	if len(job.Variables) == 0 {
		cmdArgs = append(cmdArgs, job.SourcePath)

		return &ShellCommand{Path: binary, Args: cmdArgs}, nil
	}

	source, err := os.ReadFile(job.SourcePath)
	if err != nil {
		return nil, NewFilesystemError("cannot read source %s: %v", job.SourcePath, err)
	}

	if indented {
		cmdArgs = append(cmdArgs, "--indented")
	}
	cmdArgs = append(cmdArgs, "--stdin")

	return &ShellCommand{
		Path:  binary,
		Args:  cmdArgs,
		Stdin: append(variablePrelude(job, indented), source...),
	}, nil
}

// variablePrelude renders one declaration per variable, sorted by name
func variablePrelude(job asset.Job, indented bool) []byte {
	var b strings.Builder

	for _, name := range job.VariableNames() {
		b.WriteString("$")
		b.WriteString(strings.TrimPrefix(name, "$"))
		b.WriteString(": ")
		b.WriteString(job.Variables[name])

		if !indented {
			b.WriteString(";")
		}

		b.WriteString("\n")
	}

	return []byte(b.String())
}

// describe formats a job for log and error messages
func describe(job asset.Job) string {
	return fmt.Sprintf("%s (%s)", job.Name, job.SourcePath)
}
