package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/Norgate-AV/scssc/internal/codes"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// ExecFunc creates a runnable command wired to the given streams
type ExecFunc func(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) Commander

// CommandBuilder handles running compiler commands
type CommandBuilder struct {
	execCommand ExecFunc
}

// NewCommandBuilder creates a new command builder
func NewCommandBuilder() *CommandBuilder {
	return &CommandBuilder{
		execCommand: func(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) Commander {
			cmd := exec.CommandContext(ctx, name, args...)
			cmd.Stdin = stdin
			cmd.Stdout = stdout
			cmd.Stderr = stderr
			return cmd
		},
	}
}

// ExecuteCommand runs the compiler and returns what it wrote to stdout
func (cb *CommandBuilder) ExecuteCommand(ctx context.Context, sc *ShellCommand) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	var stdin io.Reader
	if sc.Stdin != nil {
		stdin = bytes.NewReader(sc.Stdin)
	}

	c := cb.execCommand(ctx, sc.Path, sc.Args, stdin, &stdout, &stderr)

	err := c.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()

			return nil, &CompileError{
				Kind:     kindForExitCode(code),
				Message:  failureMessage(code, stderr.String()),
				ExitCode: code,
			}
		}

		return nil, &CompileError{
			Kind:    KindProcess,
			Message: fmt.Sprintf("failed to run %s: %v", sc.Path, err),
		}
	}

	return stdout.Bytes(), nil
}

// failureMessage prefers the compiler's own diagnostics over the exit code description
func failureMessage(code int, stderr string) string {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		return fmt.Sprintf("%s (exit code %d)", codes.GetErrorMessage(code), code)
	}

	return msg
}

func kindForExitCode(code int) ErrorKind {
	switch code {
	case 66, 74:
		return KindFilesystem
	case 64, 70:
		return KindProcess
	default:
		return KindSyntax
	}
}
