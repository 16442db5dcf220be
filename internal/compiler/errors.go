package compiler

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed compile
type ErrorKind string

const (
	// KindSyntax means the compiler rejected the stylesheet
	KindSyntax ErrorKind = "syntax"

	// KindFilesystem means a source could not be read or output could not be written
	KindFilesystem ErrorKind = "filesystem"

	// KindProcess means the compiler could not be started
	KindProcess ErrorKind = "process"
)

// CompileError is a failed compile attempt. It is captured in a failed result
// rather than returned past the orchestrator.
type CompileError struct {
	Kind     ErrorKind
	Message  string
	ExitCode int
}

func (e *CompileError) Error() string {
	switch e.Kind {
	case KindFilesystem:
		return "filesystem: " + e.Message
	case KindProcess:
		return "compiler: " + e.Message
	default:
		return e.Message
	}
}

// NewFilesystemError creates a filesystem-kind compile error
func NewFilesystemError(format string, args ...any) *CompileError {
	return &CompileError{Kind: KindFilesystem, Message: fmt.Sprintf(format, args...)}
}

// IsFilesystemError reports whether err is a filesystem-kind compile error
func IsFilesystemError(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce) && ce.Kind == KindFilesystem
}
