package compiler

import (
	"context"
	"log/slog"
	"os"

	"github.com/Norgate-AV/scssc/internal/asset"
	"github.com/Norgate-AV/scssc/internal/logfields"
)

// SassCompiler compiles jobs with the dart-sass command line executable
type SassCompiler struct {
	binary  string
	builder *CommandBuilder
	logger  *slog.Logger
}

// NewSassCompiler creates a compiler that runs binary
func NewSassCompiler(binary string) *SassCompiler {
	return &SassCompiler{
		binary:  binary,
		builder: NewCommandBuilder(),
		logger:  slog.Default(),
	}
}

// WithLogger sets a custom logger
func (c *SassCompiler) WithLogger(logger *slog.Logger) *SassCompiler {
	c.logger = logger
	return c
}

// WithBuilder replaces the command builder, used to stub process execution
func (c *SassCompiler) WithBuilder(builder *CommandBuilder) *SassCompiler {
	c.builder = builder
	return c
}

// Compile runs sass for job and reports the files the stylesheet depends on
func (c *SassCompiler) Compile(ctx context.Context, job asset.Job) (*Output, error) {
	if _, err := os.Stat(job.SourcePath); err != nil {
		return nil, NewFilesystemError("cannot read source %s: %v", job.SourcePath, err)
	}

	sc, err := GetCompileCommand(c.binary, job)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Running sass", logfields.Asset(job.Name), slog.String("command", sc.String()))

	css, err := c.builder.ExecuteCommand(ctx, sc)
	if err != nil {
		c.logger.Debug("Sass failed", logfields.Asset(job.Name), logfields.Error(err))
		return nil, err
	}

	deps, err := ScanDependencies(job)
	if err != nil {
		c.logger.Warn("Failed to scan dependencies", logfields.Asset(job.Name), logfields.Error(err))
		deps = nil
	}

	c.logger.Debug("Compiled", slog.String("job", describe(job)), slog.Int("dependencies", len(deps)))

	return &Output{CSS: css, Dependencies: deps}, nil
}
