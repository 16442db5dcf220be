package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Norgate-AV/scssc/internal/compiler"
	"github.com/Norgate-AV/scssc/internal/config"
	"github.com/Norgate-AV/scssc/internal/logfields"
	"github.com/Norgate-AV/scssc/internal/manifest"
	"github.com/Norgate-AV/scssc/internal/metrics"
	"github.com/Norgate-AV/scssc/internal/prompt"
	"github.com/Norgate-AV/scssc/internal/scss"
	"github.com/Norgate-AV/scssc/internal/ui"
)

// newCompiler creates the compiler adapter; replaced in tests
var newCompiler = func(cfg *config.Config, logger *slog.Logger) compiler.Compiler {
	return compiler.NewSassCompiler(cfg.SassBinary).WithLogger(logger)
}

// stdinIsTerminal reports whether questions can be asked; replaced in tests
var stdinIsTerminal = inputIsTerminal

// inputIsTerminal is true only for a real terminal, never for pipes or /dev/null
func inputIsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)

	return ok && prompt.IsTerminal(f)
}

// newPrompter picks the Bubble Tea picker on a terminal and plain lines otherwise
var newPrompter = func(cmd *cobra.Command, styles ui.Styles) prompt.Prompter {
	if f, ok := cmd.OutOrStdout().(*os.File); ok && prompt.IsTerminal(f) {
		return prompt.NewTeaPrompter(cmd.InOrStdin(), f, styles)
	}

	return prompt.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout(), styles)
}

type appOptions struct {
	// metrics enables the Prometheus recorder
	metrics bool
}

// app is the per-command wiring of config, parser and manifest
type app struct {
	cfg      *config.Config
	parser   *scss.Parser
	manifest *manifest.Manifest
	recorder *metrics.PrometheusRecorder
	logger   *slog.Logger
	styles   ui.Styles
	out      io.Writer
}

func setupApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	viper.Reset()

	cfg, err := config.NewLoader().LoadForCompile(cmd)
	if err != nil {
		return nil, err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")

	a := &app{
		cfg:    cfg,
		logger: newLogger(cmd.ErrOrStderr(), cfg.Verbose),
		styles: ui.NewStyles(!noColor),
		out:    cmd.OutOrStdout(),
	}

	parserOpts := []scss.Option{
		scss.WithLogger(a.logger),
		scss.WithCompiler(newCompiler(cfg, a.logger)),
	}

	if !cfg.NoCache {
		m, err := manifest.Open(cfg.ManifestDir())
		if err != nil {
			a.logger.Warn("Build manifest unavailable", logfields.Path(cfg.ManifestDir()), logfields.Error(err))
		} else {
			a.manifest = m
			parserOpts = append(parserOpts, scss.WithManifest(m))
		}
	}

	if opts.metrics {
		a.recorder = metrics.NewPrometheusRecorder(nil)
		parserOpts = append(parserOpts, scss.WithRecorder(a.recorder))
	}

	a.parser, err = scss.New(cfg, parserOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) Close() {
	if a.manifest != nil {
		if err := a.manifest.Close(); err != nil {
			a.logger.Warn("Failed to close build manifest", logfields.Error(err))
		}
	}
}

// newLogger writes structured logs to w; errors only unless verbose
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
