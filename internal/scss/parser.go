// Package scss orchestrates on-demand and bulk compilation of the configured
// SCSS assets and resolves their public URLs.
package scss

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/Norgate-AV/scssc/internal/asset"
	"github.com/Norgate-AV/scssc/internal/compiler"
	"github.com/Norgate-AV/scssc/internal/config"
	"github.com/Norgate-AV/scssc/internal/logfields"
	"github.com/Norgate-AV/scssc/internal/manifest"
	"github.com/Norgate-AV/scssc/internal/metrics"
)

// RecordWriter persists completed attempts, typically a *manifest.Manifest
type RecordWriter interface {
	Put(rec manifest.Record) error
}

// Configuration is the effective, read-only configuration of a Parser
type Configuration struct {
	Enabled    bool
	AutoUpdate bool
	ProjectDir string
	Assets     []asset.Definition
}

// Option configures a Parser
type Option func(*Parser)

// WithCompiler replaces the sass executable adapter
func WithCompiler(c compiler.Compiler) Option {
	return func(p *Parser) { p.compiler = c }
}

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithRecorder sets the metrics recorder
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Parser) { p.recorder = r }
}

// WithManifest mirrors every completed attempt into w
func WithManifest(w RecordWriter) Option {
	return func(p *Parser) { p.records = w }
}

// WithClock sets the time source used for attempt timestamps and durations
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// Parser owns the asset registry and the result cache and decides when an
// asset needs compiling.
type Parser struct {
	enabled    bool
	autoUpdate bool
	projectDir string

	registry  *asset.Registry
	cache     *ResultCache
	staleness StalenessChecker

	compiler compiler.Compiler
	logger   *slog.Logger
	recorder metrics.Recorder
	records  RecordWriter
	now      func() time.Time
}

// New validates cfg and creates a Parser for its assets
func New(cfg *config.Config, opts ...Option) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry, err := asset.RegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		enabled:    cfg.Enabled,
		autoUpdate: cfg.AutoUpdate,
		projectDir: cfg.ProjectDir,
		registry:   registry,
		cache:      NewResultCache(),
		logger:     slog.Default(),
		recorder:   metrics.NoopRecorder{},
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.compiler == nil {
		p.compiler = compiler.NewSassCompiler(cfg.SassBinary).WithLogger(p.logger)
	}

	return p, nil
}

// Configuration returns the effective configuration
func (p *Parser) Configuration() Configuration {
	return Configuration{
		Enabled:    p.enabled,
		AutoUpdate: p.autoUpdate,
		ProjectDir: p.projectDir,
		Assets:     p.registry.Definitions(),
	}
}

// Names returns the asset names in declaration order
func (p *Parser) Names() []string {
	return p.registry.Names()
}

// IsEnabled reports whether on-demand compilation is switched on
func (p *Parser) IsEnabled() bool {
	return p.enabled
}

// IsConfigured reports whether path is a declared asset name or source path
func (p *Parser) IsConfigured(path string) bool {
	_, ok := p.registry.Lookup(path)
	return ok
}

// MakeJob derives the compile job for an asset name or source path
func (p *Parser) MakeJob(name string) (asset.Job, error) {
	def, ok := p.registry.Lookup(name)
	if !ok {
		return asset.Job{}, &UnknownAssetError{Name: name}
	}

	return asset.NewJob(p.projectDir, def), nil
}

// Parse compiles the asset if it is stale, never compiled in this process, or
// force is set, and returns its current Result. Compile failures are reported
// through the Result; the error is only set for unknown assets. When the
// parser is disabled and force is false nothing happens and Parse returns nil.
func (p *Parser) Parse(ctx context.Context, name string, force bool) (*Result, error) {
	job, err := p.MakeJob(name)
	if err != nil {
		return nil, err
	}

	if !p.enabled && !force {
		return nil, nil
	}

	unlock := p.cache.Lock(job.Name)
	defer unlock()

	if !force {
		if cached, ok := p.cache.Get(job.Name); ok && p.reusable(cached) {
			p.recorder.IncCacheHit(job.Name)
			p.logger.Debug("Using cached SCSS result", logfields.Asset(job.Name))

			return cached, nil
		}
	}

	return p.compile(ctx, job, force), nil
}

// Result returns the most recent result for an asset name or source path
func (p *Parser) Result(name string) (*Result, bool) {
	def, ok := p.registry.Lookup(name)
	if !ok {
		return nil, false
	}

	return p.cache.Get(def.Name)
}

// ResolveURL returns the public URL of a configured asset, compiling it first
// when needed. Paths that are not configured, and every path while the parser
// is disabled, are returned unchanged.
func (p *Parser) ResolveURL(ctx context.Context, path string) string {
	if !p.enabled || !p.IsConfigured(path) {
		return path
	}

	result, err := p.Parse(ctx, path, false)
	if err != nil || result == nil {
		return path
	}

	job := result.Job()
	if !result.Successful() {
		p.logger.Warn("Serving URL of a failed SCSS asset",
			logfields.Asset(job.Name),
			slog.String(logfields.KeyError, result.ErrorMessage()))
	}

	url := "/" + job.PublicPath
	if job.AppendTimestamp {
		if info, err := os.Stat(job.DestinationPath); err == nil {
			url += "?t=" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
		}
	}

	return url
}

// CompileAll force-compiles every asset in declaration order. It never stops
// at a failure; failed reports whether any attempt was unsuccessful.
func (p *Parser) CompileAll(ctx context.Context) (results []*Result, failed bool) {
	for _, name := range p.registry.Names() {
		result, err := p.Parse(ctx, name, true)
		if err != nil || result == nil {
			failed = true
			continue
		}

		if !result.Successful() {
			failed = true
		}

		results = append(results, result)
	}

	p.recorder.IncRunOutcome(metrics.LabelFor(!failed))

	return results, failed
}

// reusable decides whether a cached result still answers a non-forced request
func (p *Parser) reusable(cached *Result) bool {
	if !p.autoUpdate {
		return true
	}

	job := cached.Job()

	if !cached.Successful() {
		changed, err := p.staleness.ChangedSince(job, cached.Dependencies(), cached.CompiledAt())
		if err != nil {
			p.logger.Warn("Staleness check failed", logfields.Asset(job.Name), logfields.Error(err))
			return false
		}

		return !changed
	}

	stale, err := p.staleness.IsStale(job, cached.Dependencies())
	if err != nil {
		p.logger.Warn("Staleness check failed", logfields.Asset(job.Name), logfields.Error(err))
		return false
	}

	return !stale
}

// compile runs one attempt, writes the output and caches the Result.
// Callers hold the asset lock.
func (p *Parser) compile(ctx context.Context, job asset.Job, force bool) *Result {
	start := p.now()

	p.logger.Debug("Compiling SCSS asset",
		logfields.Asset(job.Name),
		logfields.Source(job.SourcePath),
		logfields.Force(force))

	var result *Result

	out, err := p.compiler.Compile(ctx, job)
	if err == nil {
		var size int64
		size, err = writeAtomic(job.DestinationPath, out.CSS)
		if err != nil {
			err = compiler.NewFilesystemError("%v", err)
		} else {
			result = newSuccess(job, start, p.now().Sub(start), size, out.Dependencies)
		}
	}

	if err != nil {
		result = newFailure(job, start, p.now().Sub(start), err.Error(), p.failureDependencies(job, err))
	}

	p.cache.Set(job.Name, result)
	p.observe(result)

	return result
}

// failureDependencies lists what the source loads so that a fix in a partial
// makes a cached failure retryable
func (p *Parser) failureDependencies(job asset.Job, err error) []string {
	if compiler.IsFilesystemError(err) {
		return nil
	}

	deps, scanErr := compiler.ScanDependencies(job)
	if scanErr != nil && !errors.Is(scanErr, os.ErrNotExist) {
		p.logger.Debug("Failed to scan dependencies", logfields.Asset(job.Name), logfields.Error(scanErr))
	}

	return deps
}

func (p *Parser) observe(result *Result) {
	job := result.Job()
	label := metrics.LabelFor(result.Successful())

	p.recorder.ObserveCompileDuration(job.Name, result.Duration(), label)
	p.recorder.IncCompileResult(job.Name, label)

	if result.Successful() {
		p.recorder.SetOutputSize(job.Name, result.CompiledSize())
		p.logger.Info("Compiled SCSS asset",
			logfields.Asset(job.Name),
			logfields.Path(job.DestinationPath),
			logfields.SizeBytes(result.CompiledSize()),
			logfields.Duration(result.Duration()))
	} else {
		p.logger.Warn("SCSS compile failed",
			logfields.Asset(job.Name),
			logfields.Duration(result.Duration()),
			slog.String(logfields.KeyError, result.ErrorMessage()))
	}

	if p.records == nil {
		return
	}

	rec := manifest.Record{
		Asset:        job.Name,
		Fingerprint:  job.Fingerprint(),
		Source:       job.SourcePath,
		Destination:  job.DestinationPath,
		Dependencies: result.Dependencies(),
		Success:      result.Successful(),
		DurationMS:   result.Duration().Milliseconds(),
		Size:         result.CompiledSize(),
		Error:        result.ErrorMessage(),
		CompiledAt:   result.CompiledAt(),
	}

	if err := p.records.Put(rec); err != nil {
		p.logger.Warn("Failed to update build manifest", logfields.Asset(job.Name), logfields.Error(err))
	}
}
