package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "scssc"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	registry        *prom.Registry
	compileDuration *prom.HistogramVec
	compileResults  *prom.CounterVec
	outputSize      *prom.GaugeVec
	cacheHits       *prom.CounterVec
	runOutcome      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the compile metrics on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.compileDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Duration of individual asset compilations",
			Buckets:   prom.DefBuckets,
		}, []string{"asset", "result"})
		pr.compileResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "compile_results_total",
			Help:      "Compile attempts by asset and outcome",
		}, []string{"asset", "result"})
		pr.outputSize = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "output_size_bytes",
			Help:      "Size of the last compiled stylesheet",
		}, []string{"asset"})
		pr.cacheHits = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Requests served from a cached result without compiling",
		}, []string{"asset"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Bulk compile runs by final status",
		}, []string{"result"})
		reg.MustRegister(pr.compileDuration, pr.compileResults, pr.outputSize, pr.cacheHits, pr.runOutcome)
	})

	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveCompileDuration(asset string, d time.Duration, result ResultLabel) {
	if p == nil || p.compileDuration == nil {
		return
	}
	p.compileDuration.WithLabelValues(asset, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCompileResult(asset string, result ResultLabel) {
	if p == nil || p.compileResults == nil {
		return
	}
	p.compileResults.WithLabelValues(asset, string(result)).Inc()
}

func (p *PrometheusRecorder) SetOutputSize(asset string, bytes int64) {
	if p == nil || p.outputSize == nil {
		return
	}
	p.outputSize.WithLabelValues(asset).Set(float64(bytes))
}

func (p *PrometheusRecorder) IncCacheHit(asset string) {
	if p == nil || p.cacheHits == nil {
		return
	}
	p.cacheHits.WithLabelValues(asset).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(result ResultLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(result)).Inc()
}

// WriteTextfile writes the gathered metrics in the node_exporter textfile
// format, creating the parent directory if needed.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}

	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}

	return nil
}
