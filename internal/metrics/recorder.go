package metrics

import "time"

// ResultLabel enumerates compile outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// LabelFor maps a compile outcome to its label.
func LabelFor(success bool) ResultLabel {
	if success {
		return ResultSuccess
	}

	return ResultFailed
}

// Recorder defines observability hooks for asset compilation. The Parser
// defaults to NoopRecorder so callers never nil-check.
type Recorder interface {
	ObserveCompileDuration(asset string, d time.Duration, result ResultLabel)
	IncCompileResult(asset string, result ResultLabel)
	SetOutputSize(asset string, bytes int64)
	IncCacheHit(asset string)
	IncRunOutcome(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not requested).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCompileDuration(string, time.Duration, ResultLabel) {}
func (NoopRecorder) IncCompileResult(string, ResultLabel)                      {}
func (NoopRecorder) SetOutputSize(string, int64)                               {}
func (NoopRecorder) IncCacheHit(string)                                        {}
func (NoopRecorder) IncRunOutcome(ResultLabel)                                 {}
