package scss

import (
	"time"

	"github.com/Norgate-AV/scssc/internal/asset"
)

// Result is the immutable outcome of one compile attempt
type Result struct {
	job          asset.Job
	successful   bool
	duration     time.Duration
	compiledSize int64
	errorMessage string
	dependencies []string
	compiledAt   time.Time
}

func newSuccess(job asset.Job, compiledAt time.Time, duration time.Duration, size int64, deps []string) *Result {
	return &Result{
		job:          job.Clone(),
		successful:   true,
		duration:     duration,
		compiledSize: size,
		dependencies: deps,
		compiledAt:   compiledAt,
	}
}

func newFailure(job asset.Job, compiledAt time.Time, duration time.Duration, message string, deps []string) *Result {
	return &Result{
		job:          job.Clone(),
		duration:     duration,
		errorMessage: message,
		dependencies: deps,
		compiledAt:   compiledAt,
	}
}

// Job returns the job the attempt ran
func (r *Result) Job() asset.Job {
	return r.job.Clone()
}

func (r *Result) Successful() bool {
	return r.successful
}

// Duration is the wall time of the attempt, including the write
func (r *Result) Duration() time.Duration {
	return r.duration
}

// DurationSeconds returns the duration rounded to milliseconds, for display
func (r *Result) DurationSeconds() float64 {
	return float64(r.duration.Round(time.Millisecond)) / float64(time.Second)
}

// CompiledSize is the number of bytes written. Zero for failed attempts.
func (r *Result) CompiledSize() int64 {
	if !r.successful {
		return 0
	}

	return r.compiledSize
}

// ErrorMessage is the compiler's message. Empty for successful attempts.
func (r *Result) ErrorMessage() string {
	if r.successful {
		return ""
	}

	return r.errorMessage
}

// Dependencies returns the files the source loaded when the attempt ran
func (r *Result) Dependencies() []string {
	return append([]string(nil), r.dependencies...)
}

// CompiledAt is the time the attempt started
func (r *Result) CompiledAt() time.Time {
	return r.compiledAt
}
