package metrics

import "time"

// Stage names reported by the pipeline.
const (
	StageParse  = "parse"
	StageRender = "render"
	// StageExport covers serializing and sanitizing the portable tree.
	StageExport = "export"
)

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultEmpty   ResultLabel = "empty"
	ResultFailed  ResultLabel = "failed"
)

// PassOutcomeLabel is the final status of one pipeline pass.
type PassOutcomeLabel string

const (
	PassRendered PassOutcomeLabel = "rendered"
	PassCached   PassOutcomeLabel = "cached"
	PassEmpty    PassOutcomeLabel = "empty"
	PassDegraded PassOutcomeLabel = "degraded"
)

// Recorder defines observability hooks for pipeline passes. Implementations
// must tolerate being called from several goroutines.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObservePassDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncPassOutcome(outcome PassOutcomeLabel)
	ObserveOutputBytes(target string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObservePassDuration(time.Duration)          {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncPassOutcome(PassOutcomeLabel)            {}
func (NoopRecorder) ObserveOutputBytes(string, int)             {}
