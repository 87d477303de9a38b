package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdport"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	passDuration  prom.Histogram
	stageResults  *prom.CounterVec
	passOutcomes  *prom.CounterVec
	outputBytes   *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg. A
// nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	// Passes are sub-millisecond to tens of milliseconds.
	buckets := prom.ExponentialBuckets(0.0001, 4, 8)
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   buckets,
		}, []string{"stage"}),
		passDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Total duration of a pipeline pass",
			Buckets:   buckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		passOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pass_outcomes_total",
			Help:      "Pipeline passes by final status",
		}, []string{"outcome"}),
		outputBytes: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "output_bytes",
			Help:      "Size of serialized output by render target",
			Buckets:   prom.ExponentialBuckets(256, 4, 8),
		}, []string{"target"}),
	}
	reg.MustRegister(pr.stageDuration, pr.passDuration, pr.stageResults, pr.passOutcomes, pr.outputBytes)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes the registry to path in the Prometheus text format.
// The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObservePassDuration(d time.Duration) {
	if p == nil || p.passDuration == nil {
		return
	}
	p.passDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncPassOutcome(outcome PassOutcomeLabel) {
	if p == nil || p.passOutcomes == nil {
		return
	}
	p.passOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveOutputBytes(target string, n int) {
	if p == nil || p.outputBytes == nil {
		return
	}
	p.outputBytes.WithLabelValues(target).Observe(float64(n))
}
