package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration(StageParse, 150*time.Microsecond)
	pr.ObservePassDuration(2 * time.Millisecond)
	pr.IncStageResult(StageRender, ResultSuccess)
	pr.IncStageResult(StageRender, ResultSuccess)
	pr.IncPassOutcome(PassRendered)
	pr.ObserveOutputBytes("portable", 1024)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				byName[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				byName[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	assert.Equal(t, 1.0, byName["mdport_stage_duration_seconds"])
	assert.Equal(t, 1.0, byName["mdport_pass_duration_seconds"])
	assert.Equal(t, 2.0, byName["mdport_stage_results_total"])
	assert.Equal(t, 1.0, byName["mdport_pass_outcomes_total"])
	assert.Equal(t, 1.0, byName["mdport_output_bytes"])
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration(StageParse, time.Millisecond)
		pr.ObservePassDuration(time.Millisecond)
		pr.IncStageResult(StageParse, ResultFailed)
		pr.IncPassOutcome(PassDegraded)
		pr.ObserveOutputBytes("preview", 1)
	})
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncPassOutcome(PassCached)

	path := filepath.Join(t.TempDir(), "mdport.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mdport_pass_outcomes_total{outcome="cached"} 1`)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveStageDuration(StageExport, time.Second)
		r.IncPassOutcome(PassEmpty)
	})
}
