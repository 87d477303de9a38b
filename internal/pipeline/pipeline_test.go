package pipeline

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdport/internal/document"
	"git.home.luguber.info/inful/mdport/internal/metrics"
	"git.home.luguber.info/inful/mdport/internal/render"
)

type testRecorder struct {
	mu             sync.Mutex
	stageDurations map[string]int
	stageResults   map[string]map[metrics.ResultLabel]int
	passDurations  int
	passOutcomes   map[metrics.PassOutcomeLabel]int
	outputs        map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		stageResults:   map[string]map[metrics.ResultLabel]int{},
		passOutcomes:   map[metrics.PassOutcomeLabel]int{},
		outputs:        map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stageDurations[stage]++
}

func (t *testRecorder) ObservePassDuration(time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.passDurations++
}

func (t *testRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[metrics.ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}

func (t *testRecorder) IncPassOutcome(outcome metrics.PassOutcomeLabel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.passOutcomes[outcome]++
}

func (t *testRecorder) ObserveOutputBytes(target string, _ int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outputs[target]++
}

func TestProcess_ProducesAllOutputs(t *testing.T) {
	rec := newTestRecorder()
	p := New(WithRecorder(rec))

	res := p.Process("# Hello :wink:\n\n- a\n- b\n\n::youtube[Clip]{#abc}", document.DefaultRenderPolicy(true))

	require.NotNil(t, res.Document)
	assert.Len(t, res.Document.Blocks, 3)
	require.NotNil(t, res.Preview)
	assert.Contains(t, res.PreviewHTML, `class="md-heading md-heading-xl"`)
	assert.Contains(t, res.PreviewHTML, `class="md-embed"`)
	assert.Contains(t, res.Portable, "<h1>Hello \U0001F609</h1>")
	assert.Contains(t, res.Portable, `<ul style="list-style: none; margin-left: 0">`)
	assert.Contains(t, res.Portable, "<iframe")
	assert.False(t, res.CacheHit)

	assert.Equal(t, 1, rec.stageDurations[metrics.StageParse])
	assert.Equal(t, 1, rec.stageDurations[metrics.StageRender])
	assert.Equal(t, 1, rec.stageDurations[metrics.StageExport])
	assert.Equal(t, 1, rec.stageResults[metrics.StageExport][metrics.ResultSuccess])
	assert.Equal(t, 1, rec.passDurations)
	assert.Equal(t, 1, rec.passOutcomes[metrics.PassRendered])
	assert.Equal(t, 1, rec.outputs["portable"])
}

func TestProcess_Empty(t *testing.T) {
	rec := newTestRecorder()
	res := New(WithRecorder(rec)).Process("", document.DefaultRenderPolicy(true))

	assert.True(t, res.Document.IsEmpty())
	assert.Equal(t, "", res.PreviewHTML)
	assert.Equal(t, "", res.Portable)
	assert.Equal(t, 1, rec.passOutcomes[metrics.PassEmpty])
	assert.Equal(t, 1, rec.stageResults[metrics.StageExport][metrics.ResultEmpty])
}

func TestProcess_Deterministic(t *testing.T) {
	p := New()
	src := "| a | b |\n|---|:-:|\n| `x` | **y** |\n\n```go\nfunc f() {}\n```"
	first := p.Process(src, document.DefaultRenderPolicy(false))
	second := p.Process(src, document.DefaultRenderPolicy(false))

	assert.Equal(t, first.PreviewHTML, second.PreviewHTML)
	assert.Equal(t, first.Portable, second.Portable)
	assert.NotSame(t, first.Document, second.Document, "without memo every pass rebuilds the document")
}

func TestProcess_Memo(t *testing.T) {
	rec := newTestRecorder()
	p := New(WithMemo(true), WithRecorder(rec))
	policy := document.DefaultRenderPolicy(true)

	first := p.Process("*hi*", policy)
	second := p.Process("*hi*", policy)

	assert.False(t, first.CacheHit)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Portable, second.Portable)
	assert.Equal(t, first.PreviewHTML, second.PreviewHTML)
	assert.NotSame(t, first.Preview, second.Preview, "memo hits hand out a copy of the tree")
	assert.Equal(t, 1, rec.passOutcomes[metrics.PassCached])

	assert.NotSame(t, first.Document, second.Document, "memo hits hand out a copy of the document")
	assert.Equal(t, first.Document, second.Document)

	// Mutating returned trees must not leak into later hits.
	first.Preview.RemoveChild(first.Preview.FirstChild)
	first.Document.Blocks = nil
	second.Document.Blocks[0].(*document.Paragraph).Inlines = nil
	third := p.Process("*hi*", policy)
	out, err := render.Serialize(third.Preview)
	require.NoError(t, err)
	assert.Equal(t, first.PreviewHTML, out)
	require.Len(t, third.Document.Blocks, 1)
	assert.Len(t, third.Document.Blocks[0].(*document.Paragraph).Inlines, 1)

	changedPolicy := p.Process("*hi*", document.DefaultRenderPolicy(false))
	assert.False(t, changedPolicy.CacheHit)

	changedText := p.Process("*hi!*", document.DefaultRenderPolicy(false))
	assert.False(t, changedText.CacheHit)
}

func TestProcess_LogsPass(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	New(WithLogger(logger)).Process("text", document.DefaultRenderPolicy(true))

	assert.Contains(t, buf.String(), "Pass complete")
	assert.Contains(t, buf.String(), "blocks=1")
	assert.Contains(t, buf.String(), "cache_hit=false")
}

func TestProcess_Concurrent(t *testing.T) {
	p := New(WithMemo(true))
	want := p.Process("# same", document.DefaultRenderPolicy(true)).Portable

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := "# same"
			if i%2 == 1 {
				text = "# other"
			}
			res := p.Process(text, document.DefaultRenderPolicy(true))
			if text == "# same" {
				assert.Equal(t, want, res.Portable)
			}
		}(i)
	}
	wg.Wait()
}
