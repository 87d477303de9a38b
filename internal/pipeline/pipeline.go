// Package pipeline runs one parse, render and sanitize pass per text change.
//
// A pass is synchronous and pure: the same text and policy always produce the
// same Result. Pipelines may keep a single-entry memo of the last pass, keyed
// by the exact text and policy, so repeated passes over unchanged input (a
// watcher firing twice, a policy toggled back) skip the work.
package pipeline

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mdport/internal/document"
	"git.home.luguber.info/inful/mdport/internal/export"
	"git.home.luguber.info/inful/mdport/internal/logfields"
	"git.home.luguber.info/inful/mdport/internal/markdown"
	"git.home.luguber.info/inful/mdport/internal/metrics"
	"git.home.luguber.info/inful/mdport/internal/render"
	"git.home.luguber.info/inful/mdport/internal/sanitize"
)

// Result holds every output of one pass.
type Result struct {
	// Document is the parsed tree; callers own it and may modify it.
	Document *document.Document
	// Preview is the Preview tree; callers own it and may modify it.
	Preview *html.Node
	// PreviewHTML is Preview serialized, or "" when serialization failed.
	PreviewHTML string
	// Portable is the sanitized portable HTML string.
	Portable string
	// CacheHit reports that the result came from the memo.
	CacheHit bool
}

// Pipeline processes texts. It is safe for concurrent use.
type Pipeline struct {
	parser   *markdown.Parser
	renderer *render.Renderer
	policy   *sanitize.Policy
	recorder metrics.Recorder
	logger   *slog.Logger
	memo     bool

	exporter *export.Exporter

	mu   sync.Mutex
	last *memoEntry
}

type memoEntry struct {
	text   string
	policy document.RenderPolicy
	result Result
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithParser sets the markdown parser.
func WithParser(p *markdown.Parser) Option {
	return func(pl *Pipeline) { pl.parser = p }
}

// WithRenderer sets the renderer used for both targets.
func WithRenderer(r *render.Renderer) Option {
	return func(pl *Pipeline) { pl.renderer = r }
}

// WithSanitizePolicy sets the sanitizer allowlist.
func WithSanitizePolicy(p *sanitize.Policy) Option {
	return func(pl *Pipeline) { pl.policy = p }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(pl *Pipeline) { pl.recorder = r }
}

// WithLogger sets the logger for pass diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(pl *Pipeline) { pl.logger = l }
}

// WithMemo enables or disables the single-entry memo.
func WithMemo(enabled bool) Option {
	return func(pl *Pipeline) { pl.memo = enabled }
}

// New creates a pipeline. Without options it uses the default parser,
// renderer and sanitizer policy, no metrics and no memo.
func New(options ...Option) *Pipeline {
	p := &Pipeline{recorder: metrics.NoopRecorder{}}
	for _, opt := range options {
		opt(p)
	}
	if p.parser == nil {
		p.parser = markdown.NewParser(markdown.Options{Logger: p.logger})
	}
	if p.renderer == nil {
		p.renderer = render.New(render.Options{})
	}
	if p.policy == nil {
		p.policy = sanitize.DefaultPolicy()
	}
	if p.recorder == nil {
		p.recorder = metrics.NoopRecorder{}
	}
	p.exporter = export.New(p.renderer, p.policy, p.logger)
	return p
}

// Process runs one pass over text.
func (p *Pipeline) Process(text string, policy document.RenderPolicy) Result {
	if res, ok := p.lookup(text, policy); ok {
		p.recorder.IncPassOutcome(metrics.PassCached)
		p.log().Debug("Pass served from memo",
			logfields.InputBytes(len(text)),
			logfields.CacheHit(true))
		return res
	}

	start := time.Now()
	res := Result{}
	degraded := false

	stageStart := time.Now()
	res.Document = p.parser.Parse(text)
	p.finishStage(metrics.StageParse, stageStart, metrics.ResultSuccess)

	stageStart = time.Now()
	res.Preview = p.renderer.Render(res.Document, policy, render.Preview)
	previewHTML, err := render.Serialize(res.Preview)
	if err != nil {
		degraded = true
		p.log().Error("Preview serialization failed",
			logfields.Stage(metrics.StageRender),
			logfields.Target(render.Preview.String()),
			logfields.Error(export.ErrSerializationFailure.Wrap(err)))
		p.finishStage(metrics.StageRender, stageStart, metrics.ResultFailed)
	} else {
		res.PreviewHTML = previewHTML
		p.finishStage(metrics.StageRender, stageStart, metrics.ResultSuccess)
	}

	stageStart = time.Now()
	res.Portable = p.exporter.Export(res.Document, policy)
	switch {
	case res.Portable != "":
		p.finishStage(metrics.StageExport, stageStart, metrics.ResultSuccess)
	case res.Document.IsEmpty():
		p.finishStage(metrics.StageExport, stageStart, metrics.ResultEmpty)
	default:
		degraded = true
		p.finishStage(metrics.StageExport, stageStart, metrics.ResultFailed)
	}

	p.recorder.ObserveOutputBytes(render.Preview.String(), len(res.PreviewHTML))
	p.recorder.ObserveOutputBytes(render.Portable.String(), len(res.Portable))

	elapsed := time.Since(start)
	p.recorder.ObservePassDuration(elapsed)
	switch {
	case degraded:
		p.recorder.IncPassOutcome(metrics.PassDegraded)
	case res.Document.IsEmpty():
		p.recorder.IncPassOutcome(metrics.PassEmpty)
	default:
		p.recorder.IncPassOutcome(metrics.PassRendered)
	}

	p.log().Debug("Pass complete",
		logfields.InputBytes(len(text)),
		logfields.Blocks(len(res.Document.Blocks)),
		logfields.OutputBytes(len(res.Portable)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000),
		logfields.CacheHit(false))

	p.store(text, policy, res)
	return res
}

func (p *Pipeline) finishStage(stage string, start time.Time, result metrics.ResultLabel) {
	p.recorder.ObserveStageDuration(stage, time.Since(start))
	p.recorder.IncStageResult(stage, result)
}

func (p *Pipeline) lookup(text string, policy document.RenderPolicy) (Result, bool) {
	if !p.memo {
		return Result{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil || p.last.text != text || p.last.policy != policy {
		return Result{}, false
	}
	res := p.last.result
	res.Document = document.Clone(res.Document)
	res.Preview = render.CloneTree(res.Preview)
	res.CacheHit = true
	return res, true
}

func (p *Pipeline) store(text string, policy document.RenderPolicy, res Result) {
	if !p.memo {
		return
	}
	res.Document = document.Clone(res.Document)
	res.Preview = render.CloneTree(res.Preview)
	p.mu.Lock()
	p.last = &memoEntry{text: text, policy: policy, result: res}
	p.mu.Unlock()
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return slog.Default()
}
