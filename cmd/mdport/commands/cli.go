// Package commands implements the mdport command line.
package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdport/internal/config"
	"git.home.luguber.info/inful/mdport/internal/document"
	"git.home.luguber.info/inful/mdport/internal/drafts"
	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
	"git.home.luguber.info/inful/mdport/internal/logfields"
	"git.home.luguber.info/inful/mdport/internal/markdown"
	"git.home.luguber.info/inful/mdport/internal/metrics"
	"git.home.luguber.info/inful/mdport/internal/pipeline"
	"git.home.luguber.info/inful/mdport/internal/render"
	"git.home.luguber.info/inful/mdport/internal/version"
)

// CLI definition and global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (default: ./mdport.yaml when present)"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	ShowBullets bool             `name:"show-bullets" xor:"bullets" help:"Render list markers (overrides render.suppress_list_markers)"`
	NoBullets   bool             `name:"no-bullets" xor:"bullets" help:"Suppress list markers (overrides render.suppress_list_markers)"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this textfile on exit (overrides metrics.textfile)"`

	Render RenderCmd `cmd:"" help:"Render Markdown to the preview or portable HTML target"`
	Export ExportCmd `cmd:"" help:"Export sanitized portable HTML, optionally syntax-highlighted"`
	Watch  WatchCmd  `cmd:"" help:"Re-render a file on every change"`
	Draft  DraftCmd  `cmd:"" help:"Manage saved drafts"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
}

// Options returns the kong options shared by main and tests.
func Options(extra ...kong.Option) []kong.Option {
	return append([]kong.Option{
		kong.Name("mdport"),
		kong.Description("Convert extended Markdown into a styled preview and portable HTML."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	}, extra...)
}

// AfterApply runs after flag parsing and installs a provisional logger until
// the configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// Streams are the standard streams commands read from and write to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Global is the state shared by all commands.
type Global struct {
	Context  context.Context
	Logger   *slog.Logger
	Config   *config.Config
	Recorder *metrics.PrometheusRecorder
	Streams  Streams

	cli    *CLI
	drafts drafts.Store
}

// Execute loads configuration, runs the selected command and flushes metrics.
// The returned Global is never nil.
func Execute(ctx context.Context, cli *CLI, kctx *kong.Context, streams Streams) (*Global, error) {
	g := &Global{
		Context:  ctx,
		Logger:   slog.Default(),
		Config:   config.Default(),
		Recorder: metrics.NewPrometheusRecorder(nil),
		Streams:  streams,
		cli:      cli,
	}

	if !strings.HasPrefix(kctx.Command(), "init") {
		cfg, err := config.LoadOrDefault(cli.Config)
		if err != nil {
			return g, err
		}
		g.Config = cfg
	}
	g.Logger = newLogger(g.Config.Logging, cli.Verbose, streams.Err)
	slog.SetDefault(g.Logger)

	runErr := kctx.Run(g)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if err := g.close(); err != nil && runErr == nil {
		runErr = err
	}
	return g, runErr
}

func newLogger(cfg config.LoggingConfig, verbose bool, w io.Writer) *slog.Logger {
	level := cfg.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// RenderPolicy resolves the list marker flags against the configuration.
func (g *Global) RenderPolicy() document.RenderPolicy {
	suppress := g.Config.Render.SuppressMarkers()
	switch {
	case g.cli.ShowBullets:
		suppress = false
	case g.cli.NoBullets:
		suppress = true
	}
	return document.DefaultRenderPolicy(suppress)
}

// Renderer builds a renderer for the configured embed provider.
func (g *Global) Renderer() *render.Renderer {
	return render.New(render.Options{Embed: render.EmbedProvider{
		PlayerURL:    g.Config.Embed.PlayerURL,
		ThumbnailURL: g.Config.Embed.ThumbnailURL,
	}})
}

// Pipeline builds a pipeline from the configuration. memo forces the memo on.
func (g *Global) Pipeline(memo bool) *pipeline.Pipeline {
	parser := markdown.NewParser(markdown.Options{
		EmbedName:    g.Config.Embed.Directive,
		DisableEmoji: g.Config.Render.DisableEmoji,
		Logger:       g.Logger,
	})
	return pipeline.New(
		pipeline.WithParser(parser),
		pipeline.WithRenderer(g.Renderer()),
		pipeline.WithRecorder(g.Recorder),
		pipeline.WithLogger(g.Logger),
		pipeline.WithMemo(memo || g.Config.Render.Memo),
	)
}

func (g *Global) metricsFile() string {
	if g.cli.MetricsFile != "" {
		return g.cli.MetricsFile
	}
	return g.Config.Metrics.Textfile
}

func (g *Global) close() error {
	var errs []error
	if g.drafts != nil {
		if err := g.drafts.Close(); err != nil {
			errs = append(errs, err)
		}
		g.drafts = nil
	}
	if path := g.metricsFile(); path != "" {
		if err := g.Recorder.WriteTextfile(path); err != nil {
			errs = append(errs, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write metrics textfile").
				WithContext("path", path).Build())
		} else {
			g.Logger.Debug("Metrics written", logfields.Path(path))
		}
	}
	return errors.Join(errs...)
}
