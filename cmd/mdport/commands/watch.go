package commands

import (
	"context"
	"os"
	"path/filepath"
	"time"

	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
	"git.home.luguber.info/inful/mdport/internal/logfields"
	"git.home.luguber.info/inful/mdport/internal/pipeline"
	"git.home.luguber.info/inful/mdport/internal/render"
	"git.home.luguber.info/inful/mdport/internal/watch"
)

// Files written by watch mode.
const (
	PreviewFile  = "preview.html"
	PortableFile = "portable.html"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	File     string        `arg:"" help:"Markdown file to watch"`
	Out      string        `short:"o" help:"Directory receiving preview.html and portable.html (default from watch.out_dir)"`
	Debounce time.Duration `help:"Quiet period before re-rendering (default from watch.debounce)"`
}

func (w *WatchCmd) Run(g *Global) error {
	outDir := w.Out
	if outDir == "" {
		outDir = g.Config.Watch.OutDir
	}
	if outDir == "" {
		return foundationerrors.ValidationError("an output directory is required (--out or watch.out_dir)").UserAction().Build()
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", outDir).Build()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = g.Config.DebounceDuration()
	}

	r := &watchRenderer{g: g, pipeline: g.Pipeline(true), outDir: outDir}
	if err := r.pass(w.File); err != nil {
		return err
	}

	watcher, err := watch.New(w.File, debounce, func(_ context.Context, path string) {
		err := r.pass(path)
		switch {
		case err == nil:
		case foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound):
			g.Logger.Info("Watched file missing; skipping pass", logfields.Path(path))
		default:
			g.Logger.Warn("Re-render failed",
				logfields.Path(path),
				logfields.Category(string(foundationerrors.GetCategory(err))),
				logfields.Error(err))
		}
	}, g.Logger)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to watch file").
			WithContext("path", w.File).Build()
	}
	return watcher.Run(g.Context)
}

// watchRenderer runs one pass per change and writes both outputs.
type watchRenderer struct {
	g        *Global
	pipeline *pipeline.Pipeline
	outDir   string
}

func (r *watchRenderer) pass(path string) error {
	src, err := readFileOrStdin(r.g, path)
	if err != nil {
		return err
	}
	res := r.pipeline.Process(src.Text, r.g.RenderPolicy())
	if res.CacheHit {
		r.g.Logger.Debug("Content unchanged", logfields.Path(path))
		return nil
	}

	page, err := render.Standalone(res.Preview, src.Name, r.g.Config.Render.CodeStyle)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategorySerialization, "failed to build standalone page").Build()
	}
	for name, content := range map[string]string{PreviewFile: page, PortableFile: res.Portable} {
		target := filepath.Join(r.outDir, name)
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil { //nolint:gosec // output is meant to be readable
			return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write output").
				WithContext("path", target).Build()
		}
	}
	r.g.Logger.Info("Rendered", logfields.Path(path), logfields.Blocks(len(res.Document.Blocks)))
	return nil
}
