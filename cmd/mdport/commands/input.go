package commands

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mdport/internal/drafts"
	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
	"git.home.luguber.info/inful/mdport/internal/logfields"
)

// InputFlags select where Markdown text comes from.
type InputFlags struct {
	File  string `arg:"" optional:"" help:"Markdown file to read ('-' or omitted for stdin)"`
	Draft string `name:"draft" short:"d" help:"Read input from a saved draft"`
}

// source is the text read for a command plus a display name.
type source struct {
	Name string
	Text string
}

func (in InputFlags) read(g *Global) (source, error) {
	if in.Draft != "" {
		if in.File != "" {
			return source{}, foundationerrors.ValidationError("a file and --draft cannot be combined").Build()
		}
		store, err := g.Drafts()
		if err != nil {
			return source{}, err
		}
		d, err := store.Load(g.Context, in.Draft)
		if err != nil {
			return source{}, err
		}
		return source{Name: d.Name, Text: d.Text}, nil
	}
	return readFileOrStdin(g, in.File)
}

func readFileOrStdin(g *Global, path string) (source, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(g.Streams.In)
		if err != nil {
			return source{}, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read stdin").Build()
		}
		return source{Name: "stdin", Text: string(data)}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return source{}, foundationerrors.NotFoundError("input file not found").WithContext("path", path).Build()
	}
	if err != nil {
		return source{}, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read input file").
			WithContext("path", path).Build()
	}
	return source{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), Text: string(data)}, nil
}

// Drafts opens the configured draft store on first use.
func (g *Global) Drafts() (drafts.Store, error) {
	if g.drafts != nil {
		return g.drafts, nil
	}
	path := g.Config.Drafts.Path
	if path == "" {
		g.Logger.Warn("drafts.path is not configured; drafts are kept in memory for this run only")
		g.drafts = drafts.NewMemoryStore()
		return g.drafts, nil
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to create drafts directory").
				WithContext("path", path).Build()
		}
	}
	store, err := drafts.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	g.Logger.Debug("Draft store opened", logfields.Path(path))
	g.drafts = store
	return store, nil
}

// writeOutput writes content to path, or to stdout when path is empty. A
// trailing newline is added on stdout.
func writeOutput(g *Global, path, content string) error {
	if path == "" {
		if content == "" {
			return nil
		}
		_, err := io.WriteString(g.Streams.Out, content+"\n")
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // output is meant to be readable
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write output").
			WithContext("path", path).Build()
	}
	g.Logger.Info("Output written", logfields.Path(path), logfields.OutputBytes(len(content)))
	return nil
}
