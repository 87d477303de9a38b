package commands

import (
	"strings"

	"git.home.luguber.info/inful/mdport/internal/codeview"
	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	InputFlags `embed:""`

	Highlight bool   `help:"Show the exported HTML as syntax-highlighted source"`
	Format    string `help:"Highlight output format" default:"terminal256" enum:"terminal,terminal8,terminal16,terminal256,terminal16m,html,noop"`
	Style     string `help:"Highlight style (default from export.highlight_style)"`
	Output    string `short:"o" help:"Write to this file instead of stdout"`
}

func (e *ExportCmd) Run(g *Global) error {
	src, err := e.read(g)
	if err != nil {
		return err
	}
	portable := g.Pipeline(false).Process(src.Text, g.RenderPolicy()).Portable
	if !e.Highlight {
		return writeOutput(g, e.Output, portable)
	}

	style := e.Style
	if style == "" {
		style = g.Config.Export.HighlightStyle
	}
	var b strings.Builder
	if err := codeview.Highlight(&b, portable, e.Format, style); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "failed to highlight export").Build()
	}
	return writeOutput(g, e.Output, strings.TrimSuffix(b.String(), "\n"))
}
