package commands

import (
	"git.home.luguber.info/inful/mdport/internal/config"
	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
	"git.home.luguber.info/inful/mdport/internal/render"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	InputFlags `embed:""`

	Target     string `short:"t" help:"Render target: preview or portable (default from render.default_target)"`
	Standalone bool   `help:"Wrap preview output in a complete HTML page with stylesheet"`
	Title      string `help:"Page title for --standalone (default: input name)"`
	Output     string `short:"o" help:"Write to this file instead of stdout"`
}

func (r *RenderCmd) Run(g *Global) error {
	target, err := r.target(g.Config)
	if err != nil {
		return err
	}
	if r.Standalone && target != render.Preview {
		return foundationerrors.ValidationError("--standalone requires the preview target").Build()
	}

	src, err := r.read(g)
	if err != nil {
		return err
	}
	res := g.Pipeline(false).Process(src.Text, g.RenderPolicy())

	out := res.Portable
	if target == render.Preview {
		out = res.PreviewHTML
		if r.Standalone {
			title := r.Title
			if title == "" {
				title = src.Name
			}
			out, err = render.Standalone(res.Preview, title, g.Config.Render.CodeStyle)
			if err != nil {
				return foundationerrors.WrapError(err, foundationerrors.CategorySerialization, "failed to build standalone page").Build()
			}
		}
	}
	return writeOutput(g, r.Output, out)
}

func (r *RenderCmd) target(cfg *config.Config) (render.Target, error) {
	raw := r.Target
	if raw == "" {
		raw = string(cfg.Render.DefaultTarget)
	}
	t, err := render.ParseTarget(raw)
	if err != nil {
		return t, foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "invalid --target").UserAction().Build()
	}
	return t, nil
}
