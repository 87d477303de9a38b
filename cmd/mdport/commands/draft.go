package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/mdport/internal/logfields"
)

// DraftCmd groups the draft subcommands.
type DraftCmd struct {
	Save DraftSaveCmd `cmd:"" help:"Save a draft from a file or stdin"`
	Show DraftShowCmd `cmd:"" help:"Print a draft's text"`
	List DraftListCmd `cmd:"" help:"List saved drafts"`
	Rm   DraftRmCmd   `cmd:"" help:"Delete a draft"`
}

// DraftSaveCmd implements 'draft save'.
type DraftSaveCmd struct {
	Name string `arg:"" help:"Draft name"`
	File string `arg:"" optional:"" help:"Markdown file to read ('-' or omitted for stdin)"`
}

func (d *DraftSaveCmd) Run(g *Global) error {
	src, err := readFileOrStdin(g, d.File)
	if err != nil {
		return err
	}
	store, err := g.Drafts()
	if err != nil {
		return err
	}
	saved, err := store.Save(g.Context, d.Name, src.Text)
	if err != nil {
		return err
	}
	g.Logger.Debug("Draft saved", logfields.Draft(saved.Name), logfields.InputBytes(len(saved.Text)))
	_, err = fmt.Fprintf(g.Streams.Out, "Saved draft %s (%s)\n", saved.Name, saved.ID)
	return err
}

// DraftShowCmd implements 'draft show'.
type DraftShowCmd struct {
	Name string `arg:"" help:"Draft name"`
}

func (d *DraftShowCmd) Run(g *Global) error {
	store, err := g.Drafts()
	if err != nil {
		return err
	}
	draft, err := store.Load(g.Context, d.Name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(g.Streams.Out, draft.Text)
	return err
}

// DraftListCmd implements 'draft list'.
type DraftListCmd struct{}

func (d *DraftListCmd) Run(g *Global) error {
	store, err := g.Drafts()
	if err != nil {
		return err
	}
	list, err := store.List(g.Context)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(g.Streams.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tUPDATED\tFINGERPRINT\tID")
	for _, draft := range list {
		fp := draft.Fingerprint
		if len(fp) > 12 {
			fp = fp[:12]
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", draft.Name, draft.UpdatedAt.UTC().Format(time.RFC3339), fp, draft.ID)
	}
	return tw.Flush()
}

// DraftRmCmd implements 'draft rm'.
type DraftRmCmd struct {
	Name string `arg:"" help:"Draft name"`
}

func (d *DraftRmCmd) Run(g *Global) error {
	store, err := g.Drafts()
	if err != nil {
		return err
	}
	if err := store.Delete(g.Context, d.Name); err != nil {
		return err
	}
	g.Logger.Info("Draft deleted", logfields.Draft(d.Name))
	return nil
}
