package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/mdport/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory for the generated mdport.yaml"`
}

func (i *InitCmd) Run(g *Global) error {
	path := g.cli.Config
	switch {
	case i.Output != "":
		path = filepath.Join(i.Output, config.DefaultPath)
	case path == "":
		path = config.DefaultPath
	}
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(g.Streams.Out, "Wrote configuration to %s\n", path)
	return err
}
