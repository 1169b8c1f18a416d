package commands

import (
	"fmt"

	"git.home.luguber.info/inful/notesite/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	_, _ = fmt.Fprintln(g.Out, "Initializing notesite project")
	written, err := config.InitProject(root.Config, i.Force)
	for _, p := range written {
		_, _ = fmt.Fprintf(g.Out, "  wrote %s\n", p)
	}
	if err != nil {
		_, _ = fmt.Fprintln(g.Out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(g.Out, "initialized successfully")
	return nil
}
