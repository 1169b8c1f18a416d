package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/notesite/internal/project"
	"git.home.luguber.info/inful/notesite/internal/sidebars"
)

// SidebarsCmd implements the 'sidebars' command.
type SidebarsCmd struct{}

func (s *SidebarsCmd) Run(g *Global, root *CLI) error {
	proj, err := project.Load(root.Config)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SIDEBAR\tFIRST DOC\tDOCS\tMISSING")
	for _, id := range proj.Sidebars.IDs() {
		entries, missing, err := proj.Sidebars.Resolve(id, proj.Docs)
		if err != nil {
			return err
		}
		route := "-"
		if first, ok := sidebars.FirstDoc(entries); ok {
			route = proj.Site.Permalink(first.Route)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", id, route, countDocs(entries), len(missing))
	}
	return tw.Flush()
}

func countDocs(entries []sidebars.Entry) int {
	n := 0
	for _, e := range entries {
		if e.Type == sidebars.ItemDoc {
			n++
		}
		n += countDocs(e.Children)
	}
	return n
}
