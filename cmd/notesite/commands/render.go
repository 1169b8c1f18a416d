package commands

import (
	"context"
	"fmt"
	"io"

	"git.home.luguber.info/inful/notesite/internal/build"
	"git.home.luguber.info/inful/notesite/internal/history"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Output      string `short:"o" default:"site" help:"Hugo site directory to write into" type:"path"`
	Year        int    `help:"Copyright year (default: from SOURCE_DATE_EPOCH, else the current year)"`
	History     string `help:"Record renders in this SQLite database" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile" type:"path"`
	Force       bool   `help:"Render even when the check reports errors"`
}

func (r *RenderCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	recorder, flush := metricsSink(r.MetricsFile)
	defer flush()

	res, err := build.NewService().WithRecorder(recorder).Run(ctx, build.Request{
		ConfigPath:  root.Config,
		OutputDir:   r.Output,
		Year:        r.Year,
		HistoryPath: r.History,
		Force:       r.Force,
	})
	if res != nil {
		printRenderResult(g.Out, res)
	}
	return err
}

func printRenderResult(w io.Writer, res *build.Result) {
	if res.Check != nil && (res.Check.ErrorCount() > 0 || res.Check.WarningCount() > 0) {
		_, _ = fmt.Fprintf(w, "check: %d error(s), %d warning(s) (run 'notesite check' for details)\n",
			res.Check.ErrorCount(), res.Check.WarningCount())
	}
	if res.Output == nil {
		_, _ = fmt.Fprintf(w, "render %s\n", res.Status)
		return
	}
	for _, f := range res.Output.Files {
		_, _ = fmt.Fprintf(w, "  %-36s %6d bytes\n", f.Path, f.Size)
	}
	_, _ = fmt.Fprintf(w, "Rendered %d files to %s (year %d)\n", len(res.Output.Files), res.Output.Dir, res.Output.Year)
	_, _ = fmt.Fprintf(w, "digest: %s\n", res.Output.Digest)
	switch res.History {
	case history.StatusUnchanged:
		_, _ = fmt.Fprintln(w, "Output unchanged since the previous render")
	case history.StatusChanged:
		_, _ = fmt.Fprintln(w, "Output changed since the previous render")
	case history.StatusNondeterministic:
		_, _ = fmt.Fprintln(w, "⚠️  identical input produced different output in an earlier render")
	}
}
