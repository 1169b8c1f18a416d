package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/notesite/internal/build"
	"git.home.luguber.info/inful/notesite/internal/project"
	"git.home.luguber.info/inful/notesite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output      string        `short:"o" default:"site" help:"Hugo site directory to write into" type:"path"`
	Year        int           `help:"Copyright year (default: from SOURCE_DATE_EPOCH, else the current year)"`
	History     string        `help:"Record renders in this SQLite database" type:"path"`
	MetricsFile string        `name:"metrics-file" help:"Write Prometheus metrics to this textfile after every cycle" type:"path"`
	Debounce    time.Duration `default:"500ms" help:"Quiet period after the last change before re-rendering"`
}

func (w *WatchCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	recorder, flush := metricsSink(w.MetricsFile)
	svc := build.NewService().WithRecorder(recorder)
	req := build.Request{
		ConfigPath:  root.Config,
		OutputDir:   w.Output,
		Year:        w.Year,
		HistoryPath: w.History,
	}

	paths := func() ([]string, error) {
		proj, err := project.Load(root.Config)
		if err != nil {
			return nil, err
		}
		return proj.WatchPaths(), nil
	}
	cycle := func(ctx context.Context, n int) error {
		defer flush()
		res, err := svc.Run(ctx, req)
		if res != nil {
			_, _ = fmt.Fprintf(g.Out, "[%d] %s\n", n, res.Status)
			printRenderResult(g.Out, res)
		}
		return err
	}

	watcher, err := watch.New(paths, cycle, watch.WithDebounce(w.Debounce))
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
