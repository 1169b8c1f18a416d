package commands

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/notesite/internal/history"
	"git.home.luguber.info/inful/notesite/internal/logfields"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	History string `required:"" help:"Render history database" type:"path"`
	Limit   int    `short:"n" default:"10" help:"Number of renders to show (0 for all)"`
}

func (h *HistoryCmd) Run(ctx context.Context, g *Global) error {
	store, err := history.NewSQLiteStore(h.History)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			slog.Debug("close history store", logfields.Error(cerr))
		}
	}()

	records, err := store.List(ctx, h.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(g.Out, "No renders recorded")
		return nil
	}
	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tCREATED\tYEAR\tFILES\tERRORS\tWARNINGS\tOUTPUT")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			short(r.ID, 8), r.CreatedAt.UTC().Format(time.RFC3339), r.Year, r.Files, r.Errors, r.Warnings, short(r.OutputDigest, 12))
	}
	return tw.Flush()
}

func short(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
