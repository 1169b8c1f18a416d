package commands

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
	"git.home.luguber.info/inful/notesite/internal/project"
	"git.home.luguber.info/inful/notesite/internal/render"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Year    int    `help:"Copyright year (default: from SOURCE_DATE_EPOCH, else the current year)"`
	Against string `help:"Also compare with the files previously rendered into this directory" type:"path"`
}

func (v *VerifyCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	year, err := render.ResolveYear(v.Year)
	if err != nil {
		return err
	}
	proj, err := project.Load(root.Config)
	if err != nil {
		return err
	}

	res, err := render.VerifyDeterminism(ctx, proj.RenderInput(), year)
	if err != nil {
		return err
	}
	if !res.Identical {
		for _, p := range res.Differing {
			_, _ = fmt.Fprintf(g.Out, "  differs: %s\n", p)
		}
		return errors.RenderError("render is not deterministic").
			WithContext("files", res.Differing).
			Build()
	}
	_, _ = fmt.Fprintf(g.Out, "✨ Deterministic: %d files, digest %s\n", res.Files, res.Digest)

	if v.Against == "" {
		return nil
	}
	want, err := render.Generate(proj.RenderInput(), year)
	if err != nil {
		return err
	}
	got, err := render.ReadOutput(v.Against)
	if err != nil {
		return err
	}
	stale := staleFiles(want, got)
	if len(stale) > 0 {
		for _, p := range stale {
			_, _ = fmt.Fprintf(g.Out, "  stale: %s\n", p)
		}
		return errors.ValidationError("rendered output is out of date").
			WithContext("dir", v.Against).
			WithContext("files", stale).
			Build()
	}
	_, _ = fmt.Fprintf(g.Out, "Output in %s is up to date (digest %s)\n", v.Against, render.Digest(got))
	return nil
}

func staleFiles(want, got map[string][]byte) []string {
	var out []string
	for p, data := range want {
		if !bytes.Equal(got[p], data) {
			out = append(out, p)
		}
	}
	for p := range got {
		if _, ok := want[p]; !ok {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
