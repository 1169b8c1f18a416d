package commands

import (
	"git.home.luguber.info/inful/notesite/internal/build"
	"git.home.luguber.info/inful/notesite/internal/check"
	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Format      string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile" type:"path"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	formatter, err := check.NewFormatter(c.Format)
	if err != nil {
		return err
	}
	recorder, flush := metricsSink(c.MetricsFile)
	defer flush()

	_, res, err := build.Check(root.Config, recorder)
	if err != nil {
		return err
	}
	if err := formatter.Format(g.Out, res, root.Config); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to write check report").Build()
	}
	if res.HasErrors() {
		return errors.ValidationError("site configuration check failed").
			WithContext("errors", res.ErrorCount()).
			Build()
	}
	return nil
}
