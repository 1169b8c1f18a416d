// Package commands implements the notesite CLI commands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/metrics"
)

// LogLevelEnv overrides the log level when -v is not given.
const LogLevelEnv = "NOTESITE_LOG_LEVEL"

// Global is shared state bound into every command's Run method.
type Global struct {
	Out    io.Writer
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Site configuration file" default:"notesite.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write the default DDS Notes configuration, sidebars and starter docs"`
	Check    CheckCmd    `cmd:"" help:"Check the site configuration against its docs and sidebars"`
	Render   RenderCmd   `cmd:"" help:"Render Hugo configuration, head partial and data files"`
	Verify   VerifyCmd   `cmd:"" help:"Verify that rendering is deterministic"`
	Watch    WatchCmd    `cmd:"" help:"Re-check and re-render on every change"`
	Sidebars SidebarsCmd `cmd:"" help:"List sidebars with their first doc route"`
	History  HistoryCmd  `cmd:"" help:"List recorded renders"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	} else if raw := strings.TrimSpace(os.Getenv(LogLevelEnv)); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return errors.ConfigError("invalid log level").
				WithContext("env", LogLevelEnv).
				WithContext("value", raw).
				Build()
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	g.Logger = logger
	if g.Out == nil {
		g.Out = os.Stdout
	}
	return nil
}

// ExitCode reports err through the CLI error adapter and returns the process exit code.
func ExitCode(err error, verbose bool) int {
	if err == nil {
		return 0
	}
	return errors.NewCLIErrorAdapter(verbose, slog.Default()).HandleError(err)
}

// metricsSink creates a Prometheus recorder when path is set and returns a
// flush function that writes the textfile. Both are no-ops without a path.
func metricsSink(path string) (metrics.Recorder, func()) {
	if path == "" {
		return metrics.NoopRecorder{}, func() {}
	}
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	return rec, func() {
		if err := metrics.WriteTextfile(reg, path); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(err))
			return
		}
		slog.Debug("Wrote metrics textfile", logfields.Path(path))
	}
}
