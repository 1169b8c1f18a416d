package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/notesite/cmd/notesite/commands"
	"git.home.luguber.info/inful/notesite/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	global := &commands.Global{Out: os.Stdout}
	parser := kong.Parse(cli,
		kong.Name("notesite"),
		kong.Description("Check and render the DDS Notes site configuration into Hugo configuration."),
		kong.Vars{"version": version.Version},
		kong.Bind(global),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.UsageOnError(),
	)
	err := parser.Run()
	code := commands.ExitCode(err, cli.Verbose)
	stop()
	os.Exit(code)
}
