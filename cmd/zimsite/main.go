package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/zimsite/cmd/zimsite/commands"
	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
	"git.home.luguber.info/inful/zimsite/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("zimsite"),
		kong.Description("Convert an unpacked ZIM export into a browsable static website."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
