package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Parse   ParseCmd         `cmd:"" help:"Parse a PokerStars hand history file"`
	Replay  ReplayCmd        `cmd:"" help:"Step through a hand from a hand history file"`
	Serve   ServeCmd         `cmd:"" help:"Run the upload and replay HTTP server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handreplay"),
		kong.Description("Parse PokerStars hand histories and replay them step by step"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
