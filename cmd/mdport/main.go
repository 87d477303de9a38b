package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdport/cmd/mdport/commands"
	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli, commands.Options()...)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, err := commands.Execute(ctx, cli, kctx, commands.StdStreams())
	if err != nil {
		cancel()
		foundationerrors.NewCLIErrorAdapter(cli.Verbose, g.Logger).HandleError(err)
	}
}
