// Command checkmate-client connects to a checkmate-server and runs a single
// action: reading aggregated statuses, watching a command, refreshing peers,
// listing connected clients, or aborting the server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DziubanMaciej/CheckMate/pkg/client"
	"github.com/DziubanMaciej/CheckMate/pkg/config"
	"github.com/DziubanMaciej/CheckMate/pkg/logging"
	"github.com/DziubanMaciej/CheckMate/pkg/runner"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, handled, err := config.ParseClientArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n%s\n", err, config.ClientUsage)
		return 1
	}
	if !handled {
		return 0
	}

	logger, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: failed to initialize logger: %s\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := &client.Driver{
		Cfg:    cfg,
		Logger: logger,
		Runner: runner.Exec{},
		Out:    os.Stdout,
	}
	return d.Run(ctx)
}
