// Command checkmate-server runs a CheckMate status-aggregation server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DziubanMaciej/CheckMate/pkg/config"
	"github.com/DziubanMaciej/CheckMate/pkg/logging"
	"github.com/DziubanMaciej/CheckMate/pkg/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, handled, err := config.ParseServerArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n%s\n", err, config.ServerUsage)
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

	s := server.New(cfg, logger)
	if err := s.Serve(ctx); err != nil {
		logger.Sugar().Errorf("server failed: %s", err)
		return 1
	}
	return 0
}
