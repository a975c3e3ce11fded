package config

import (
	"os"

	"github.com/DziubanMaciej/CheckMate/pkg/server"
	"github.com/urfave/cli/v2"
)

// ServerVersion is printed by -v/--version.
const ServerVersion = "checkmate-server 1.0.0"

// ServerUsage is the one-line hint printed alongside a CLI error.
const ServerUsage = "Usage: checkmate-server [options]. Run with -h for details."

// serverUsageText is rendered by serverApp as part of its -h/--help output;
// as on the client side, actual token consumption is hand-rolled with the
// tokens.go cursor and serverApp is only asked to render help/version text.
const serverUsageText = `Options:
  -p <u16>             port to listen on (default 10005)
  -e <bool>             log every status report, not only transitions (default false)
  --metrics-port <u16>  serve Prometheus metrics on this port (default 0, disabled)
  -h, --help            print this help and exit
  -v, --version         print version and exit`

var serverApp = &cli.App{
	Name:      "checkmate-server",
	Usage:     "aggregate status reports from many local checks",
	UsageText: serverUsageText,
	Version:   ServerVersion,
	Writer:    os.Stdout,
}

// ParseServerArgs parses a server command line. handled is false when -h or
// -v was given: the caller should print nothing further and exit 0, the
// help/version text having already gone to stdout.
func ParseServerArgs(args []string) (cfg server.Config, handled bool, err error) {
	cfg = server.Config{Port: 10005}

	t := newTokens(args)
	for {
		tok, ok := t.next()
		if !ok {
			return cfg, true, nil
		}

		switch tok {
		case "-h", "--help":
			serverApp.Run([]string{serverApp.Name, "--help"})
			return server.Config{}, false, nil
		case "-v", "--version":
			serverApp.Run([]string{serverApp.Name, "--version"})
			return server.Config{}, false, nil
		case "-p":
			if cfg.Port, err = t.fetchUint16("port", "-p"); err != nil {
				return server.Config{}, false, err
			}
		case "-e":
			if cfg.LogEveryStatus, err = t.fetchBool("log-every-status", "-e"); err != nil {
				return server.Config{}, false, err
			}
		case "--metrics-port":
			if cfg.MetricsPort, err = t.fetchUint16("metrics port", "--metrics-port"); err != nil {
				return server.Config{}, false, err
			}
		default:
			return server.Config{}, false, errInvalidArgument(tok)
		}
	}
}
