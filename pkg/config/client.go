package config

import (
	"os"
	"time"

	"github.com/DziubanMaciej/CheckMate/pkg/client"
	"github.com/DziubanMaciej/CheckMate/pkg/watcher"
	"github.com/urfave/cli/v2"
)

// ClientUsage is the one-line hint printed alongside a CLI error.
const ClientUsage = "Usage: checkmate-client <action> [action-args] [options]. Run with -h for details."

// clientUsageText is rendered by clientApp as part of its -h/--help output,
// same rationale as serverApp's: the positional watch grammar is parsed by
// hand in tokens.go, clientApp only renders help/version text.
const clientUsageText = `Actions: read, watch, refresh <name>, refresh_all, list, abort

Options:
  -p <u16>   server port (default 10005)
  -n <name>  register this client under <name>
  -c <ms>    connection backoff (default 500)
  -r <n>     connection attempts before giving up, 0 for unlimited (default 0)
  -i <bool>  read-only: include client names in the status report
  -w <ms>    watch-only: interval between checks (default 1000)
  -d <ms>    watch-only: initial delay before the first check
  -m <mode>  watch-only: classification mode
  -s <bool>  watch-only: run the command through a shell`

var clientApp = &cli.App{
	Name:      "checkmate-client",
	Usage:     "query or drive a checkmate-server",
	UsageText: clientUsageText,
	Version:   client.Version,
	Writer:    os.Stdout,
}

const defaultConnectionBackoff = 500 * time.Millisecond

// ParseClientArgs parses a client command line: `<action> [action-args] [options]`.
// handled is false when help or version was requested: the text has already
// been printed and the caller should exit 0 without doing anything else.
func ParseClientArgs(args []string) (cfg client.Config, handled bool, err error) {
	cfg = client.Config{
		Port:               10005,
		ConnectionBackoff:  defaultConnectionBackoff,
		ConnectionAttempts: 0,
	}

	t := newTokens(args)
	action, ok := t.next()
	if !ok {
		return client.Config{}, false, errInvalidArgument("no action specified")
	}

	switch action {
	case "help", "-h":
		clientApp.Run([]string{clientApp.Name, "--help"})
		return client.Config{}, false, nil
	case "version", "-v":
		clientApp.Run([]string{clientApp.Name, "--version"})
		return client.Config{}, false, nil
	case "read":
		cfg.Action = client.Action{Kind: client.ActionReadStatuses}
	case "watch":
		opts, err := parseWatchCommand(t)
		if err != nil {
			return client.Config{}, false, err
		}
		cfg.Action = client.Action{Kind: client.ActionWatch, Watch: opts}
	case "refresh":
		name, err := t.fetchString("name", "refresh")
		if err != nil {
			return client.Config{}, false, err
		}
		cfg.Action = client.Action{Kind: client.ActionRefreshByName, RefreshName: name}
	case "refresh_all":
		cfg.Action = client.Action{Kind: client.ActionRefreshAll}
	case "list":
		cfg.Action = client.Action{Kind: client.ActionListClients}
	case "abort":
		cfg.Action = client.Action{Kind: client.ActionAbort}
	default:
		return client.Config{}, false, errInvalidArgument(action)
	}

	if err := parseClientOptions(t, &cfg); err != nil {
		return client.Config{}, false, err
	}
	if cfg.Action.Kind == client.ActionHelp || cfg.Action.Kind == client.ActionVersion {
		return cfg, false, nil
	}
	return cfg, true, nil
}

// parseWatchCommand consumes the watched command and its arguments, up to
// a "--" sentinel (mandatory only when CheckMate options follow) or the end
// of the command line.
func parseWatchCommand(t *tokens) (*client.WatchOptions, error) {
	command, err := t.fetch("command", "watch")
	if err != nil {
		return nil, err
	}

	var cmdArgs []string
	for {
		tok, ok := t.peek()
		if !ok {
			break
		}
		if tok == "--" {
			t.next()
			break
		}
		cmdArgs = append(cmdArgs, tok)
		t.next()
	}

	return &client.WatchOptions{
		Command:  command,
		Args:     cmdArgs,
		Shell:    false,
		Mode:     watcher.OneLineError,
		Interval: time.Second,
		Delay:    0,
	}, nil
}

func parseClientOptions(t *tokens, cfg *client.Config) error {
	isWatch := cfg.Action.Kind == client.ActionWatch
	isRead := cfg.Action.Kind == client.ActionReadStatuses

	for {
		tok, ok := t.next()
		if !ok {
			return nil
		}

		switch tok {
		case "-h", "--help":
			clientApp.Run([]string{clientApp.Name, "--help"})
			cfg.Action = client.Action{Kind: client.ActionHelp}
			return nil
		case "-v", "--version":
			clientApp.Run([]string{clientApp.Name, "--version"})
			cfg.Action = client.Action{Kind: client.ActionVersion}
			return nil
		case "-p":
			v, err := t.fetchUint16("port", "-p")
			if err != nil {
				return err
			}
			cfg.Port = v
		case "-n":
			v, err := t.fetchString("client name", "-n")
			if err != nil {
				return err
			}
			cfg.ClientName = v
		case "-c":
			v, err := t.fetchUint64("connection backoff", "-c")
			if err != nil {
				return err
			}
			cfg.ConnectionBackoff = time.Duration(v) * time.Millisecond
		case "-r":
			v, err := t.fetchUint32("connection attempts", "-r")
			if err != nil {
				return err
			}
			cfg.ConnectionAttempts = v
		case "-i":
			if !isRead {
				return errInvalidArgument(tok)
			}
			v, err := t.fetchBool("include names", "-i")
			if err != nil {
				return err
			}
			cfg.Action.IncludeNames = v
		case "-w":
			if !isWatch {
				return errInvalidArgument(tok)
			}
			v, err := t.fetchUint64("watch interval", "-w")
			if err != nil {
				return err
			}
			cfg.Action.Watch.Interval = time.Duration(v) * time.Millisecond
		case "-d":
			if !isWatch {
				return errInvalidArgument(tok)
			}
			v, err := t.fetchUint64("initial delay", "-d")
			if err != nil {
				return err
			}
			cfg.Action.Watch.Delay = time.Duration(v) * time.Millisecond
		case "-m":
			if !isWatch {
				return errInvalidArgument(tok)
			}
			v, err := t.fetch("watch mode", "-m")
			if err != nil {
				return err
			}
			mode, perr := watcher.ParseMode(v)
			if perr != nil {
				return errInvalidValue("watch mode", v)
			}
			cfg.Action.Watch.Mode = mode
		case "-s":
			if !isWatch {
				return errInvalidArgument(tok)
			}
			v, err := t.fetchBool("shell", "-s")
			if err != nil {
				return err
			}
			cfg.Action.Watch.Shell = v
		default:
			return errInvalidArgument(tok)
		}
	}
}
