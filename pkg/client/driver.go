package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/DziubanMaciej/CheckMate/pkg/runner"
	"github.com/DziubanMaciej/CheckMate/pkg/transport"
	"github.com/DziubanMaciej/CheckMate/pkg/wire"
	"go.uber.org/zap"
)

// Version is printed by ActionVersion.
const Version = "checkmate 1.0.0"

// HelpText is printed by ActionHelp.
const HelpText = `checkmate-client <action> [action-args] [options]

Actions: read, watch, refresh <name>, refresh_all, list, abort
Run with -h for full flag documentation.`

// Driver runs one client invocation end to end.
type Driver struct {
	Cfg    Config
	Logger *zap.Logger
	Runner runner.Runner
	Out    io.Writer
}

// Run executes the configured action and returns the process exit code.
func (d *Driver) Run(ctx context.Context) int {
	switch d.Cfg.Action.Kind {
	case ActionHelp:
		fmt.Fprintln(d.Out, HelpText)
		return 0
	case ActionVersion:
		fmt.Fprintln(d.Out, Version)
		return 0
	}

	conn, err := d.connect(ctx, d.Cfg.ConnectionAttempts)
	if err != nil {
		return 1
	}

	for {
		tr := transport.New(conn)
		err := d.runOnConnection(ctx, tr)
		tr.Close()

		if err == nil {
			return 0
		}
		if d.Cfg.Action.Kind == ActionWatch && errors.Is(err, wire.ErrSocketDisconnected) {
			d.Logger.Warn("lost connection, reconnecting", zap.Error(err))
			conn, err = d.connect(ctx, 0)
			if err != nil {
				return 1
			}
			continue
		}
		d.Logger.Warn("action failed", zap.Error(err))
		return 1
	}
}

func (d *Driver) runOnConnection(ctx context.Context, tr *transport.Framed) error {
	if d.Cfg.ClientName != "" {
		if err := tr.Send(wire.SetName(d.Cfg.ClientName)); err != nil {
			return err
		}
		d.Logger.Sugar().Infof("Name set to %s", d.Cfg.ClientName)
	}
	return d.dispatch(ctx, tr)
}

// connect dials the server, retrying on failure with the configured
// backoff. maxAttempts == 0 means retry forever; any positive value caps
// the number of attempts before giving up.
func (d *Driver) connect(ctx context.Context, maxAttempts uint32) (net.Conn, error) {
	addr := net.JoinHostPort("localhost", strconv.Itoa(int(d.Cfg.Port)))

	var attempts uint32
	for {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			return conn, nil
		}

		attempts++
		d.Logger.Warn("connection attempt failed", zap.Error(err), zap.Uint32("attempt", attempts))
		if maxAttempts != 0 && attempts >= maxAttempts {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d.Cfg.ConnectionBackoff):
		}
	}
}
