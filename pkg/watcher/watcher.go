// Package watcher implements the client-side watch state machine: run a
// command on a delay/interval schedule (or on demand via a Refresh frame),
// classify its result, and report a status to the server.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/DziubanMaciej/CheckMate/pkg/runner"
	"github.com/DziubanMaciej/CheckMate/pkg/transport"
	"github.com/DziubanMaciej/CheckMate/pkg/wire"
	"go.uber.org/zap"
)

// Watcher holds one watch command's configuration.
type Watcher struct {
	Command  string
	Args     []string
	Shell    bool
	Mode     Mode
	Interval time.Duration
	Delay    time.Duration
	Runner   runner.Runner
	Logger   *zap.Logger
}

// Run sleeps Delay, runs one iteration, then repeats forever on whichever
// comes first of the Interval timer or a Refresh frame arriving on conn. Any
// other inbound frame is a protocol error. Run returns when the connection
// fails, a protocol error occurs, or ctx is canceled.
func (w *Watcher) Run(ctx context.Context, conn *transport.Framed) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.Delay):
	}

	if err := w.iterate(conn); err != nil {
		return err
	}

	frames := make(chan wire.Frame)
	errs := make(chan error, 1)
	go func() {
		for {
			f, err := conn.Receive()
			if err != nil {
				errs <- err
				return
			}
			frames <- f
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.Interval):
		case f := <-frames:
			if f.Tag != wire.TagRefresh {
				return fmt.Errorf("%w: %v received during watch", wire.ErrUnexpectedFrame, f.Tag)
			}
		case err := <-errs:
			return err
		}

		if err := w.iterate(conn); err != nil {
			return err
		}
	}
}

func (w *Watcher) iterate(conn *transport.Framed) error {
	res := w.Runner.Run(context.Background(), w.Command, w.Args, w.Shell)
	status := Classify(w.Mode, res)

	var frame wire.Frame
	if status.Ok() {
		frame = wire.SetStatusOk()
	} else {
		frame = wire.SetStatusError(status.Message)
		w.Logger.Sugar().Infof("Status is now error: %s", status.Message)
	}
	return conn.Send(frame)
}
