package client

import (
	"context"
	"fmt"

	"github.com/DziubanMaciej/CheckMate/pkg/transport"
	"github.com/DziubanMaciej/CheckMate/pkg/watcher"
	"github.com/DziubanMaciej/CheckMate/pkg/wire"
)

func (d *Driver) dispatch(ctx context.Context, tr *transport.Framed) error {
	switch d.Cfg.Action.Kind {
	case ActionReadStatuses:
		return d.actionReadStatuses(tr)
	case ActionWatch:
		return d.actionWatch(ctx, tr)
	case ActionRefreshByName:
		return tr.Send(wire.RefreshClientByName(d.Cfg.Action.RefreshName))
	case ActionRefreshAll:
		return tr.Send(wire.RefreshAllClients())
	case ActionListClients:
		return d.actionListClients(tr)
	case ActionAbort:
		return tr.Send(wire.Abort())
	default:
		return fmt.Errorf("unhandled action kind %v", d.Cfg.Action.Kind)
	}
}

func (d *Driver) actionReadStatuses(tr *transport.Framed) error {
	if err := tr.Send(wire.GetStatuses(d.Cfg.Action.IncludeNames)); err != nil {
		return err
	}
	f, err := tr.Receive()
	if err != nil {
		return err
	}
	if f.Tag != wire.TagStatuses {
		return fmt.Errorf("%w: expected Statuses, got %v", wire.ErrUnexpectedFrame, f.Tag)
	}
	for _, line := range f.Names {
		fmt.Fprintln(d.Out, line)
	}
	return nil
}

func (d *Driver) actionListClients(tr *transport.Framed) error {
	if err := tr.Send(wire.ListClients()); err != nil {
		return err
	}
	f, err := tr.Receive()
	if err != nil {
		return err
	}
	if f.Tag != wire.TagClients {
		return fmt.Errorf("%w: expected Clients, got %v", wire.ErrUnexpectedFrame, f.Tag)
	}
	for _, name := range f.Names {
		fmt.Fprintln(d.Out, name)
	}
	return nil
}

func (d *Driver) actionWatch(ctx context.Context, tr *transport.Framed) error {
	opts := d.Cfg.Action.Watch
	w := &watcher.Watcher{
		Command:  opts.Command,
		Args:     opts.Args,
		Shell:    opts.Shell,
		Mode:     opts.Mode,
		Interval: opts.Interval,
		Delay:    opts.Delay,
		Runner:   d.Runner,
		Logger:   d.Logger,
	}
	return w.Run(ctx, tr)
}
