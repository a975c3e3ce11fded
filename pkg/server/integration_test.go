package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/DziubanMaciej/CheckMate/pkg/server"
	"github.com/DziubanMaciej/CheckMate/pkg/transport"
	"github.com/DziubanMaciej/CheckMate/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// startTestServer binds on an ephemeral port and runs the accept loop in the
// background, returning a dialer for that port and a cancel func to stop it.
func startTestServer(t *testing.T, cfg server.Config) (dial func() *transport.Framed, stop func()) {
	t.Helper()
	s := server.New(cfg, zap.NewNop())

	ln, err := s.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go s.ServeListener(ctx, ln)

	addr := ln.Addr().String()
	dial = func() *transport.Framed {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		require.NoError(t, err)
		return transport.New(conn)
	}
	stop = func() {
		cancel()
		ln.Close()
	}
	return dial, stop
}

func TestEndToEndReadStatusesWithNames(t *testing.T) {
	dial, stop := startTestServer(t, server.Config{})
	defer stop()

	watcherA := dial()
	defer watcherA.Close()
	require.NoError(t, watcherA.Send(wire.SetName("Watcher1")))
	require.NoError(t, watcherA.Send(wire.SetStatusError("a")))

	watcherB := dial()
	defer watcherB.Close()
	require.NoError(t, watcherB.Send(wire.SetName("Watcher2")))
	require.NoError(t, watcherB.Send(wire.SetStatusOk()))

	// Let both watchers' frames land before the querier asks.
	time.Sleep(50 * time.Millisecond)

	querier := dial()
	defer querier.Close()
	require.NoError(t, querier.Send(wire.GetStatuses(true)))

	f, err := querier.Receive()
	require.NoError(t, err)
	assert.Equal(t, wire.TagStatuses, f.Tag)
	assert.Equal(t, []string{"Watcher1: a"}, f.Names)
}

func TestEndToEndListClientsIncludesSelf(t *testing.T) {
	dial, stop := startTestServer(t, server.Config{})
	defer stop()

	watcherA := dial()
	defer watcherA.Close()
	require.NoError(t, watcherA.Send(wire.SetName("Watcher1")))

	time.Sleep(50 * time.Millisecond)

	querier := dial()
	defer querier.Close()
	require.NoError(t, querier.Send(wire.SetName("Querier")))
	require.NoError(t, querier.Send(wire.ListClients()))

	f, err := querier.Receive()
	require.NoError(t, err)
	assert.Equal(t, wire.TagClients, f.Tag)
	assert.ElementsMatch(t, []string{"Querier", "Watcher1"}, f.Names)
}

func TestEndToEndRefreshByNameTargetsOnlyNamedWatcher(t *testing.T) {
	dial, stop := startTestServer(t, server.Config{})
	defer stop()

	watcher1 := dial()
	defer watcher1.Close()
	require.NoError(t, watcher1.Send(wire.SetName("Watcher1")))

	watcher2 := dial()
	defer watcher2.Close()
	require.NoError(t, watcher2.Send(wire.SetName("Watcher2")))

	time.Sleep(50 * time.Millisecond)

	requester := dial()
	defer requester.Close()
	require.NoError(t, requester.Send(wire.RefreshClientByName("Watcher2")))

	frameCh := make(chan wire.Frame, 1)
	errCh := make(chan error, 1)
	go func() {
		f, err := watcher2.Receive()
		if err != nil {
			errCh <- err
			return
		}
		frameCh <- f
	}()

	select {
	case f := <-frameCh:
		assert.Equal(t, wire.TagRefresh, f.Tag)
	case err := <-errCh:
		t.Fatalf("watcher2 receive failed: %v", err)
	case <-time.After(time.Second):
		t.Fatal("watcher2 never received Refresh")
	}

	// watcher1 was not named in the RefreshByName request and must not
	// receive anything within the same window.
	idleCh := make(chan struct{})
	go func() {
		watcher1.Receive()
		close(idleCh)
	}()
	select {
	case <-idleCh:
		t.Fatal("watcher1 should not have received anything")
	case <-time.After(150 * time.Millisecond):
	}
}
