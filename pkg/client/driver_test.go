package client_test

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/DziubanMaciej/CheckMate/pkg/client"
	"github.com/DziubanMaciej/CheckMate/pkg/transport"
	"github.com/DziubanMaciej/CheckMate/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listenLoopback(t *testing.T) (net.Listener, uint16) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln, uint16(ln.Addr().(*net.TCPAddr).Port)
}

func TestActionReadStatusesPrintsEachEntryOnItsOwnLine(t *testing.T) {
	ln, port := listenLoopback(t)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		server := transport.New(conn)
		f, err := server.Receive()
		require.NoError(t, err)
		require.Equal(t, wire.TagGetStatuses, f.Tag)
		server.Send(wire.Statuses([]string{"a", "b"}))
	}()

	var out bytes.Buffer
	d := &client.Driver{
		Cfg: client.Config{
			Port:               port,
			ConnectionBackoff:  10 * time.Millisecond,
			ConnectionAttempts: 1,
			Action:             client.Action{Kind: client.ActionReadStatuses, IncludeNames: true},
		},
		Logger: zap.NewNop(),
		Out:    &out,
	}

	code := d.Run(context.Background())
	assert.Equal(t, 0, code)
	assert.Equal(t, "a\nb\n", out.String())
}

func TestActionAbortSendsAbortFrame(t *testing.T) {
	ln, port := listenLoopback(t)
	defer ln.Close()

	received := make(chan wire.Frame, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		server := transport.New(conn)
		f, err := server.Receive()
		require.NoError(t, err)
		received <- f
	}()

	var out bytes.Buffer
	d := &client.Driver{
		Cfg: client.Config{
			Port:               port,
			ConnectionBackoff:  10 * time.Millisecond,
			ConnectionAttempts: 1,
			Action:             client.Action{Kind: client.ActionAbort},
		},
		Logger: zap.NewNop(),
		Out:    &out,
	}

	code := d.Run(context.Background())
	assert.Equal(t, 0, code)
	f := <-received
	assert.Equal(t, wire.TagAbort, f.Tag)
}

func TestConnectGivesUpAfterConfiguredAttempts(t *testing.T) {
	// Nothing listens on this port.
	ln, port := listenLoopback(t)
	ln.Close()

	var out bytes.Buffer
	d := &client.Driver{
		Cfg: client.Config{
			Port:               port,
			ConnectionBackoff:  1 * time.Millisecond,
			ConnectionAttempts: 2,
			Action:             client.Action{Kind: client.ActionAbort},
		},
		Logger: zap.NewNop(),
		Out:    &out,
	}

	code := d.Run(context.Background())
	assert.Equal(t, 1, code)
}

func TestHelpAndVersionExitZeroWithoutConnecting(t *testing.T) {
	var out bytes.Buffer
	d := &client.Driver{
		Cfg:    client.Config{Action: client.Action{Kind: client.ActionHelp}},
		Logger: zap.NewNop(),
		Out:    &out,
	}
	assert.Equal(t, 0, d.Run(context.Background()))
	assert.Contains(t, out.String(), "checkmate-client")
}
