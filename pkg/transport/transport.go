// Package transport wraps a byte stream with CheckMate's frame boundary
// detection, surfacing disconnects as wire.ErrSocketDisconnected.
package transport

import (
	"errors"
	"io"

	"github.com/DziubanMaciej/CheckMate/pkg/wire"
)

const readChunkSize = 4096

// Framed reads and writes whole wire.Frame values over an underlying
// bidirectional byte stream (typically a net.Conn, or net.Pipe in tests).
type Framed struct {
	conn io.ReadWriteCloser
	buf  []byte
}

// New wraps conn in a Framed transport.
func New(conn io.ReadWriteCloser) *Framed {
	return &Framed{conn: conn}
}

// Receive reads from the underlying stream until a full frame can be
// decoded. It suspends the calling goroutine on the underlying Read.
func (t *Framed) Receive() (wire.Frame, error) {
	for {
		f, n, err := wire.Decode(t.buf)
		if err == nil {
			t.buf = t.buf[n:]
			return f, nil
		}
		if !errors.Is(err, wire.ErrTooFewBytes) {
			return wire.Frame{}, err
		}

		chunk := make([]byte, readChunkSize)
		n2, _ := t.conn.Read(chunk)
		if n2 > 0 {
			t.buf = append(t.buf, chunk[:n2]...)
			continue
		}
		return wire.Frame{}, wire.ErrSocketDisconnected
	}
}

// Send writes the full encoding of f to the underlying stream. A partial or
// failed write is reported as wire.ErrSocketDisconnected.
func (t *Framed) Send(f wire.Frame) error {
	buf := wire.Encode(f)
	for len(buf) > 0 {
		n, err := t.conn.Write(buf)
		if err != nil || n == 0 {
			return wire.ErrSocketDisconnected
		}
		buf = buf[n:]
	}
	return nil
}

// Close releases the underlying stream.
func (t *Framed) Close() error {
	return t.conn.Close()
}
