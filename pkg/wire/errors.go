// Package wire implements CheckMate's length-prefixed binary protocol: the
// tagged-union Frame type and its Encode/Decode functions.
package wire

import "errors"

// Protocol-level decode errors. A decoder never returns a wrapped error for
// these so callers can compare with errors.Is directly.
var (
	// ErrTooFewBytes means the buffer ends before a full frame could be
	// decoded. The caller must read more bytes and retry; no bytes were
	// consumed.
	ErrTooFewBytes = errors.New("wire: too few bytes")
	// ErrInvalidStringEncoding means a declared string payload was not
	// valid UTF-8.
	ErrInvalidStringEncoding = errors.New("wire: invalid string encoding")
	// ErrInvalidBoolean means a boolean byte was outside {0, 1}.
	ErrInvalidBoolean = errors.New("wire: invalid boolean value")
	// ErrUnknownTag means the frame's leading tag byte didn't match any
	// known Tag.
	ErrUnknownTag = errors.New("wire: unknown frame tag")
	// ErrUnexpectedFrame means a frame of a type that is never valid in
	// the direction it arrived (e.g. a server->client frame received by
	// a server) was decoded successfully but is a protocol-version
	// mismatch from the reader's point of view.
	ErrUnexpectedFrame = errors.New("wire: unexpected frame")
)

// TransportError values. Only ErrSocketDisconnected is recoverable (by
// reconnect in watchers, by silent exit in server handlers).
var ErrSocketDisconnected = errors.New("wire: socket disconnected")
