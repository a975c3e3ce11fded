// Package clientstate holds the per-connection mutable state a server
// connection handler owns: the client's name, its latest status, and its
// bounded outbound frame queue.
package clientstate

import (
	"fmt"

	"github.com/DziubanMaciej/CheckMate/pkg/wire"
	"go.uber.org/zap"
)

// UnknownName is used for logging and for ListClients when a client never
// sent a SetName frame.
const UnknownName = "<Unknown>"

// Status is a client's latest pass/fail summary. The zero value is Ok.
type Status struct {
	IsError bool
	Message string
}

// Ok reports whether the status represents a passing check.
func (s Status) Ok() bool { return !s.IsError }

func ok() Status                   { return Status{} }
func errorStatus(msg string) Status { return Status{IsError: true, Message: msg} }

// ReactionKind describes the coordination step a handler must perform after
// State.Apply mutates state for an inbound frame.
type ReactionKind int

const (
	ReactionNone ReactionKind = iota
	ReactionNeedStatuses
	ReactionNeedRefreshByName
	ReactionNeedRefreshAll
	ReactionNeedClientList
	ReactionShutdownServer
)

// Reaction is the declarative instruction returned by State.Apply.
type Reaction struct {
	Kind         ReactionKind
	IncludeNames bool   // valid when Kind == ReactionNeedStatuses
	Name         string // valid when Kind == ReactionNeedRefreshByName
}

// DefaultOutboundCapacity is the recommended bound for a connection's
// outbound frame queue (spec §5).
const DefaultOutboundCapacity = 2

// State is the mutable, connection-owned state behind one ClientState.
// It is not safe for concurrent use; only the owning connection handler
// touches it.
type State struct {
	name            *string
	status          Status
	logEveryStatus  bool
	logger          *zap.Logger
	outbound        chan wire.Frame
}

// New creates connection state. logEveryStatus mirrors the server's -e
// flag; logger is used to emit the exact log lines spec.md's end-to-end
// scenarios assert on.
func New(logEveryStatus bool, logger *zap.Logger) *State {
	return &State{
		status:         ok(),
		logEveryStatus: logEveryStatus,
		logger:         logger,
		outbound:       make(chan wire.Frame, DefaultOutboundCapacity),
	}
}

// NameForLogging returns the client's set name, or UnknownName if SetName
// was never received.
func (s *State) NameForLogging() string {
	if s.name == nil {
		return UnknownName
	}
	return *s.name
}

// Status returns the client's latest status.
func (s *State) Status() Status { return s.status }

// Apply mutates state for an inbound client->server frame and returns the
// reaction the handler must perform. Frames that are only ever sent
// server->client (Statuses, Clients, Refresh) are a protocol error here.
func (s *State) Apply(f wire.Frame) (Reaction, error) {
	switch f.Tag {
	case wire.TagAbort:
		s.logger.Info("Received abort command")
		return Reaction{Kind: ReactionShutdownServer}, nil
	case wire.TagSetStatusOk:
		wasError := s.status.IsError
		s.status = ok()
		if wasError || s.logEveryStatus {
			s.logger.Sugar().Infof("Client %s is ok", s.NameForLogging())
		}
		return Reaction{}, nil
	case wire.TagSetStatusError:
		isNewError := !s.status.IsError || s.status.Message != f.Message
		s.status = errorStatus(f.Message)
		if isNewError || s.logEveryStatus {
			s.logger.Sugar().Infof("Client %s has error: %s", s.NameForLogging(), f.Message)
		}
		return Reaction{}, nil
	case wire.TagGetStatuses:
		return Reaction{Kind: ReactionNeedStatuses, IncludeNames: f.IncludeNames}, nil
	case wire.TagRefreshClientByName:
		return Reaction{Kind: ReactionNeedRefreshByName, Name: f.Message}, nil
	case wire.TagRefreshAllClients:
		return Reaction{Kind: ReactionNeedRefreshAll}, nil
	case wire.TagSetName:
		s.name = &f.Message
		s.logger.Sugar().Infof("Name set to %s", f.Message)
		return Reaction{}, nil
	case wire.TagListClients:
		return Reaction{Kind: ReactionNeedClientList}, nil
	case wire.TagStatuses, wire.TagClients, wire.TagRefresh:
		return Reaction{}, fmt.Errorf("%w: tag %v is server->client only", wire.ErrUnexpectedFrame, f.Tag)
	default:
		return Reaction{}, fmt.Errorf("%w: tag %v", wire.ErrUnknownTag, f.Tag)
	}
}

// EnqueueOutbound pushes a frame onto the outbound queue, blocking (thereby
// applying backpressure to whoever is enqueueing, e.g. a peer delivering a
// Refresh) when the queue is full.
func (s *State) EnqueueOutbound(f wire.Frame) {
	s.outbound <- f
}

// TakeOutbound returns the channel the handler's event loop selects on to
// drain outbound frames in enqueue order.
func (s *State) TakeOutbound() <-chan wire.Frame {
	return s.outbound
}
