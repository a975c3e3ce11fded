package server

import (
	"context"
	"errors"
	"net"
	"os"

	"github.com/DziubanMaciej/CheckMate/pkg/clientstate"
	"github.com/DziubanMaciej/CheckMate/pkg/registry"
	"github.com/DziubanMaciej/CheckMate/pkg/transport"
	"github.com/DziubanMaciej/CheckMate/pkg/wire"
	"go.uber.org/zap"
)

// inboxCapacity bounds how many unread coordination messages a peer may
// accumulate before a broadcaster's non-blocking send starts dropping them.
const inboxCapacity = 8

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	tr := transport.New(conn)
	state := clientstate.New(s.cfg.LogEveryStatus, s.logger)

	inbox := make(chan registry.Message, inboxCapacity)
	id := s.registry.Register(inbox)
	defer s.registry.Unregister(id)

	s.metrics.connectedPeers.Inc()
	defer s.metrics.connectedPeers.Dec()

	frames := make(chan wire.Frame)
	recvErrs := make(chan error, 1)
	go func() {
		for {
			f, err := tr.Receive()
			if err != nil {
				recvErrs <- err
				return
			}
			frames <- f
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case f := <-frames:
			s.metrics.framesReceived.WithLabelValues(f.Tag.String()).Inc()
			reaction, err := state.Apply(f)
			if err != nil {
				s.logger.Warn("protocol error", zap.Error(err))
				return
			}
			if s.applyReaction(ctx, id, state, reaction) {
				s.logger.Info("Shutting down due to abort command")
				os.Exit(0)
			}

		case msg := <-inbox:
			s.handlePeerMessage(state, msg)

		case out := <-state.TakeOutbound():
			if err := tr.Send(out); err != nil {
				if !errors.Is(err, wire.ErrSocketDisconnected) {
					s.logger.Warn("transport error", zap.Error(err))
				}
				return
			}
			s.metrics.framesSent.WithLabelValues(out.Tag.String()).Inc()

		case err := <-recvErrs:
			if !errors.Is(err, wire.ErrSocketDisconnected) {
				s.logger.Warn("transport error", zap.Error(err))
			}
			return
		}
	}
}

// applyReaction performs the coordination step a Reaction requires and
// enqueues any resulting reply frame. It reports whether the connection
// requested a full server shutdown.
func (s *Server) applyReaction(ctx context.Context, id uint64, state *clientstate.State, r clientstate.Reaction) bool {
	switch r.Kind {
	case clientstate.ReactionNone:
	case clientstate.ReactionNeedStatuses:
		state.EnqueueOutbound(wire.Statuses(s.collectStatuses(ctx, id, r.IncludeNames)))
	case clientstate.ReactionNeedRefreshByName:
		s.refreshByName(id, r.Name)
	case clientstate.ReactionNeedRefreshAll:
		s.refreshAll(id)
	case clientstate.ReactionNeedClientList:
		state.EnqueueOutbound(wire.Clients(s.collectNames(ctx, id, state.NameForLogging())))
	case clientstate.ReactionShutdownServer:
		return true
	}
	return false
}

// handlePeerMessage answers a coordination request delivered by another
// handler through this connection's inbox, or applies a fire-and-forget
// refresh request to this connection's outbound queue.
func (s *Server) handlePeerMessage(state *clientstate.State, msg registry.Message) {
	switch msg.Kind {
	case registry.StatusRequest:
		msg.ReplyTo <- registry.Message{Kind: registry.StatusResponse, Status: state.Status(), Name: state.NameForLogging()}
	case registry.ListRequest:
		msg.ReplyTo <- registry.Message{Kind: registry.ListResponse, Name: state.NameForLogging()}
	case registry.RefreshByName:
		if state.NameForLogging() == msg.Name {
			state.EnqueueOutbound(wire.Refresh())
		}
	case registry.RefreshAll:
		state.EnqueueOutbound(wire.Refresh())
	}
}
