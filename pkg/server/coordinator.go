package server

import (
	"context"
	"fmt"
	"time"

	"github.com/DziubanMaciej/CheckMate/pkg/registry"
)

// collectDeadline bounds how long a handler waits for peer replies before
// answering with whatever arrived, so one dead peer can't wedge a
// ReadStatuses/ListClients request indefinitely.
const collectDeadline = 2 * time.Second

func (s *Server) collectStatuses(ctx context.Context, selfID uint64, includeNames bool) []string {
	snapshot := s.registry.Snapshot()
	replies := make(chan registry.Message, len(snapshot))
	registry.Broadcast(snapshot, selfID, registry.Message{Kind: registry.StatusRequest, ReplyTo: replies})

	ctx, cancel := context.WithTimeout(ctx, collectDeadline)
	defer cancel()
	responses := registry.Collect(ctx, replies, len(snapshot)-1)

	out := make([]string, 0, len(responses))
	for _, r := range responses {
		if r.Status.Ok() {
			continue
		}
		if includeNames {
			out = append(out, fmt.Sprintf("%s: %s", r.Name, r.Status.Message))
		} else {
			out = append(out, r.Status.Message)
		}
	}
	return out
}

func (s *Server) collectNames(ctx context.Context, selfID uint64, selfName string) []string {
	snapshot := s.registry.Snapshot()
	replies := make(chan registry.Message, len(snapshot))
	registry.Broadcast(snapshot, selfID, registry.Message{Kind: registry.ListRequest, ReplyTo: replies})

	ctx, cancel := context.WithTimeout(ctx, collectDeadline)
	defer cancel()
	responses := registry.Collect(ctx, replies, len(snapshot)-1)

	out := make([]string, 0, len(responses)+1)
	out = append(out, selfName)
	for _, r := range responses {
		out = append(out, r.Name)
	}
	return out
}

func (s *Server) refreshByName(selfID uint64, name string) {
	snapshot := s.registry.Snapshot()
	registry.Broadcast(snapshot, selfID, registry.Message{Kind: registry.RefreshByName, Name: name})
}

func (s *Server) refreshAll(selfID uint64) {
	snapshot := s.registry.Snapshot()
	registry.Broadcast(snapshot, selfID, registry.Message{Kind: registry.RefreshAll})
}
