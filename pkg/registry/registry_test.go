package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/DziubanMaciej/CheckMate/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsDistinctIDs(t *testing.T) {
	r := registry.New()
	id1 := r.Register(make(chan registry.Message, 1))
	id2 := r.Register(make(chan registry.Message, 1))
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, r.Count())
}

func TestUnregisterRemovesFromSnapshot(t *testing.T) {
	r := registry.New()
	id := r.Register(make(chan registry.Message, 1))
	r.Unregister(id)

	snap := r.Snapshot()
	_, ok := snap[id]
	assert.False(t, ok)
	assert.Equal(t, 0, r.Count())
}

func TestBroadcastSkipsSelfAndDoesNotBlockOnFullInbox(t *testing.T) {
	r := registry.New()
	selfID := r.Register(make(chan registry.Message)) // unbuffered, never read
	otherInbox := make(chan registry.Message, 1)
	otherID := r.Register(otherInbox)

	registry.Broadcast(r.Snapshot(), selfID, registry.Message{Kind: registry.RefreshAll})

	select {
	case msg := <-otherInbox:
		assert.Equal(t, registry.RefreshAll, msg.Kind)
	default:
		t.Fatal("expected other peer to receive the broadcast")
	}
	_ = otherID
}

func TestBroadcastDropsWhenInboxFull(t *testing.T) {
	r := registry.New()
	selfID := r.Register(make(chan registry.Message, 1))
	fullInbox := make(chan registry.Message, 1)
	fullInbox <- registry.Message{}
	r.Register(fullInbox)

	snap := r.Snapshot()
	require.NotPanics(t, func() {
		registry.Broadcast(snap, selfID, registry.Message{Kind: registry.RefreshAll})
	})
}

func TestCollectStopsAtDeadlineWithPartialResults(t *testing.T) {
	inbox := make(chan registry.Message, 1)
	inbox <- registry.Message{Kind: registry.StatusResponse, Name: "a"}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got := registry.Collect(ctx, inbox, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestCollectReturnsAllWhenEnoughArriveBeforeDeadline(t *testing.T) {
	inbox := make(chan registry.Message, 2)
	inbox <- registry.Message{Name: "a"}
	inbox <- registry.Message{Name: "b"}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got := registry.Collect(ctx, inbox, 2)
	require.Len(t, got, 2)
}
