package registry

import "github.com/DziubanMaciej/CheckMate/pkg/clientstate"

// MessageKind identifies the shape of a PeerMessage.
type MessageKind int

const (
	// StatusRequest asks a peer to reply with its current status.
	StatusRequest MessageKind = iota
	// StatusResponse is a peer's reply to a StatusRequest.
	StatusResponse
	// RefreshByName asks every peer whose name matches Name to enqueue a
	// Refresh frame to its own client.
	RefreshByName
	// RefreshAll asks every peer to enqueue a Refresh frame.
	RefreshAll
	// ListRequest asks a peer to reply with its name.
	ListRequest
	// ListResponse is a peer's reply to a ListRequest.
	ListResponse
)

// Message is the tagged union of inter-handler coordination messages
// carried through peer inboxes. A reply message is only ever sent to the
// ReplyTo handle carried in the request it answers.
type Message struct {
	Kind MessageKind

	// ReplyTo is set on StatusRequest/ListRequest: the inbox the
	// response must be delivered to.
	ReplyTo chan Message

	// Status and Name are set on StatusResponse.
	Status clientstate.Status
	Name   string

	// Name is also set (alone) on RefreshByName and ListResponse.
}
