package hub

import (
	"github.com/Brian-Masheti/chathub/internal/model"
	"github.com/google/uuid"
)

// Client is one live connection as the hub sees it: an opaque id plus a
// buffered outbound event channel. The transport layer drains Out and
// writes each envelope to the wire; the hub closes Out on unregister.
type Client struct {
	ID  uuid.UUID
	Hub *Hub
	Out chan model.Envelope
}

// NewClient returns a client with a fresh connection id. Ids are never
// reused across connections.
func NewClient() *Client {
	return &Client{
		ID:  uuid.New(),
		Out: make(chan model.Envelope, 64),
	}
}

// Registration pairs a client with a signal channel the hub closes once the
// client is registered and has been greeted with the room list.
type Registration struct {
	Client *Client
	Done   chan struct{}
}

// Inbound is one decoded wire event attributed to the connection that sent
// it. Each connection's read pump submits these sequentially, so per
// connection ordering is FIFO; cross-connection order is hub arrival order.
type Inbound struct {
	Client *Client
	Event  model.Envelope
}
