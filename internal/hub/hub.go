// Package hub is the connection/room/presence coordinator. A single Run
// goroutine owns all mutable state (presence registry, room directory,
// history store, reaction store) and is the only code that touches it, so
// the stores need no locks. Connection pumps talk to the hub exclusively
// over channels.
package hub

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Brian-Masheti/chathub/internal/history"
	"github.com/Brian-Masheti/chathub/internal/model"
	"github.com/Brian-Masheti/chathub/internal/presence"
	"github.com/Brian-Masheti/chathub/internal/reaction"
	"github.com/Brian-Masheti/chathub/internal/room"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type sanitizer interface {
	Sanitize(s string) string
}

// Hub routes every inbound event to the right store mutation and fan-out.
type Hub struct {
	presence  *presence.Registry
	rooms     *room.Directory
	history   *history.Store
	reactions *reaction.Store
	sanitizer sanitizer

	clients    map[uuid.UUID]*Client
	Register   chan Registration
	Unregister chan *Client
	Inbound    chan Inbound
}

// New returns a hub with empty stores and the default "General" room.
func New() *Hub {
	return &Hub{
		presence:   presence.NewRegistry(),
		rooms:      room.NewDirectory(),
		history:    history.NewStore(history.RetentionWindow),
		reactions:  reaction.NewStore(),
		sanitizer:  bluemonday.StrictPolicy(),
		clients:    make(map[uuid.UUID]*Client),
		Register:   make(chan Registration),
		Unregister: make(chan *Client),
		Inbound:    make(chan Inbound, 256),
	}
}

// Run serves hub traffic until ctx is cancelled. It must be the only
// goroutine operating on the hub's state.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case reg := <-h.Register:
			client := reg.Client
			client.Hub = h
			h.clients[client.ID] = client
			// Greet the new connection with the current room list.
			h.send(client, model.EventRoomList, h.rooms.List())
			close(reg.Done)

		case client := <-h.Unregister:
			h.disconnect(client)

		case in := <-h.Inbound:
			h.dispatch(in.Client, in.Event)

		case <-ctx.Done():
			return
		}
	}
}

// disconnect tears a connection down: membership and presence are removed
// before any broadcast goes out, so no other event can observe a stale
// member set. The presence update is broadcast before user_left.
func (h *Hub) disconnect(client *Client) {
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Out)

	h.rooms.Leave(client.ID)
	name, named := h.presence.Remove(client.ID)
	if named {
		h.presence.StopTyping(name)
	}

	h.broadcast(model.EventOnlineUsers, h.presence.Snapshot())
	if named {
		h.broadcast(model.EventUserLeft, name)
	}
}

// send queues one event for a single client. Delivery is best effort: a
// client whose buffer is full loses the event rather than stalling the hub.
func (h *Hub) send(client *Client, event string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to encode %s payload: %v", event, err)
		return
	}
	select {
	case client.Out <- model.Envelope{Event: event, Data: raw}:
	default:
		log.Printf("dropping %s for slow client %s", event, client.ID)
	}
}

// broadcast fans an event out to every connection.
func (h *Hub) broadcast(event string, data any) {
	for _, client := range h.clients {
		h.send(client, event, data)
	}
}

// broadcastExcept fans an event out to every connection but one.
func (h *Hub) broadcastExcept(skip *Client, event string, data any) {
	for _, client := range h.clients {
		if client == skip {
			continue
		}
		h.send(client, event, data)
	}
}

// broadcastRoom fans an event out to the current members of a room.
func (h *Hub) broadcastRoom(name, event string, data any) {
	for _, id := range h.rooms.Members(name) {
		if client, ok := h.clients[id]; ok {
			h.send(client, event, data)
		}
	}
}
