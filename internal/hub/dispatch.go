package hub

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/Brian-Masheti/chathub/internal/model"
)

// dispatch applies the routing table: validate and enrich the event, mutate
// the relevant store, fan the result out. Malformed events are dropped
// without a reply; a connection that has not set a username yet may only
// set one or ask for the online list.
func (h *Hub) dispatch(client *Client, env model.Envelope) {
	switch env.Event {
	case model.EventSetUsername:
		h.setUsername(client, env.Data)

	case model.EventGetOnlineUsers:
		h.send(client, model.EventOnlineUsers, h.presence.Snapshot())

	case model.EventCreateRoom:
		h.createRoom(client, env.Data)

	case model.EventJoinRoom:
		h.joinRoom(client, env.Data)

	case model.EventRoomMessage:
		h.roomMessage(client, env.Data)

	case model.EventChatMessage:
		h.chatMessage(client, env.Data)

	case model.EventPrivateMessage:
		h.privateMessage(client, env.Data)

	case model.EventReactMessage:
		h.reactMessage(client, env.Data)

	case model.EventTyping, model.EventStopTyping:
		h.typing(client, env.Event)

	default:
		log.Printf("ignoring unknown event %q from %s", env.Event, client.ID)
	}
}

func (h *Hub) setUsername(client *Client, data json.RawMessage) {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return
	}
	name = strings.TrimSpace(h.sanitizer.Sanitize(name))
	if name == "" {
		return
	}

	// Duplicate names are not rejected; both connections coexist under the
	// same displayed name and the most recent claimant receives directs.
	h.presence.Set(client.ID, name)
	h.broadcast(model.EventOnlineUsers, h.presence.Snapshot())
	h.broadcast(model.EventUserJoined, name)
}

func (h *Hub) createRoom(client *Client, data json.RawMessage) {
	if _, named := h.presence.Name(client.ID); !named {
		return
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return
	}
	name = strings.TrimSpace(h.sanitizer.Sanitize(name))
	if name == "" {
		return
	}
	if created := h.rooms.EnsureExists(name); created {
		h.broadcast(model.EventRoomList, h.rooms.List())
	}
}

func (h *Hub) joinRoom(client *Client, data json.RawMessage) {
	if _, named := h.presence.Name(client.ID); !named {
		return
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return
	}
	name = strings.TrimSpace(h.sanitizer.Sanitize(name))
	if name == "" {
		return
	}

	created := h.rooms.EnsureExists(name)
	h.rooms.Join(client.ID, name)

	if created {
		h.broadcast(model.EventRoomList, h.rooms.List())
	}
	h.send(client, model.EventJoinedRoom, name)
	h.send(client, model.EventRoomHistory, h.history.Read(name))
}

func (h *Hub) roomMessage(client *Client, data json.RawMessage) {
	sender, named := h.presence.Name(client.ID)
	if !named {
		return
	}
	current, joined := h.rooms.Current(client.ID)
	if !joined {
		return
	}

	var in model.Message
	if err := json.Unmarshal(data, &in); err != nil {
		return
	}
	msg, ok := h.buildMessage(in.Text, in.File, in.Timestamp, sender)
	if !ok {
		return
	}
	msg.Room = current

	h.history.Append(current, msg)
	h.broadcastRoom(current, model.EventRoomMessage, msg)
}

// chatMessage is the global channel: no room resolution, delivered to every
// connection, never stored.
func (h *Hub) chatMessage(client *Client, data json.RawMessage) {
	var in model.Message
	if err := json.Unmarshal(data, &in); err != nil {
		return
	}
	sender, named := h.presence.Name(client.ID)
	if !named {
		sender = "Anonymous"
	}
	msg, ok := h.buildMessage(in.Text, in.File, in.Timestamp, sender)
	if !ok {
		return
	}
	h.broadcast(model.EventChatMessage, msg)
}

func (h *Hub) privateMessage(client *Client, data json.RawMessage) {
	sender, named := h.presence.Name(client.ID)
	if !named {
		return
	}

	var in model.PrivateMessage
	if err := json.Unmarshal(data, &in); err != nil {
		return
	}
	if in.To == "" {
		return
	}
	msg, ok := h.buildMessage(in.Text, in.File, in.Timestamp, sender)
	if !ok {
		return
	}
	msg.Recipient = in.To

	// Unresolvable recipients drop the message silently: no echo, no error.
	target, ok := h.resolve(in.To)
	if !ok {
		return
	}
	h.send(target, model.EventPrivateMessage, msg)
	h.send(client, model.EventPrivateMessage, msg)
}

func (h *Hub) reactMessage(client *Client, data json.RawMessage) {
	user, named := h.presence.Name(client.ID)
	if !named {
		return
	}

	var in model.Reaction
	if err := json.Unmarshal(data, &in); err != nil {
		return
	}
	if in.Reaction == "" {
		return
	}

	switch {
	case in.IsPrivate && in.To != "":
		// Both sides of a private conversation converge on the recipient's
		// name as the reaction key.
		target, ok := h.resolve(in.To)
		if !ok {
			return
		}
		if !h.reactions.Add(in.To, in.MessageIdx, in.Reaction, user) {
			return
		}
		out := model.Reaction{
			Room:       in.To,
			IsPrivate:  true,
			MessageIdx: in.MessageIdx,
			Reaction:   in.Reaction,
			User:       user,
		}
		h.send(target, model.EventMessageReaction, out)
		h.send(client, model.EventMessageReaction, out)

	case in.Room != "":
		if !h.reactions.Add(in.Room, in.MessageIdx, in.Reaction, user) {
			return
		}
		h.broadcastRoom(in.Room, model.EventMessageReaction, model.Reaction{
			Room:       in.Room,
			MessageIdx: in.MessageIdx,
			Reaction:   in.Reaction,
			User:       user,
		})
	}
}

func (h *Hub) typing(client *Client, event string) {
	name, named := h.presence.Name(client.ID)
	if !named {
		return
	}
	if event == model.EventTyping {
		h.presence.StartTyping(name)
	} else {
		h.presence.StopTyping(name)
	}
	h.broadcastExcept(client, event, name)
}

// buildMessage validates and enriches an inbound message body. A message
// with neither text nor a file reference is malformed.
func (h *Hub) buildMessage(text, file string, ts time.Time, sender string) (model.Message, bool) {
	text = h.sanitizer.Sanitize(text)
	if text == "" && file == "" {
		return model.Message{}, false
	}
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return model.Message{
		Text:      text,
		Sender:    sender,
		Timestamp: ts,
		File:      file,
	}, true
}

func (h *Hub) resolve(name string) (*Client, bool) {
	id, ok := h.presence.Resolve(name)
	if !ok {
		return nil, false
	}
	client, ok := h.clients[id]
	return client, ok
}
