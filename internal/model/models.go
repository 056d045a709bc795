// Package model defines the wire protocol shared by the hub and its clients.
package model

import "encoding/json"

// Event names carried in the envelope, both directions.
const (
	EventSetUsername     = "set_username"
	EventGetOnlineUsers  = "get_online_users"
	EventOnlineUsers     = "online_users"
	EventUserJoined      = "user_joined"
	EventUserLeft        = "user_left"
	EventCreateRoom      = "create_room"
	EventJoinRoom        = "join_room"
	EventJoinedRoom      = "joined_room"
	EventRoomList        = "room_list"
	EventRoomHistory     = "room_history"
	EventRoomMessage     = "room_message"
	EventChatMessage     = "chat_message"
	EventPrivateMessage  = "private_message"
	EventReactMessage    = "react_message"
	EventMessageReaction = "message_reaction"
	EventTyping          = "typing"
	EventStopTyping      = "stop_typing"
)

// Envelope frames every websocket payload as {"event": ..., "data": ...}.
// Data stays raw until the dispatcher knows which handler shape to decode.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}
