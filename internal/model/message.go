package model

import "time"

// Message is a single chat message, addressed either to a room or to one
// recipient. The hub stamps Sender and Timestamp before fan-out; clients
// may not forge them.
type Message struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient,omitempty"`
	Room      string    `json:"room,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	File      string    `json:"file,omitempty"`
}

// PrivateMessage is the inbound shape of a private_message event.
type PrivateMessage struct {
	To        string    `json:"to"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	File      string    `json:"file,omitempty"`
}

// Reaction is the inbound shape of react_message and the outbound shape of
// message_reaction. Inbound, either Room is set (room form) or IsPrivate
// and To are set (private form). Outbound, Room carries the reaction key:
// the room name, or the recipient's display name for private reactions.
type Reaction struct {
	Room       string `json:"room,omitempty"`
	To         string `json:"to,omitempty"`
	IsPrivate  bool   `json:"isPrivate,omitempty"`
	MessageIdx int    `json:"messageIdx"`
	Reaction   string `json:"reaction"`
	User       string `json:"user,omitempty"`
}
