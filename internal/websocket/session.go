// Package websocket bridges one live connection to the hub: a read pump
// decoding inbound envelopes and a write pump draining the client's
// outbound queue.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"

	"github.com/Brian-Masheti/chathub/internal/hub"
	"github.com/Brian-Masheti/chathub/internal/model"
)

const (
	writeTimeout = 10 * time.Second
	pingPeriod   = 54 * time.Second
)

// Session ties a websocket connection to its hub client.
type Session struct {
	conn       *websocket.Conn
	client     *hub.Client
	messageLim *rate.Limiter
	typingLim  *rate.Limiter
}

func NewSession(conn *websocket.Conn, client *hub.Client) *Session {
	return &Session{conn: conn, client: client}
}

func (s *Session) SetMessageLimiter(requests int, window time.Duration) {
	s.messageLim = rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
}

func (s *Session) SetTypingLimiter(requests int, window time.Duration) {
	s.typingLim = rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
}

// ReadPump reads the incoming websocket stream and feeds decoded envelopes
// to the hub, one at a time, preserving the connection's send order. It
// blocks until the connection drops and then unregisters the client.
func (s *Session) ReadPump(ctx context.Context, h *hub.Hub) {
	defer func() {
		h.Unregister <- s.client
		s.conn.CloseNow()
	}()

	for {
		msgType, p, err := s.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure &&
				status != websocket.StatusGoingAway &&
				status != -1 {
				log.Printf("read error on %s: %v", s.client.ID, err)
			}
			return
		}

		if msgType != websocket.MessageText {
			continue
		}

		var env model.Envelope
		if err := json.Unmarshal(p, &env); err != nil {
			log.Printf("failed to decode payload from %s: %v", s.client.ID, err)
			continue
		}

		if !s.allow(env.Event) {
			continue
		}

		select {
		case h.Inbound <- hub.Inbound{Client: s.client, Event: env}:
		case <-ctx.Done():
			return
		}
	}
}

// allow applies per-connection rate limits; over-limit events are dropped.
func (s *Session) allow(event string) bool {
	switch event {
	case model.EventTyping, model.EventStopTyping:
		return s.typingLim == nil || s.typingLim.Allow()
	case model.EventRoomMessage, model.EventChatMessage,
		model.EventPrivateMessage, model.EventReactMessage:
		return s.messageLim == nil || s.messageLim.Allow()
	}
	return true
}

// WritePump drains the client's outbound queue onto the wire. Each write
// carries its own timeout so one stalled peer cannot hold the goroutine,
// and a periodic ping keeps intermediaries from reaping idle connections.
func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case env, ok := <-s.client.Out:
			if !ok {
				// The hub unregistered us.
				s.conn.Close(websocket.StatusNormalClosure, "server closed session")
				return
			}
			p, err := json.Marshal(env)
			if err != nil {
				log.Printf("failed to encode %s envelope: %v", env.Event, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err = s.conn.Write(writeCtx, websocket.MessageText, p)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			s.conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}
	}
}
