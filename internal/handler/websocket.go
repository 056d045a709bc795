package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/Brian-Masheti/chathub/internal/hub"
	ws "github.com/Brian-Masheti/chathub/internal/websocket"
)

// ServeWs upgrades the connection, registers it with the hub, and runs the
// session pumps. originPatterns restricts browser origins; empty means
// same-origin only.
func ServeWs(h *hub.Hub, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Printf("failed to upgrade connection: %v", err)
			return
		}

		c := hub.NewClient()
		reg := hub.Registration{
			Client: c,
			Done:   make(chan struct{}),
		}

		h.Register <- reg

		// Wait for registration to complete before pumping.
		<-reg.Done

		session := ws.NewSession(conn, c)
		session.SetMessageLimiter(30, time.Minute)
		session.SetTypingLimiter(60, time.Minute)

		// We block on ReadPump because the request context is cancelled as
		// soon as we return from the handler.
		go session.WritePump(ctx)
		session.ReadPump(ctx, h)
	}
}
