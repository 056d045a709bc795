// Load generator: connects N websocket clients, names them, joins them to a
// room, and has each send messages at a fixed interval while draining
// whatever the hub fans back out.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/coder/websocket"

	"github.com/Brian-Masheti/chathub/internal/model"
)

var (
	addr     = flag.String("addr", "ws://localhost:5000/ws", "websocket endpoint")
	clients  = flag.Int("clients", 10, "number of concurrent clients")
	room     = flag.String("room", "General", "room to join")
	interval = flag.Duration("interval", time.Second, "delay between messages per client")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sent, received atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < *clients; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runClient(ctx, fmt.Sprintf("loadtest-%d", i), &sent, &received); err != nil && ctx.Err() == nil {
				log.Printf("client %d: %v", i, err)
			}
		}()
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ticker.C:
				log.Printf("sent=%d received=%d", sent.Load(), received.Load())
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	log.Printf("done: sent=%d received=%d", sent.Load(), received.Load())
}

func runClient(ctx context.Context, name string, sent, received *atomic.Int64) error {
	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.CloseNow()

	if err := emit(ctx, conn, model.EventSetUsername, name); err != nil {
		return err
	}
	if err := emit(ctx, conn, model.EventJoinRoom, *room); err != nil {
		return err
	}

	// Drain everything the hub sends so the write pump never backs up.
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
			received.Add(1)
		}
	}()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for n := 0; ; n++ {
		select {
		case <-ticker.C:
			err := emit(ctx, conn, model.EventRoomMessage, map[string]string{
				"text": fmt.Sprintf("%s message %d", name, n),
			})
			if err != nil {
				return err
			}
			sent.Add(1)
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "loadtest done")
			return nil
		}
	}
}

func emit(ctx context.Context, conn *websocket.Conn, event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	p, err := json.Marshal(model.Envelope{Event: event, Data: raw})
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, p)
}
