// Package main our entry point.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/Brian-Masheti/chathub/internal/handler"
	"github.com/Brian-Masheti/chathub/internal/hub"
	ratelimiter "github.com/Brian-Masheti/chathub/internal/rate_limiter"
	"github.com/Brian-Masheti/chathub/internal/upload"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %+v", err)
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	// Comma-separated list of allowed browser origins for the websocket
	// upgrade. Empty means same-origin only.
	var origins []string
	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		for _, o := range strings.Split(clientURL, ",") {
			origins = append(origins, strings.TrimSpace(o))
		}
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	uploads, err := upload.NewStore(uploadDir)
	if err != nil {
		log.Fatalf("failed to init upload store: %v", err)
	}

	// hub.Run is our central coordinator; it owns all connection, room,
	// presence, history, and reaction state.
	h := hub.New()
	go h.Run(ctx)

	uploadLimiter := ratelimiter.NewIPRateLimiter(20, time.Minute, ratelimiter.CleanupOpts{
		TTL:      10 * time.Minute,
		Interval: time.Minute,
	})
	defer uploadLimiter.Cancel()

	r := chi.NewRouter()
	r.Get("/", handler.ServeRoot())
	r.Get("/healthz", handler.ServeHealth())
	r.Get("/ws", handler.ServeWs(h, origins))
	r.With(uploadLimiter.Middleware).Post("/upload", handler.ServeUpload(uploads))

	fs := http.FileServer(http.Dir(uploads.Dir()))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fs))

	server := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		log.Printf("Server starting at 0.0.0.0:%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutdown signal received; shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println(err)
	}

	log.Println("Server stopped")
}
