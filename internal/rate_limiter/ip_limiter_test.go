package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newLimiter(requests int) *IPRateLimiter {
	return NewIPRateLimiter(requests, time.Minute, CleanupOpts{
		TTL:      time.Minute,
		Interval: time.Minute,
	})
}

func TestAllowBurstThenDeny(t *testing.T) {
	rl := newLimiter(3)
	defer rl.Cancel()

	ip := ipAddr("10.0.0.1")
	for i := 0; i < 3; i++ {
		if !rl.Allow(ip) {
			t.Fatalf("request %d within burst should be allowed", i)
		}
	}
	if rl.Allow(ip) {
		t.Error("request beyond burst should be denied")
	}

	// A different IP carries its own bucket.
	if !rl.Allow(ipAddr("10.0.0.2")) {
		t.Error("fresh IP should be allowed")
	}
}

func TestGetClientIP(t *testing.T) {
	rl := newLimiter(1)
	defer rl.Cancel()

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       ipAddr
	}{
		{"plain_remote_addr", "192.0.2.1:5050", "", "192.0.2.1"},
		{"forwarded_for", "10.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"forwarded_chain_uses_last", "10.0.0.1:80", "198.51.100.2, 203.0.113.7", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/upload", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}

			if got := rl.GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	rl := newLimiter(1)
	defer rl.Cancel()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.RemoteAddr = "192.0.2.9:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: code = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: code = %d, want 429", rec.Code)
	}
}
