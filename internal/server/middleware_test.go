package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedHandler(l *IPRateLimiter) http.Handler {
	return l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func getFrom(h http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = ip + ":4321"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestIPRateLimiter_SweepDropsIdleClients(t *testing.T) {
	start := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	l := NewIPRateLimiter(0.001, 1)
	l.now = func() time.Time { return clock }
	h := limitedHandler(l)

	for n := range 100 {
		assert.Equal(t, http.StatusOK, getFrom(h, fmt.Sprintf("203.0.113.%d", n)))
	}
	require.Equal(t, 100, l.Len())

	clock = start.Add(5 * time.Minute)
	assert.Equal(t, http.StatusTooManyRequests, getFrom(h, "203.0.113.0"), "bucket survives while active")

	assert.Equal(t, 99, l.Sweep(start.Add(12*time.Minute), 10*time.Minute))
	assert.Equal(t, 1, l.Len())

	// A swept client starts over with a fresh bucket.
	assert.Equal(t, http.StatusOK, getFrom(h, "203.0.113.1"))
	assert.Equal(t, 2, l.Len())
}

func TestIPRateLimiter_SweepKeepsRecentClients(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1, 1)
	l.now = func() time.Time { return now }
	h := limitedHandler(l)

	getFrom(h, "198.51.100.1")
	getFrom(h, "198.51.100.2")

	assert.Zero(t, l.Sweep(now.Add(time.Minute), 10*time.Minute))
	assert.Equal(t, 2, l.Len())
}

func TestIPRateLimiter_RunStopsOnCancel(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	getFrom(limitedHandler(l), "198.51.100.9")
	require.Equal(t, 1, l.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond, time.Nanosecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
