package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("fourth request should be blocked")
	}

	// Other keys are tracked independently.
	if !l.Allow("5.6.7.8") {
		t.Error("different key should be allowed")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := New(2, 50*time.Millisecond)

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("first two should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("third should be blocked")
	}

	time.Sleep(60 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("request after the window should be allowed")
	}
}

func TestLimiter_Remaining(t *testing.T) {
	l := New(3, time.Minute)

	if got := l.Remaining("k"); got != 3 {
		t.Fatalf("fresh key: got %d, want 3", got)
	}
	l.Allow("k")
	l.Allow("k")
	if got := l.Remaining("k"); got != 1 {
		t.Errorf("after two requests: got %d, want 1", got)
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)

	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("second should be blocked")
	}

	l.Reset("k")
	if !l.Allow("k") {
		t.Error("reset should clear the window")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5000"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Errorf("remote addr: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Errorf("forwarded: got %q", got)
	}
}

func TestWriteLimiter_Middleware(t *testing.T) {
	wl := NewWriteLimiterWithConfig(2, time.Minute)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := wl.Middleware(next)

	do := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest("POST", "/requests", nil)
		r.RemoteAddr = "10.1.1.1:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec
	}

	if rec := do(); rec.Code != http.StatusNoContent {
		t.Fatalf("first write: got %d", rec.Code)
	}
	if rec := do(); rec.Code != http.StatusNoContent {
		t.Fatalf("second write: got %d", rec.Code)
	}

	rec := do()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third write: got %d, want 429", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}
