package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestActionLimiterCapsPerClient(t *testing.T) {
	l := NewActionLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("action %d refused under the cap", i)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("fourth action allowed over the cap")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("separate client blocked by another client's window")
	}
	if after := l.RetryAfter("10.0.0.1"); after <= 0 || after > 61 {
		t.Fatalf("retry-after = %d, want within the window", after)
	}
}

func TestThrottleAnswers429OverTheCap(t *testing.T) {
	l := NewActionLimiter(1, time.Minute)
	h := l.Throttle(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/spend", nil)
	req.RemoteAddr = "192.0.2.9:4242"

	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first action status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second action status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("throttled response missing Retry-After")
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rally", nil)
	req.RemoteAddr = "10.0.0.1:8080"
	if got := clientIP(req); got != "10.0.0.1" {
		t.Errorf("direct client = %q, want port stripped", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	if got := clientIP(req); got != "203.0.113.7" {
		t.Errorf("proxied client = %q, want the first forwarded hop", got)
	}
}
