package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterPerClient(t *testing.T) {
	l := NewRateLimiter(1, 2)
	now := time.Now()

	assert.True(t, l.allow("10.0.0.1", now))
	assert.True(t, l.allow("10.0.0.1", now))
	assert.False(t, l.allow("10.0.0.1", now))
	assert.True(t, l.allow("10.0.0.2", now))

	assert.True(t, l.allow("10.0.0.1", now.Add(time.Second)))
}

func TestRateLimiterEvictsIdleClientsOncePerInterval(t *testing.T) {
	l := NewRateLimiter(1, 1)
	start := time.Now()

	assert.True(t, l.allow("10.0.0.1", start))
	assert.True(t, l.allow("10.0.0.2", start))
	assert.Len(t, l.visitors, 2)

	// Within the interval no sweep runs, even for stale-looking entries.
	assert.True(t, l.allow("10.0.0.3", start.Add(time.Minute)))
	assert.Len(t, l.visitors, 3)

	later := start.Add(l.idle + 2*time.Minute)
	assert.True(t, l.allow("10.0.0.3", later))
	assert.Len(t, l.visitors, 1)
	assert.Equal(t, later, l.lastSweep)
}

func TestRateLimiterHandler(t *testing.T) {
	h := NewRateLimiter(0.001, 1).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}
