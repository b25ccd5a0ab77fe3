package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/stretchr/testify/assert"
)

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func TestHealth(t *testing.T) {
	h := newTestHandler()
	h.health = &MockHealthChecker{PingFunc: func(ctx context.Context) error {
		t.Fatal("liveness must not touch the store")
		return nil
	}}
	rr := httptest.NewRecorder()

	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestReady(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		wantCode int
		wantBody string
	}{
		{"store reachable", nil, http.StatusOK, "ok"},
		{"store unreachable", &errors.PersistenceError{Op: "ping", Err: assert.AnError}, http.StatusServiceUnavailable, "store unavailable"},
		{"ping timed out", context.DeadlineExceeded, http.StatusServiceUnavailable, "store unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()
			var hadDeadline bool
			h.health = &MockHealthChecker{PingFunc: func(ctx context.Context) error {
				_, hadDeadline = ctx.Deadline()
				return tt.pingErr
			}}
			rr := httptest.NewRecorder()

			h.Ready(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
			assert.True(t, hadDeadline, "ping runs under a timeout")
		})
	}
}
