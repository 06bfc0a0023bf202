package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubChecker struct {
	dbErr    error
	redisErr error
}

func (s stubChecker) PingDB(_ context.Context, _ time.Duration) error    { return s.dbErr }
func (s stubChecker) PingRedis(_ context.Context, _ time.Duration) error { return s.redisErr }

func TestLive(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler{}.Live(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("live status = %d", rr.Code)
	}
}

func TestReadyOK(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler{Checker: stubChecker{}}.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("ready status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestReadyDependencyDown(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler{Checker: stubChecker{dbErr: errors.New("dial refused")}}.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "dial refused") {
		t.Fatalf("body missing failure reason: %s", rr.Body.String())
	}
}

func TestReadyNoChecker(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler{}.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready status = %d", rr.Code)
	}
}
