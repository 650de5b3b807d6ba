package app

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

func TestNewWiresSQLiteStack(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	cfg := defaultConfig()
	cfg.DB.Driver = "sqlite"
	cfg.DB.SQLitePath = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.Auth.JWTSecretKey = "test-secret"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a, err := New(ctx, log, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/healthcheck", nil))
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("healthcheck: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/courses", nil))
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("list courses: want=200 got=%d", rec.Code)
	}
}
