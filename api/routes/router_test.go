package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmatoso/checkpix-backend/pkg/auth"
	"github.com/dmatoso/checkpix-backend/pkg/auth/session"
	"github.com/dmatoso/checkpix-backend/pkg/config"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
)

func testRouter(t *testing.T, secret string) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App:   config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		Admin: config.AdminConfig{Token: secret},
	}
	gate := session.NewGate(cfg.Admin, cfg.App)
	return NewRouter(cfg, nil, nil, nil, gate, nil, nil, nil, nil, nil, nil, nil)
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload.Error.Code
}

func TestRouterUnknownPathNotFound(t *testing.T) {
	router := testRouter(t, "super-secret")

	req := httptest.NewRequest(http.MethodGet, "/definitely/not/here", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestRouterHealthLive(t *testing.T) {
	router := testRouter(t, "super-secret")

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterAdminEndpointsRequireSession(t *testing.T) {
	router := testRouter(t, "super-secret")

	for _, path := range []string{"/api/records/", "/api/products/", "/api/twilio-config"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("path %s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestRouterPanelGuardWiredIn(t *testing.T) {
	router := testRouter(t, "super-secret")
	routing := auth.GenerateSecureToken("super-secret")

	// Bare panel path redirects even without cookies.
	req := httptest.NewRequest(http.MethodGet, "/painel/admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	// Correct token with both cookies reaches the panel handler.
	req = httptest.NewRequest(http.MethodGet, "/"+routing+"/painel/admin", nil)
	req.AddCookie(&http.Cookie{Name: session.SessionCookie, Value: "s"})
	req.AddCookie(&http.Cookie{Name: session.RoutingCookie, Value: routing})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from panel, got %d", rec.Code)
	}
}

func TestRouterLoginWithoutRedisUsesDefaults(t *testing.T) {
	// Production defaults enable the rate-limit policy, but with no Redis
	// client the limiter must stay disabled instead of failing every login.
	cfg := &config.Config{
		App:       config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		Admin:     config.AdminConfig{Token: "super-secret"},
		LoginRate: config.LoginRateLimitConfig{Window: time.Minute, IPLimit: 10},
	}
	gate := session.NewGate(cfg.Admin, cfg.App)
	router := NewRouter(cfg, nil, nil, nil, gate, nil, nil, nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"super-secret"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterLoginReachable(t *testing.T) {
	router := testRouter(t, "super-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Empty body fails validation, proving the handler (not a 404) answered.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
