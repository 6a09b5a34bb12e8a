package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmatoso/checkpix-backend/pkg/auth"
	"github.com/dmatoso/checkpix-backend/pkg/auth/session"
	"github.com/dmatoso/checkpix-backend/pkg/config"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
)

func testGate(secret string) *session.Gate {
	return session.NewGate(
		config.AdminConfig{Token: secret},
		config.AppConfig{Env: config.AppEnvDev},
	)
}

func decodeEnvelope(t *testing.T, body []byte, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
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

func TestAuthLoginSuccess(t *testing.T) {
	handler := AuthLogin(testGate("super-secret"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"super-secret"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Authenticated bool   `json:"authenticated"`
		URLToken      string `json:"urlToken"`
	}
	decodeEnvelope(t, rec.Body.Bytes(), &payload)
	if !payload.Authenticated {
		t.Fatal("expected authenticated=true")
	}
	if payload.URLToken != auth.GenerateSecureToken("super-secret") {
		t.Fatalf("unexpected url token %q", payload.URLToken)
	}

	cookies := rec.Result().Cookies()
	names := map[string]bool{}
	for _, c := range cookies {
		names[c.Name] = c.Value != ""
	}
	if !names[session.SessionCookie] || !names[session.RoutingCookie] {
		t.Fatalf("expected both cookies set, got %v", names)
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	handler := AuthLogin(testGate("super-secret"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"nope"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("unexpected code %s", code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookies on failed login")
	}
}

func TestAuthLoginUnconfiguredSecret(t *testing.T) {
	handler := AuthLogin(testGate(""), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"anything"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != string(pkgerrors.CodeConfig) {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestAuthLoginMissingPassword(t *testing.T) {
	handler := AuthLogin(testGate("super-secret"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthLogoutClearsCookies(t *testing.T) {
	handler := AuthLogout(testGate("super-secret"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cleared cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.Value != "" || c.MaxAge >= 0 {
			t.Errorf("cookie %s not cleared", c.Name)
		}
	}
}

func TestAuthCheck(t *testing.T) {
	handler := AuthCheck(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var payload struct {
		Authenticated bool `json:"authenticated"`
	}
	decodeEnvelope(t, rec.Body.Bytes(), &payload)
	if payload.Authenticated {
		t.Fatal("expected unauthenticated without cookies")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.AddCookie(&http.Cookie{Name: session.SessionCookie, Value: "s"})
	req.AddCookie(&http.Cookie{Name: session.RoutingCookie, Value: "r"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	decodeEnvelope(t, rec.Body.Bytes(), &payload)
	if !payload.Authenticated {
		t.Fatal("expected authenticated with both cookies")
	}
}
