package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dmatoso/checkpix-backend/pkg/auth"
	"github.com/dmatoso/checkpix-backend/pkg/auth/session"
	"github.com/dmatoso/checkpix-backend/pkg/config"
)

func guardedHandler(secret string) http.Handler {
	guard := RouteGuard(config.AdminConfig{Token: secret}, nil)
	return guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func withSessionCookies(req *http.Request, sessionToken, routingToken string) *http.Request {
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: session.SessionCookie, Value: sessionToken})
	}
	if routingToken != "" {
		req.AddCookie(&http.Cookie{Name: session.RoutingCookie, Value: routingToken})
	}
	return req
}

func TestRouteGuardPassesNonPanelPaths(t *testing.T) {
	handler := guardedHandler("super-secret")

	for _, path := range []string{"/", "/api/verify-code", "/qrcodes/qrcode_1.png", "/painel", "/admin/login"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("path %s: expected pass-through, got %d", path, rec.Code)
		}
	}
}

func TestRouteGuardUnconfiguredSecretRedirectsEverything(t *testing.T) {
	handler := guardedHandler("")
	routing := auth.GenerateSecureToken("super-secret")

	for _, path := range []string{"/painel/admin", "/" + routing + "/painel/admin/records"} {
		req := withSessionCookies(httptest.NewRequest(http.MethodGet, path, nil), "sess", routing)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusTemporaryRedirect {
			t.Fatalf("path %s: expected redirect, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/admin/login" {
			t.Fatalf("path %s: expected login redirect, got %q", path, loc)
		}
	}
}

func TestRouteGuardBarePanelAlwaysRedirectsToLogin(t *testing.T) {
	handler := guardedHandler("super-secret")
	routing := auth.GenerateSecureToken("super-secret")

	// Valid cookies do not help: the token segment is mandatory.
	req := withSessionCookies(httptest.NewRequest(http.MethodGet, "/painel/admin/records", nil), "sess", routing)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected login redirect, got %q", loc)
	}
}

func TestRouteGuardMissingCookiesRedirectsWithCallback(t *testing.T) {
	handler := guardedHandler("super-secret")
	routing := auth.GenerateSecureToken("super-secret")
	path := "/" + routing + "/painel/admin/records"

	cases := []struct {
		name           string
		session, route string
	}{
		{"no cookies", "", ""},
		{"session only", "sess", ""},
		{"routing only", "", routing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := withSessionCookies(httptest.NewRequest(http.MethodGet, path, nil), tc.session, tc.route)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusTemporaryRedirect {
				t.Fatalf("expected redirect, got %d", rec.Code)
			}
			loc, err := url.Parse(rec.Header().Get("Location"))
			if err != nil {
				t.Fatalf("parse location: %v", err)
			}
			if loc.Path != "/admin/login" {
				t.Fatalf("expected login redirect, got %q", loc.Path)
			}
			if cb := loc.Query().Get("callbackUrl"); cb != path {
				t.Fatalf("callbackUrl = %q, want %q", cb, path)
			}
		})
	}
}

func TestRouteGuardTokenMismatchLooksLikeNotFound(t *testing.T) {
	handler := guardedHandler("super-secret")
	wrong := auth.GenerateSecureToken("some-other-secret")

	req := withSessionCookies(
		httptest.NewRequest(http.MethodGet, "/"+wrong+"/painel/admin", nil),
		"sess",
		auth.GenerateSecureToken("super-secret"),
	)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/404" {
		t.Fatalf("expected not-found redirect, got %q", loc)
	}
}

func TestRouteGuardMatchingTokenPasses(t *testing.T) {
	handler := guardedHandler("super-secret")
	routing := auth.GenerateSecureToken("super-secret")

	req := withSessionCookies(
		httptest.NewRequest(http.MethodGet, "/"+routing+"/painel/admin/records", nil),
		"sess",
		routing,
	)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}
