package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmatoso/checkpix-backend/pkg/auth"
	"github.com/dmatoso/checkpix-backend/pkg/config"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
)

func devGate(token string) *Gate {
	return NewGate(
		config.AdminConfig{Token: token},
		config.AppConfig{Env: config.AppEnvDev},
	)
}

func TestLoginUnconfiguredFailsClosed(t *testing.T) {
	gate := devGate("")

	_, err := gate.Login("anything")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConfig {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	gate := devGate("super-secret")

	_, err := gate.Login("not-it")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginMintsTokens(t *testing.T) {
	gate := devGate("super-secret")

	creds, err := gate.Login("super-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if creds.RoutingToken != auth.GenerateSecureToken("super-secret") {
		t.Fatalf("routing token must derive from the secret, got %q", creds.RoutingToken)
	}
	if creds.SessionToken == "" || creds.SessionToken == creds.RoutingToken {
		t.Fatalf("session token must be independent, got %q", creds.SessionToken)
	}

	again, err := gate.Login("super-secret")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if again.SessionToken == creds.SessionToken {
		t.Fatal("session tokens must differ per login")
	}
	if again.RoutingToken != creds.RoutingToken {
		t.Fatal("routing token must be stable across logins")
	}
}

func TestIssueCookiesAttributes(t *testing.T) {
	gate := devGate("super-secret")
	creds, err := gate.Login("super-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rec := httptest.NewRecorder()
	gate.IssueCookies(rec, creds)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if !c.HttpOnly {
			t.Errorf("cookie %s must be HttpOnly", c.Name)
		}
		if c.SameSite != http.SameSiteLaxMode {
			t.Errorf("cookie %s must be SameSite=Lax", c.Name)
		}
		if c.Secure {
			t.Errorf("cookie %s must not be Secure outside prod", c.Name)
		}
		if c.Path != "/" {
			t.Errorf("cookie %s path = %q", c.Name, c.Path)
		}
		if c.MaxAge != 0 {
			t.Errorf("cookie %s must be session-scoped, MaxAge = %d", c.Name, c.MaxAge)
		}
	}
}

func TestIssueCookiesSecureInProd(t *testing.T) {
	gate := NewGate(
		config.AdminConfig{Token: "super-secret"},
		config.AppConfig{Env: config.AppEnvProd},
	)
	creds, err := gate.Login("super-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rec := httptest.NewRecorder()
	gate.IssueCookies(rec, creds)
	for _, c := range rec.Result().Cookies() {
		if !c.Secure {
			t.Errorf("cookie %s must be Secure in prod", c.Name)
		}
	}
}

func TestClearCookiesExpires(t *testing.T) {
	gate := devGate("super-secret")

	rec := httptest.NewRecorder()
	gate.ClearCookies(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.MaxAge >= 0 || c.Value != "" {
			t.Errorf("cookie %s not cleared: value=%q maxAge=%d", c.Name, c.Value, c.MaxAge)
		}
	}
}

func TestCheckRequiresBothCookies(t *testing.T) {
	cases := []struct {
		name    string
		cookies map[string]string
		want    bool
	}{
		{"none", nil, false},
		{"session only", map[string]string{SessionCookie: "s"}, false},
		{"routing only", map[string]string{RoutingCookie: "r"}, false},
		{"empty values", map[string]string{SessionCookie: "", RoutingCookie: ""}, false},
		{"both", map[string]string{SessionCookie: "s", RoutingCookie: "r"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
			for name, value := range tc.cookies {
				req.AddCookie(&http.Cookie{Name: name, Value: value})
			}
			if got := Check(req); got != tc.want {
				t.Fatalf("Check = %v, want %v", got, tc.want)
			}
		})
	}
}
