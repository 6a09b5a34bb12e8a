package session

import (
	"net/http"

	"github.com/dmatoso/checkpix-backend/pkg/auth"
	"github.com/dmatoso/checkpix-backend/pkg/config"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
)

const (
	// SessionCookie marks an authenticated admin session.
	SessionCookie = "auth_token"
	// RoutingCookie holds the URL routing token compared against the panel
	// path segment by the route guard.
	RoutingCookie = "url_token"
)

// Gate issues and clears the two admin session cookies. The admin secret is
// injected at construction so tests can swap it per instance.
type Gate struct {
	adminToken string
	secure     bool
}

// NewGate builds a session gate. Cookies carry the Secure flag only in prod.
func NewGate(admin config.AdminConfig, app config.AppConfig) *Gate {
	return &Gate{
		adminToken: admin.Token,
		secure:     app.IsProd(),
	}
}

// Credentials holds the two artifacts minted by a successful login.
type Credentials struct {
	SessionToken string
	RoutingToken string
}

// Login validates the submitted password against the configured secret and
// mints the session and routing tokens. An unconfigured secret fails closed
// and is distinct from a wrong password.
func (g *Gate) Login(password string) (Credentials, error) {
	if g.adminToken == "" {
		return Credentials{}, pkgerrors.New(pkgerrors.CodeConfig, "admin token not configured")
	}
	if password != g.adminToken {
		return Credentials{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid password")
	}
	return Credentials{
		SessionToken: auth.NewSessionToken(),
		RoutingToken: auth.GenerateSecureToken(g.adminToken),
	}, nil
}

// IssueCookies sets both session cookies. No Max-Age/Expires is set so they
// die with the client session.
func (g *Gate) IssueCookies(w http.ResponseWriter, creds Credentials) {
	http.SetCookie(w, g.cookie(SessionCookie, creds.SessionToken, 0))
	http.SetCookie(w, g.cookie(RoutingCookie, creds.RoutingToken, 0))
}

// ClearCookies deletes both session cookies.
func (g *Gate) ClearCookies(w http.ResponseWriter) {
	http.SetCookie(w, g.cookie(SessionCookie, "", -1))
	http.SetCookie(w, g.cookie(RoutingCookie, "", -1))
}

func (g *Gate) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// Check reports whether the request carries both session cookies with
// non-empty values. It does not verify the routing token's value; that is the
// route guard's job.
func Check(r *http.Request) bool {
	return cookieValue(r, SessionCookie) != "" && cookieValue(r, RoutingCookie) != ""
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
