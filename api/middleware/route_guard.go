package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dmatoso/checkpix-backend/pkg/auth/session"
	"github.com/dmatoso/checkpix-backend/pkg/config"
	"github.com/dmatoso/checkpix-backend/pkg/logger"
)

const (
	loginPath    = "/admin/login"
	notFoundPath = "/404"

	panelPrefix = "painel"
	panelSuffix = "admin"
)

// RouteGuard authorizes access to the admin panel subtree. The routing token
// minted at login doubles as a per-session URL capability: the panel only
// answers under /{token}/painel/admin, and a wrong token is handled exactly
// like a path that does not exist.
//
// Checked top to bottom, first match wins:
//  1. non-panel paths pass through untouched;
//  2. no admin secret configured: redirect to login, fail closed;
//  3. bare /painel/admin (no token segment): redirect to login;
//  4. token form with either cookie missing: redirect to login carrying the
//     original destination as callbackUrl;
//  5. token segment differing from the url_token cookie: redirect to the
//     generic not-found page;
//  6. otherwise pass through.
func RouteGuard(admin config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seg, isPanel := panelSegment(r.URL.Path)
			if !isPanel {
				next.ServeHTTP(w, r)
				return
			}

			if !admin.Configured() {
				if logg != nil {
					logg.Warn(r.Context(), "route_guard.admin_token_missing")
				}
				redirectToLogin(w, r, "")
				return
			}

			if seg == "" {
				redirectToLogin(w, r, "")
				return
			}

			if !session.Check(r) {
				redirectToLogin(w, r, r.URL.Path)
				return
			}

			if seg != cookieValue(r, session.RoutingCookie) {
				http.Redirect(w, r, notFoundPath, http.StatusTemporaryRedirect)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// panelSegment reports whether the path targets the panel subtree and returns
// the leading token segment, empty for the bare /painel/admin form.
func panelSegment(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == panelPrefix && parts[1] == panelSuffix {
		return "", true
	}
	if len(parts) >= 3 && parts[1] == panelPrefix && parts[2] == panelSuffix {
		return parts[0], true
	}
	return "", false
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, callback string) {
	target := loginPath
	if callback != "" {
		target += "?callbackUrl=" + url.QueryEscape(callback)
	}
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
