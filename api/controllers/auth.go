package controllers

import (
	"net/http"

	"github.com/dmatoso/checkpix-backend/api/responses"
	"github.com/dmatoso/checkpix-backend/api/validators"
	"github.com/dmatoso/checkpix-backend/pkg/auth/session"
	"github.com/dmatoso/checkpix-backend/pkg/logger"
)

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Authenticated bool `json:"authenticated"`
	// URLToken is echoed so the front end can build the per-session panel URL.
	URLToken string `json:"urlToken"`
}

// AuthLogin validates the admin password and issues the session cookie pair.
func AuthLogin(gate *session.Gate, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		creds, err := gate.Login(payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		gate.IssueCookies(w, creds)
		responses.WriteSuccess(w, loginResponse{
			Authenticated: true,
			URLToken:      creds.RoutingToken,
		})
	}
}

// AuthLogout clears both session cookies.
func AuthLogout(gate *session.Gate, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gate.ClearCookies(w)
		responses.WriteSuccess(w, map[string]bool{"authenticated": false})
	}
}

// AuthCheck reports whether the request carries both session cookies. It does
// not verify the routing token's value; the route guard does that.
func AuthCheck(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]bool{"authenticated": session.Check(r)})
	}
}
