package controllers

import (
	"net/http"

	"github.com/dmatoso/checkpix-backend/api/responses"
)

// Panel answers requests that survive the route guard. The actual panel UI is
// a separate front end; the API only confirms the capability path resolved.
func Panel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"panel": "ok"})
	}
}
