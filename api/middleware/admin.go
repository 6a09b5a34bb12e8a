package middleware

import (
	"net/http"

	"github.com/dmatoso/checkpix-backend/api/responses"
	"github.com/dmatoso/checkpix-backend/pkg/auth/session"
	"github.com/dmatoso/checkpix-backend/pkg/config"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
	"github.com/dmatoso/checkpix-backend/pkg/logger"
)

// RequireAdminSession gates the admin API endpoints on the presence of both
// session cookies. An unconfigured admin secret fails closed with a
// configuration error rather than an auth one.
func RequireAdminSession(admin config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !admin.Configured() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfig, "admin token not configured"))
				return
			}
			if !session.Check(r) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
