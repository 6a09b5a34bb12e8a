package controllers

import (
	"net/http"

	"github.com/dmatoso/checkpix-backend/api/responses"
	"github.com/dmatoso/checkpix-backend/api/validators"
	verificationsvc "github.com/dmatoso/checkpix-backend/internal/verification"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
	"github.com/dmatoso/checkpix-backend/pkg/logger"
)

type verifyCodeRequest struct {
	Code string `json:"code"`
}

type verifyCodeResponse struct {
	Valid  bool                          `json:"valid"`
	Record *verificationsvc.RedemptionDTO `json:"recordData"`
}

// VerifyCode redeems a customer-entered code for its record projection.
func VerifyCode(svc verificationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "verification service unavailable"))
			return
		}

		var payload verifyCodeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Verify(r.Context(), payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, verifyCodeResponse{Valid: true, Record: record})
	}
}
