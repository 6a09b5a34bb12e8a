package controllers

import (
	"net/http"

	"github.com/dmatoso/checkpix-backend/api/responses"
	"github.com/dmatoso/checkpix-backend/api/validators"
	smssvc "github.com/dmatoso/checkpix-backend/internal/sms"
	"github.com/dmatoso/checkpix-backend/pkg/logger"
)

type sendSMSRequest struct {
	To          string `json:"to" validate:"required"`
	Body        string `json:"body" validate:"required"`
	AccountSID  string `json:"accountSid,omitempty"`
	AuthToken   string `json:"authToken,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type twilioConfigRequest struct {
	AccountSID  string `json:"accountSid" validate:"required"`
	AuthToken   string `json:"authToken" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// SendSMS delivers a message through Twilio. Inline credentials, when
// complete, override the stored singleton.
func SendSMS(svc smssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sendSMSRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Send(r.Context(), smssvc.SendInput{
			To:          payload.To,
			Body:        payload.Body,
			AccountSID:  payload.AccountSID,
			AuthToken:   payload.AuthToken,
			PhoneNumber: payload.PhoneNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// TwilioConfigGet returns the stored credentials row without the auth token.
func TwilioConfigGet(svc smssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.Config(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cfg)
	}
}

// TwilioConfigPut upserts the singleton credentials row.
func TwilioConfigPut(svc smssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload twilioConfigRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg, err := svc.UpdateConfig(r.Context(), smssvc.UpdateConfigInput{
			AccountSID:  payload.AccountSID,
			AuthToken:   payload.AuthToken,
			PhoneNumber: payload.PhoneNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cfg)
	}
}
