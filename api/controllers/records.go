package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmatoso/checkpix-backend/api/responses"
	"github.com/dmatoso/checkpix-backend/api/validators"
	recordsvc "github.com/dmatoso/checkpix-backend/internal/records"
	"github.com/dmatoso/checkpix-backend/pkg/enums"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
	"github.com/dmatoso/checkpix-backend/pkg/logger"
)

type recordRequest struct {
	Code         string          `json:"code" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	CPFCNPJ      string          `json:"cpfCnpj"`
	OrderNumber  string          `json:"orderNumber"`
	Address      string          `json:"address"`
	Number       string          `json:"number"`
	Complement   *string         `json:"complement,omitempty"`
	Reference    *string         `json:"reference,omitempty"`
	Bairro       string          `json:"bairro"`
	StateCity    string          `json:"stateCity"`
	ZipCode      string          `json:"zipCode"`
	Product      string          `json:"product"`
	Valor        decimal.Decimal `json:"valor"`
	Status       string          `json:"status"`
	PixCode      string          `json:"pixCode" validate:"required"`
	QRCodePath   *string         `json:"qrCodePath,omitempty"`
	Observations *string         `json:"observations,omitempty"`
}

func (r recordRequest) status() (enums.RecordStatus, error) {
	raw := strings.TrimSpace(r.Status)
	if raw == "" {
		return enums.RecordStatusPending, nil
	}
	status, err := enums.ParseRecordStatus(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}
	return status, nil
}

type toggleActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// RecordList returns records, optionally narrowed by a free-text query and a
// creation date range.
func RecordList(svc recordsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := recordsvc.ListFilter{
			Query:       strings.TrimSpace(r.URL.Query().Get("q")),
			CreatedFrom: from,
			CreatedTo:   to,
		}

		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// RecordCreate seeds a new redeemable record.
func RecordCreate(svc recordsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := payload.status()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), recordsvc.CreateRecordInput{
			Code:         payload.Code,
			Name:         payload.Name,
			CPFCNPJ:      payload.CPFCNPJ,
			OrderNumber:  payload.OrderNumber,
			Address:      payload.Address,
			Number:       payload.Number,
			Complement:   payload.Complement,
			Reference:    payload.Reference,
			Bairro:       payload.Bairro,
			StateCity:    payload.StateCity,
			ZipCode:      payload.ZipCode,
			Product:      payload.Product,
			Valor:        payload.Valor,
			Status:       status,
			PixCode:      payload.PixCode,
			QRCodePath:   payload.QRCodePath,
			Observations: payload.Observations,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// RecordUpdate replaces all editable fields of a record.
func RecordUpdate(svc recordsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "recordId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := payload.status()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), id, recordsvc.UpdateRecordInput{
			Code:         payload.Code,
			Name:         payload.Name,
			CPFCNPJ:      payload.CPFCNPJ,
			OrderNumber:  payload.OrderNumber,
			Address:      payload.Address,
			Number:       payload.Number,
			Complement:   payload.Complement,
			Reference:    payload.Reference,
			Bairro:       payload.Bairro,
			StateCity:    payload.StateCity,
			ZipCode:      payload.ZipCode,
			Product:      payload.Product,
			Valor:        payload.Valor,
			Status:       status,
			PixCode:      payload.PixCode,
			QRCodePath:   payload.QRCodePath,
			Observations: payload.Observations,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// RecordToggleActive flips only the active flag.
func RecordToggleActive(svc recordsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "recordId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload toggleActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.ToggleActive(r.Context(), id, *payload.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// RecordDelete removes a record.
func RecordDelete(svc recordsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "recordId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// RecordStats serves the admin dashboard counters.
func RecordStats(svc recordsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}
