package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	verificationsvc "github.com/dmatoso/checkpix-backend/internal/verification"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
)

type stubVerification struct {
	dto *verificationsvc.RedemptionDTO
	err error
}

func (s *stubVerification) Verify(_ context.Context, _ string) (*verificationsvc.RedemptionDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dto, nil
}

func TestVerifyCodeSuccess(t *testing.T) {
	dto := &verificationsvc.RedemptionDTO{
		Name:        "Maria Silva",
		OrderNumber: "1001",
		PixCode:     "00020126pixpayload",
		QRCodeURL:   "/qrcodes/qrcode_1001.png",
	}
	handler := VerifyCode(&stubVerification{dto: dto}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", strings.NewReader(`{"code":"ABC123"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Valid  bool `json:"valid"`
		Record struct {
			Name      string `json:"name"`
			QRCodeURL string `json:"qrCodeUrl"`
		} `json:"recordData"`
	}
	decodeEnvelope(t, rec.Body.Bytes(), &payload)
	if !payload.Valid {
		t.Fatal("expected valid=true")
	}
	if payload.Record.Name != "Maria Silva" || payload.Record.QRCodeURL != "/qrcodes/qrcode_1001.png" {
		t.Fatalf("unexpected record %+v", payload.Record)
	}
}

func TestVerifyCodeNotFound(t *testing.T) {
	handler := VerifyCode(&stubVerification{
		err: pkgerrors.New(pkgerrors.CodeNotFound, "code not found or inactive"),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", strings.NewReader(`{"code":"NOPE"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestVerifyCodeIntegrityHidesDetail(t *testing.T) {
	handler := VerifyCode(&stubVerification{
		err: pkgerrors.New(pkgerrors.CodeIntegrity, "record missing pix code"),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", strings.NewReader(`{"code":"ABC123"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "pix") {
		t.Fatalf("integrity detail leaked: %s", rec.Body.String())
	}
}

func TestVerifyCodeBadBody(t *testing.T) {
	handler := VerifyCode(&stubVerification{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
