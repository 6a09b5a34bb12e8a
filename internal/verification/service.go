package verification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmatoso/checkpix-backend/pkg/db"
	"github.com/dmatoso/checkpix-backend/pkg/db/models"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
)

type recordStore interface {
	FindFirstActiveByCode(ctx context.Context, code string) (*models.Record, error)
	UpdateArtifacts(ctx context.Context, id uuid.UUID, pixCode string, qrCodePath string) error
}

type productResolver interface {
	FindByTitle(ctx context.Context, title string) (*models.Product, error)
}

type artifactGenerator interface {
	EnsureArtifact(orderNumber, pixCode string) (string, error)
}

// Service redeems customer codes against seeded records.
type Service interface {
	Verify(ctx context.Context, code string) (*RedemptionDTO, error)
}

type service struct {
	records  recordStore
	products productResolver
	qr       artifactGenerator
}

// NewService wires the verification flow.
func NewService(records recordStore, products productResolver, qr artifactGenerator) (Service, error) {
	if records == nil {
		return nil, fmt.Errorf("record store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	if qr == nil {
		return nil, fmt.Errorf("artifact generator required")
	}
	return &service{records: records, products: products, qr: qr}, nil
}

// ProductRef is the product sub-object surfaced to the storefront.
type ProductRef struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	ImageURL *string   `json:"imageUrl"`
}

// RedemptionDTO is the customer-safe projection of a redeemed record.
type RedemptionDTO struct {
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Number      string          `json:"number"`
	Complement  *string         `json:"complement"`
	Reference   *string         `json:"reference"`
	Bairro      string          `json:"bairro"`
	StateCity   string          `json:"stateCity"`
	ZipCode     string          `json:"zipCode"`
	FullAddress string          `json:"fullAddress"`
	Valor       decimal.Decimal `json:"valor"`
	OrderNumber string          `json:"orderNumber"`
	PixCode     string          `json:"pixCode"`
	QRCodeURL   string          `json:"qrCodeUrl"`
	Product     ProductRef      `json:"product"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Verify looks up the first active record for the code, lazily provisions the
// QR artifact, and returns the customer projection. "Never existed" and
// "deactivated" intentionally yield the same not-found error.
func (s *service) Verify(ctx context.Context, code string) (*RedemptionDTO, error) {
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}

	record, err := s.records.FindFirstActiveByCode(ctx, code)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "code not found or inactive")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "look up code")
	}

	if record.PixCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeIntegrity, "record missing pix code")
	}

	qrPath, err := s.ensureArtifact(ctx, record)
	if err != nil {
		return nil, err
	}

	product, err := s.resolveProduct(ctx, record, qrPath)
	if err != nil {
		return nil, err
	}

	return &RedemptionDTO{
		Name:        record.Name,
		Address:     record.Address,
		Number:      record.Number,
		Complement:  record.Complement,
		Reference:   record.Reference,
		Bairro:      record.Bairro,
		StateCity:   record.StateCity,
		ZipCode:     record.ZipCode,
		FullAddress: composeFullAddress(record),
		Valor:       record.Valor,
		OrderNumber: record.OrderNumber,
		PixCode:     record.PixCode,
		QRCodeURL:   qrPath,
		Product:     product,
		CreatedAt:   record.CreatedAt,
	}, nil
}

// ensureArtifact is the get-or-create step: the derived filename makes file
// rendering idempotent, and the path is written back only when it changed.
func (s *service) ensureArtifact(ctx context.Context, record *models.Record) (string, error) {
	if record.QRCodePath != nil && *record.QRCodePath != "" {
		return *record.QRCodePath, nil
	}

	path, err := s.qr.EnsureArtifact(record.OrderNumber, record.PixCode)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate qr code")
	}

	if record.QRCodePath == nil || *record.QRCodePath != path {
		if err := s.records.UpdateArtifacts(ctx, record.ID, record.PixCode, path); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist qr code path")
		}
		record.QRCodePath = &path
	}

	return path, nil
}

func (s *service) resolveProduct(ctx context.Context, record *models.Record, qrPath string) (ProductRef, error) {
	product, err := s.products.FindByTitle(ctx, record.Product)
	if err != nil {
		if db.IsNotFound(err) {
			// No catalog match: fall back to the record's own fields so the
			// response shape stays consistent.
			fallback := qrPath
			return ProductRef{
				ID:       record.ID,
				Title:    record.Product,
				ImageURL: &fallback,
			}, nil
		}
		return ProductRef{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve product")
	}
	return ProductRef{
		ID:       product.ID,
		Title:    product.Title,
		ImageURL: product.ImageURL,
	}, nil
}

// composeFullAddress joins the optional parts with " - " separators:
// "<address>, <number>[ - complement][ - reference] - <bairro> - <stateCity>".
func composeFullAddress(record *models.Record) string {
	var b strings.Builder
	b.WriteString(record.Address)
	b.WriteString(", ")
	b.WriteString(record.Number)
	if record.Complement != nil && *record.Complement != "" {
		b.WriteString(" - ")
		b.WriteString(*record.Complement)
	}
	if record.Reference != nil && *record.Reference != "" {
		b.WriteString(" - ")
		b.WriteString(*record.Reference)
	}
	b.WriteString(" - ")
	b.WriteString(record.Bairro)
	b.WriteString(" - ")
	b.WriteString(record.StateCity)
	return b.String()
}
