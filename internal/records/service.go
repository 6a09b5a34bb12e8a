package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmatoso/checkpix-backend/pkg/db"
	"github.com/dmatoso/checkpix-backend/pkg/db/models"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
)

type repository interface {
	Create(ctx context.Context, record *models.Record) error
	List(ctx context.Context, filter ListFilter) ([]models.Record, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Record, error)
	Update(ctx context.Context, record *models.Record) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*StatsDTO, error)
}

// Service exposes admin record operations.
type Service interface {
	Create(ctx context.Context, input CreateRecordInput) (*RecordDTO, error)
	List(ctx context.Context, filter ListFilter) ([]RecordDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRecordInput) (*RecordDTO, error)
	ToggleActive(ctx context.Context, id uuid.UUID, active bool) (*RecordDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*StatsDTO, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService builds a record service with the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("record repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateRecordInput) (*RecordDTO, error) {
	if err := validateInput(input.Code, input.Name, input.PixCode, input.Status.IsValid()); err != nil {
		return nil, err
	}

	record := &models.Record{
		Code:         strings.TrimSpace(input.Code),
		Name:         strings.TrimSpace(input.Name),
		CPFCNPJ:      input.CPFCNPJ,
		OrderNumber:  input.OrderNumber,
		Address:      input.Address,
		Number:       input.Number,
		Complement:   input.Complement,
		Reference:    input.Reference,
		Bairro:       input.Bairro,
		StateCity:    input.StateCity,
		ZipCode:      input.ZipCode,
		Product:      input.Product,
		Valor:        input.Valor,
		Status:       input.Status.String(),
		Active:       true,
		Used:         false,
		PixCode:      input.PixCode,
		QRCodePath:   input.QRCodePath,
		Observations: input.Observations,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create record")
	}
	return toDTO(record, s.now()), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]RecordDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list records")
	}
	now := s.now()
	dtos := make([]RecordDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *toDTO(&rows[i], now))
	}
	return dtos, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRecordInput) (*RecordDTO, error) {
	if err := validateInput(input.Code, input.Name, input.PixCode, input.Status.IsValid()); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load record")
	}

	record.Code = strings.TrimSpace(input.Code)
	record.Name = strings.TrimSpace(input.Name)
	record.CPFCNPJ = input.CPFCNPJ
	record.OrderNumber = input.OrderNumber
	record.Address = input.Address
	record.Number = input.Number
	record.Complement = input.Complement
	record.Reference = input.Reference
	record.Bairro = input.Bairro
	record.StateCity = input.StateCity
	record.ZipCode = input.ZipCode
	record.Product = input.Product
	record.Valor = input.Valor
	record.Status = input.Status.String()
	record.PixCode = input.PixCode
	record.QRCodePath = input.QRCodePath
	record.Observations = input.Observations

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update record")
	}
	return toDTO(record, s.now()), nil
}

func (s *service) ToggleActive(ctx context.Context, id uuid.UUID, active bool) (*RecordDTO, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle record")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load record")
	}
	return toDTO(record, s.now()), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete record")
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record stats")
	}
	return stats, nil
}

func validateInput(code, name, pixCode string, statusValid bool) error {
	if strings.TrimSpace(code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(pixCode) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "pixCode is required")
	}
	if !statusValid {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	return nil
}
