package sms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmatoso/checkpix-backend/pkg/db"
	"github.com/dmatoso/checkpix-backend/pkg/db/models"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
	"github.com/dmatoso/checkpix-backend/pkg/twilio"
)

type repository interface {
	Find(ctx context.Context) (*models.TwilioConfig, error)
	Upsert(ctx context.Context, cfg *models.TwilioConfig) error
}

type sender interface {
	SendMessage(ctx context.Context, creds twilio.Credentials, to, body string) (string, error)
}

// Service sends SMS messages and manages the stored provider credentials.
type Service interface {
	Send(ctx context.Context, input SendInput) (*SendResult, error)
	Config(ctx context.Context) (*ConfigDTO, error)
	UpdateConfig(ctx context.Context, input UpdateConfigInput) (*ConfigDTO, error)
}

type service struct {
	repo   repository
	client sender
}

// NewService wires SMS delivery to the credentials store and provider client.
func NewService(repo repository, client sender) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sms repository required")
	}
	if client == nil {
		return nil, fmt.Errorf("sms client required")
	}
	return &service{repo: repo, client: client}, nil
}

// SendInput carries the message plus optional inline credentials. Inline
// credentials, when complete, take precedence over the stored row.
type SendInput struct {
	To          string
	Body        string
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

// SendResult reports the provider message SID.
type SendResult struct {
	SID string `json:"sid"`
}

// ConfigDTO is the admin projection of the stored credentials. The auth token
// is never echoed back.
type ConfigDTO struct {
	AccountSID  string    `json:"accountSid"`
	PhoneNumber string    `json:"phoneNumber"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateConfigInput captures a full credentials replacement.
type UpdateConfigInput struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

func (s *service) Send(ctx context.Context, input SendInput) (*SendResult, error) {
	if strings.TrimSpace(input.To) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "body is required")
	}

	creds, err := s.resolveCredentials(ctx, input)
	if err != nil {
		return nil, err
	}

	sid, err := s.client.SendMessage(ctx, creds, input.To, input.Body)
	if err != nil {
		return nil, err
	}
	return &SendResult{SID: sid}, nil
}

// resolveCredentials prefers complete inline credentials and otherwise falls
// back to the stored row.
func (s *service) resolveCredentials(ctx context.Context, input SendInput) (twilio.Credentials, error) {
	if input.AccountSID != "" && input.AuthToken != "" && input.PhoneNumber != "" {
		return twilio.Credentials{
			AccountSID:  input.AccountSID,
			AuthToken:   input.AuthToken,
			PhoneNumber: input.PhoneNumber,
		}, nil
	}

	stored, err := s.repo.Find(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return twilio.Credentials{}, pkgerrors.New(pkgerrors.CodeValidation, "twilio credentials not configured")
		}
		return twilio.Credentials{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load twilio credentials")
	}
	return twilio.Credentials{
		AccountSID:  stored.AccountSID,
		AuthToken:   stored.AuthToken,
		PhoneNumber: stored.PhoneNumber,
	}, nil
}

func (s *service) Config(ctx context.Context) (*ConfigDTO, error) {
	stored, err := s.repo.Find(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "twilio credentials not configured")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load twilio credentials")
	}
	return toConfigDTO(stored), nil
}

func (s *service) UpdateConfig(ctx context.Context, input UpdateConfigInput) (*ConfigDTO, error) {
	if strings.TrimSpace(input.AccountSID) == "" ||
		strings.TrimSpace(input.AuthToken) == "" ||
		strings.TrimSpace(input.PhoneNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "accountSid, authToken and phoneNumber are required")
	}

	cfg := &models.TwilioConfig{
		AccountSID:  strings.TrimSpace(input.AccountSID),
		AuthToken:   strings.TrimSpace(input.AuthToken),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save twilio credentials")
	}
	return toConfigDTO(cfg), nil
}

func toConfigDTO(cfg *models.TwilioConfig) *ConfigDTO {
	return &ConfigDTO{
		AccountSID:  cfg.AccountSID,
		PhoneNumber: cfg.PhoneNumber,
		UpdatedAt:   cfg.UpdatedAt,
	}
}
