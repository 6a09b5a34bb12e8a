package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is a pre-seeded, redeemable order shown to a customer after code
// entry. Status is an open string at rest; the closed enum lives at the API
// boundary. Used is written at creation and never read.
type Record struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Code         string          `gorm:"column:code;not null;index"`
	Name         string          `gorm:"column:name;not null"`
	CPFCNPJ      string          `gorm:"column:cpf_cnpj;not null"`
	OrderNumber  string          `gorm:"column:order_number;not null"`
	Address      string          `gorm:"column:address;not null"`
	Number       string          `gorm:"column:number;not null"`
	Complement   *string         `gorm:"column:complement"`
	Reference    *string         `gorm:"column:reference"`
	Bairro       string          `gorm:"column:bairro;not null"`
	StateCity    string          `gorm:"column:state_city;not null"`
	ZipCode      string          `gorm:"column:zip_code;not null"`
	Product      string          `gorm:"column:product;not null;default:''"`
	Valor        decimal.Decimal `gorm:"column:valor;type:numeric(12,2);not null"`
	Status       string          `gorm:"column:status;not null;default:'pendente'"`
	Active       bool            `gorm:"column:active;not null;default:true"`
	Used         bool            `gorm:"column:used;not null;default:false"`
	PixCode      string          `gorm:"column:pix_code;not null"`
	QRCodePath   *string         `gorm:"column:qr_code_path"`
	Observations *string         `gorm:"column:observations"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
