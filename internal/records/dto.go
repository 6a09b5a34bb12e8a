package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmatoso/checkpix-backend/pkg/db/models"
	"github.com/dmatoso/checkpix-backend/pkg/enums"
)

// RecordDTO is the admin-facing projection of a record.
type RecordDTO struct {
	ID           uuid.UUID          `json:"id"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	CPFCNPJ      string             `json:"cpfCnpj"`
	OrderNumber  string             `json:"orderNumber"`
	Address      string             `json:"address"`
	Number       string             `json:"number"`
	Complement   *string            `json:"complement"`
	Reference    *string            `json:"reference"`
	Bairro       string             `json:"bairro"`
	StateCity    string             `json:"stateCity"`
	ZipCode      string             `json:"zipCode"`
	Product      string             `json:"product"`
	Valor        decimal.Decimal    `json:"valor"`
	Status       enums.RecordStatus `json:"status"`
	Active       bool               `json:"active"`
	PixCode      string             `json:"pixCode"`
	QRCodePath   *string            `json:"qrCodePath"`
	Observations *string            `json:"observations"`
	DaysPending  int                `json:"daysPending"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// CreateRecordInput captures the fields accepted at creation. Used is always
// persisted false and Active true, matching the seeding flow.
type CreateRecordInput struct {
	Code         string
	Name         string
	CPFCNPJ      string
	OrderNumber  string
	Address      string
	Number       string
	Complement   *string
	Reference    *string
	Bairro       string
	StateCity    string
	ZipCode      string
	Product      string
	Valor        decimal.Decimal
	Status       enums.RecordStatus
	PixCode      string
	QRCodePath   *string
	Observations *string
}

// UpdateRecordInput captures the fields accepted on full update. Active and
// Used are untouched; toggling happens through ToggleActive.
type UpdateRecordInput struct {
	Code         string
	Name         string
	CPFCNPJ      string
	OrderNumber  string
	Address      string
	Number       string
	Complement   *string
	Reference    *string
	Bairro       string
	StateCity    string
	ZipCode      string
	Product      string
	Valor        decimal.Decimal
	Status       enums.RecordStatus
	PixCode      string
	QRCodePath   *string
	Observations *string
}

// ListFilter narrows the record listing. Zero values mean "no filtering",
// preserving the return-everything default.
type ListFilter struct {
	Query       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// StatsDTO backs the admin dashboard cards.
type StatsDTO struct {
	Total      int64           `json:"total"`
	Active     int64           `json:"active"`
	Approved   int64           `json:"approved"`
	Pending    int64           `json:"pending"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

func toDTO(record *models.Record, now time.Time) *RecordDTO {
	return &RecordDTO{
		ID:           record.ID,
		Code:         record.Code,
		Name:         record.Name,
		CPFCNPJ:      record.CPFCNPJ,
		OrderNumber:  record.OrderNumber,
		Address:      record.Address,
		Number:       record.Number,
		Complement:   record.Complement,
		Reference:    record.Reference,
		Bairro:       record.Bairro,
		StateCity:    record.StateCity,
		ZipCode:      record.ZipCode,
		Product:      record.Product,
		Valor:        record.Valor,
		Status:       enums.RecordStatus(record.Status),
		Active:       record.Active,
		PixCode:      record.PixCode,
		QRCodePath:   record.QRCodePath,
		Observations: record.Observations,
		DaysPending:  daysPending(record, now),
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

// daysPending counts whole days since creation for records still pending, the
// staleness signal the dashboard surfaces.
func daysPending(record *models.Record, now time.Time) int {
	if enums.RecordStatus(record.Status) != enums.RecordStatusPending {
		return 0
	}
	days := int(now.Sub(record.CreatedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
