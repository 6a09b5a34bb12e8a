package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dmatoso/checkpix-backend/pkg/db/models"
	"github.com/dmatoso/checkpix-backend/pkg/enums"
)

// Repository handles record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to record operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new record row.
func (r *Repository) Create(ctx context.Context, record *models.Record) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// List returns records matching the filter in default (insertion) order.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Record, error) {
	query := r.db.WithContext(ctx).Model(&models.Record{})

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR code LIKE ? OR cpf_cnpj LIKE ?", like, like, like)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var rows []models.Record
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a record by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	var record models.Record
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindFirstActiveByCode returns the first active record with the exact code.
// The schema allows duplicate codes; first match wins.
func (r *Repository) FindFirstActiveByCode(ctx context.Context, code string) (*models.Record, error) {
	var record models.Record
	if err := r.db.WithContext(ctx).
		Where("code = ? AND active = ?", code, true).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update saves the provided record.
func (r *Repository) Update(ctx context.Context, record *models.Record) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	return r.db.WithContext(ctx).Save(record).Error
}

// UpdateArtifacts persists only the payment artifacts produced by
// verification.
func (r *Repository) UpdateArtifacts(ctx context.Context, id uuid.UUID, pixCode string, qrCodePath string) error {
	return r.db.WithContext(ctx).
		Model(&models.Record{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"pix_code":     pixCode,
			"qr_code_path": qrCodePath,
		}).Error
}

// SetActive flips only the active flag.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Record{}).
		Where("id = ?", id).
		Update("active", active).Error
}

// Delete removes the record row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Record{}, "id = ?", id).Error
}

// Stats aggregates the dashboard counters in a single pass per counter.
func (r *Repository) Stats(ctx context.Context) (*StatsDTO, error) {
	var stats StatsDTO

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Record{})
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", enums.RecordStatusApproved.String()).Count(&stats.Approved).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", enums.RecordStatusPending.String()).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}

	var total struct {
		Sum decimal.Decimal
	}
	if err := base().Select("COALESCE(SUM(valor), 0) AS sum").Scan(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalValue = total.Sum

	return &stats, nil
}
