package sms

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmatoso/checkpix-backend/pkg/db/models"
)

// Repository handles the singleton Twilio credentials row.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to the credentials table.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find loads the credentials row, if one was ever saved.
func (r *Repository) Find(ctx context.Context) (*models.TwilioConfig, error) {
	var cfg models.TwilioConfig
	if err := r.db.WithContext(ctx).
		Where("id = ?", models.TwilioConfigID).
		First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Upsert writes the credentials row, inserting on first save and replacing on
// every later one. The fixed id keeps the table at a single row.
func (r *Repository) Upsert(ctx context.Context, cfg *models.TwilioConfig) error {
	cfg.ID = models.TwilioConfigID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"account_sid", "auth_token", "phone_number", "updated_at"}),
		}).
		Create(cfg).Error
}
