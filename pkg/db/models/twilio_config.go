package models

import "time"

// TwilioConfigID keys the singleton credentials row.
const TwilioConfigID = 1

// TwilioConfig stores the SMS provider credentials as a single upserted row.
type TwilioConfig struct {
	ID          int       `gorm:"column:id;primaryKey"`
	AccountSID  string    `gorm:"column:account_sid;not null"`
	AuthToken   string    `gorm:"column:auth_token;not null"`
	PhoneNumber string    `gorm:"column:phone_number;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the singular table name used by the original schema.
func (TwilioConfig) TableName() string {
	return "twilio_config"
}
