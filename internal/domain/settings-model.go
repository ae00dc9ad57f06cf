package domain

import "time"

// AdminSettings is a single-row table (SingletonID is always true) holding
// the intake availability flag shown on the dashboard.
type AdminSettings struct {
	SingletonID         bool    `gorm:"primaryKey;default:true" json:"singleton_id"`
	IsAvailable         bool    `gorm:"not null;default:true" json:"is_available"`
	AvailabilityMessage *string `gorm:"type:text" json:"availability_message"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (AdminSettings) TableName() string {
	return "admin_settings"
}
