package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserTermsAgreement is an immutable record that a user accepted a specific
// terms version. At most one logical row per (user, terms); the unique index
// backs the lookup-before-insert against concurrent duplicates.
type UserTermsAgreement struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  string `gorm:"type:uuid;not null;index:uidx_user_terms_agreements,unique" json:"user_id"`
	TermsID string `gorm:"type:uuid;not null;index:uidx_user_terms_agreements,unique" json:"terms_id"`

	AgreedAt time.Time `gorm:"autoCreateTime" json:"agreed_at"`
}

func (a *UserTermsAgreement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// TermsOfService versions; at most one row carries IsLatest=true, enforced
// by the backend, not this layer.
type TermsOfService struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Version       string    `gorm:"type:varchar(50);not null" json:"version"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	EffectiveDate time.Time `json:"effective_date"`
	IsLatest      bool      `gorm:"not null;default:false;index" json:"is_latest"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *TermsOfService) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
